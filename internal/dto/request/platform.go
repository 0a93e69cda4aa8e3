package request

type PlatformRequest struct {
	Name    string `json:"name" validate:"required,max=30"`
	About   string `json:"about" validate:"required,max=150"`
	Website string `json:"website" validate:"required,url,max=100"`
}

type PlatformUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=30"`
	About   *string `json:"about,omitempty" validate:"omitempty,max=150"`
	Website *string `json:"website,omitempty" validate:"omitempty,url,max=100"`
}
