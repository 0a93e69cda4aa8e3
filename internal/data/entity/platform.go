package entity

type Platform struct {
	Base
	Name    string `db:"name"`    // max 30
	About   string `db:"about"`   // max 150
	Website string `db:"website"` // URL, max 100
}
