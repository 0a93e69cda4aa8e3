package entity

type User struct {
	Base
	Username     string `db:"username"` // unique
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	IsStaff      bool   `db:"is_staff"`
}
