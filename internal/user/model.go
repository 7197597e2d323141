package user

import "gorm.io/gorm"

// User is a staff account that can sign in to the admin application.
type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	FullName string `json:"fullName"`
	Role     int    `json:"role" gorm:"not null;default:2"`
}
