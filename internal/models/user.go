package models

import "time"

// User is a registered account. The password digest is never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Password  string    `json:"-" gorm:"size:100;not null"`
	Gender    string    `json:"gender" gorm:"size:10;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest defines the request body for creating a new account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

// LoginRequest defines the request body for credential login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
