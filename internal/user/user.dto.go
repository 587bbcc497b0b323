package user

import "time"

type RegisterRequest struct {
	FirstName    string     `json:"firstName" validate:"required"`
	LastName     string     `json:"lastName" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	PasswordHash string     `json:"-" validate:"required"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Location     string     `json:"location,omitempty"`
	Bio          string     `json:"bio,omitempty"`
}
