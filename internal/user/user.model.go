package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FirstName    string     `json:"firstName" db:"nombre"`
	LastName     string     `json:"lastName" db:"apellido"`
	Email        string     `json:"email" db:"email"`
	BirthDate    *time.Time `json:"birthDate,omitempty" db:"fecha_nacimiento"`
	Location     string     `json:"location" db:"ubicacion"`
	Bio          string     `json:"bio" db:"biografia"`
	ImageURL     *string    `json:"imageUrl,omitempty" db:"imagen_perfil"`
	Active       bool       `json:"active" db:"activo"`
	RegisteredAt time.Time  `json:"registeredAt" db:"fecha_registro"`
}

// FullName renders the user the way the rest of the system displays them:
// CONCAT(nombre, ' ', apellido).
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
