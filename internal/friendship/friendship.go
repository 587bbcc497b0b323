package friendship

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pendiente"
	StatusAccepted Status = "aceptada"
	StatusRejected Status = "rechazada"
)

// Friendship is the single row kept per unordered user pair. The direction
// (requester -> recipient) only matters while the status is pendiente or
// rechazada; an accepted friendship is symmetric.
type Friendship struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RequesterID uuid.UUID `json:"requesterId" db:"usuario1_id"`
	RecipientID uuid.UUID `json:"recipientId" db:"usuario2_id"`
	Status      Status    `json:"status" db:"estado"`
	RequestedAt time.Time `json:"requestedAt" db:"fecha_solicitud"`
}

// FriendRequest is what the recipient sees in their pending list.
type FriendRequest struct {
	RequesterID   uuid.UUID `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	Email         string    `json:"email"`
	RequestedAt   time.Time `json:"requestedAt"`
}
