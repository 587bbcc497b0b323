package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SenderID    uuid.UUID `json:"senderId" db:"emisor_id"`
	RecipientID uuid.UUID `json:"recipientId" db:"receptor_id"`
	Content     string    `json:"content" db:"contenido"`
	SentAt      time.Time `json:"sentAt" db:"fecha_envio"`
	Read        bool      `json:"read" db:"leido"`
}

type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// View is an inbox entry: the message annotated with which way it went
// relative to the viewing user and who the other party is.
type View struct {
	ID               uuid.UUID `json:"id"`
	Content          string    `json:"content"`
	SentAt           time.Time `json:"sentAt"`
	Read             bool      `json:"read"`
	Direction        Direction `json:"direction"`
	CounterpartyID   uuid.UUID `json:"counterpartyId"`
	CounterpartyName string    `json:"counterpartyName"`
}
