package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"redsocial/internal/message"
	"redsocial/internal/metrics"
	apperrors "redsocial/pkg/errors"
)

// MessageService owns the directed, append-only message records. There is
// no conversation entity; threads are derived by the aggregation side from
// the unordered participant pair. Messaging does not require an accepted
// friendship.
type MessageService struct {
	db *pgxpool.Pool
}

func NewMessageService(db *pgxpool.Pool) *MessageService {
	return &MessageService{db: db}
}

func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, content string) (m *message.Message, err error) {
	defer metrics.Track("messages", "send")(&err)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	if senderID == recipientID {
		return nil, apperrors.ErrSelfMessage
	}

	m = &message.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}

	query := `
	INSERT INTO mensajes (id, emisor_id, receptor_id, contenido)
	VALUES ($1, $2, $3, $4)
	RETURNING fecha_envio, leido
	`

	err = s.db.QueryRow(ctx, query, m.ID, m.SenderID, m.RecipientID, m.Content).Scan(&m.SentAt, &m.Read)
	if err != nil {
		if foreignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeErr("failed to send message", err)
	}

	return m, nil
}

// MarkRead flips the leido flag. Only the recipient may mark a message
// read; the caller passes the acting identity as recipientID.
func (s *MessageService) MarkRead(ctx context.Context, recipientID, messageID uuid.UUID) (err error) {
	defer metrics.Track("messages", "mark_read")(&err)

	query := `UPDATE mensajes SET leido = TRUE WHERE id = $2 AND receptor_id = $1`

	result, err := s.db.Exec(ctx, query, recipientID, messageID)
	if err != nil {
		return storeErr("failed to mark message read", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}

	return nil
}
