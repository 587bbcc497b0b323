package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "redsocial/pkg/errors"
	"redsocial/services"
)

func TestMessageService_Send(t *testing.T) {
	resetDB(t)
	svc := services.NewMessageService(testPool)

	ana := createUser(t, "Ana", "Alvarez")
	beto := createUser(t, "Beto", "Bravo")

	m, err := svc.Send(testCtx, ana.ID, beto.ID, "  hola Beto  ")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, m.SenderID)
	assert.Equal(t, beto.ID, m.RecipientID)
	assert.Equal(t, "hola Beto", m.Content)
	assert.False(t, m.Read, "messages start unread")
	assert.False(t, m.SentAt.IsZero())

	t.Run("blank content", func(t *testing.T) {
		_, err := svc.Send(testCtx, ana.ID, beto.ID, "   ")
		require.ErrorIs(t, err, apperrors.ErrEmptyContent)
	})

	t.Run("self message", func(t *testing.T) {
		_, err := svc.Send(testCtx, ana.ID, ana.ID, "hola yo")
		require.ErrorIs(t, err, apperrors.ErrSelfMessage)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := svc.Send(testCtx, ana.ID, uuid.New(), "eco")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestMessageService_MarkRead(t *testing.T) {
	resetDB(t)
	svc := services.NewMessageService(testPool)

	ana := createUser(t, "Ana", "Castro")
	beto := createUser(t, "Beto", "Diaz")

	m, err := svc.Send(testCtx, ana.ID, beto.ID, "leeme")
	require.NoError(t, err)

	t.Run("sender cannot mark read", func(t *testing.T) {
		err := svc.MarkRead(testCtx, ana.ID, m.ID)
		require.ErrorIs(t, err, apperrors.ErrMessageNotFound)
	})

	require.NoError(t, svc.MarkRead(testCtx, beto.ID, m.ID))
	assert.Equal(t, 1, rowCount(t, `SELECT COUNT(*) FROM mensajes WHERE id = $1 AND leido = TRUE`, m.ID))

	t.Run("marking read is idempotent at the row level", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(testCtx, beto.ID, m.ID))
	})

	t.Run("unknown message", func(t *testing.T) {
		require.ErrorIs(t, svc.MarkRead(testCtx, beto.ID, uuid.New()), apperrors.ErrMessageNotFound)
	})
}
