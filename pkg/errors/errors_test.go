package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "redsocial/pkg/errors"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, apperrors.CodeAlreadyExists, apperrors.CodeOf(apperrors.ErrDuplicateEmail))
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(apperrors.ErrPostNotFound))
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(apperrors.ErrSelfMessage))

	t.Run("walks the wrap chain", func(t *testing.T) {
		wrapped := fmt.Errorf("like post: %w", apperrors.ErrAlreadyLiked)
		assert.Equal(t, apperrors.CodeAlreadyExists, apperrors.CodeOf(wrapped))
	})

	t.Run("foreign errors are unknown", func(t *testing.T) {
		assert.Equal(t, apperrors.CodeUnknown, apperrors.CodeOf(stderrors.New("boom")))
		assert.Equal(t, apperrors.CodeUnknown, apperrors.CodeOf(nil))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperrors.ErrStoreUnavailable(cause)

	assert.Equal(t, apperrors.CodeUnavailable, apperrors.CodeOf(err))
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
