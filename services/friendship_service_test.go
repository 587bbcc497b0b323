package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "redsocial/pkg/errors"
	"redsocial/services"
)

func pairRows(t *testing.T, a, b uuid.UUID) int {
	t.Helper()
	return rowCount(t, `
		SELECT COUNT(*) FROM amistades
		WHERE (usuario1_id = $1 AND usuario2_id = $2)
		   OR (usuario1_id = $2 AND usuario2_id = $1)`, a, b)
}

func TestFriendshipService_RequestAndAccept(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Aguilar")
	beto := createUser(t, "Beto", "Blanco")

	require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))

	pending, err := svc.ListPending(testCtx, beto.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ana.ID, pending[0].RequesterID)
	assert.Equal(t, "Ana Aguilar", pending[0].RequesterName)
	assert.False(t, pending[0].RequestedAt.IsZero())

	require.NoError(t, svc.Accept(testCtx, ana.ID, beto.ID))

	pending, err = svc.ListPending(testCtx, beto.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Acceptance is symmetric.
	friendsOfAna, err := svc.ListFriends(testCtx, ana.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfAna, 1)
	assert.Equal(t, beto.ID, friendsOfAna[0].ID)

	friendsOfBeto, err := svc.ListFriends(testCtx, beto.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfBeto, 1)
	assert.Equal(t, ana.ID, friendsOfBeto[0].ID)

	areFriends, err := svc.AreFriends(testCtx, beto.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, areFriends)
}

func TestFriendshipService_RequestValidation(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Acosta")
	beto := createUser(t, "Beto", "Bustos")

	t.Run("self request", func(t *testing.T) {
		err := svc.Request(testCtx, ana.ID, ana.ID)
		require.ErrorIs(t, err, apperrors.ErrSelfRequest)
	})

	t.Run("duplicate in same direction", func(t *testing.T) {
		require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))
		err := svc.Request(testCtx, ana.ID, beto.ID)
		require.ErrorIs(t, err, apperrors.ErrFriendshipExists)
	})

	t.Run("duplicate in reverse direction", func(t *testing.T) {
		err := svc.Request(testCtx, beto.ID, ana.ID)
		require.ErrorIs(t, err, apperrors.ErrFriendshipExists)
	})

	assert.Equal(t, 1, pairRows(t, ana.ID, beto.ID))
}

func TestFriendshipService_ResolveRequiresExactDirection(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Arenas")
	beto := createUser(t, "Beto", "Barrios")

	require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))

	// The requester cannot accept their own request by flipping the pair.
	err := svc.Accept(testCtx, beto.ID, ana.ID)
	require.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	require.NoError(t, svc.Accept(testCtx, ana.ID, beto.ID))

	t.Run("accepted is terminal", func(t *testing.T) {
		require.ErrorIs(t, svc.Accept(testCtx, ana.ID, beto.ID), apperrors.ErrRequestNotFound)
		require.ErrorIs(t, svc.Reject(testCtx, ana.ID, beto.ID), apperrors.ErrRequestNotFound)

		var estado string
		require.NoError(t, testPool.QueryRow(testCtx,
			`SELECT estado FROM amistades WHERE usuario1_id = $1 AND usuario2_id = $2`,
			ana.ID, beto.ID).Scan(&estado))
		assert.Equal(t, "aceptada", estado)
	})
}

func TestFriendshipService_RejectionBlocksResubmission(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Avila")
	beto := createUser(t, "Beto", "Bermudez")

	require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))
	require.NoError(t, svc.Reject(testCtx, ana.ID, beto.ID))

	// The rejected row is retained, so the pair can never be re-requested.
	err := svc.Request(testCtx, ana.ID, beto.ID)
	require.ErrorIs(t, err, apperrors.ErrFriendshipExists)

	err = svc.Request(testCtx, beto.ID, ana.ID)
	require.ErrorIs(t, err, apperrors.ErrFriendshipExists)

	assert.Equal(t, 1, pairRows(t, ana.ID, beto.ID))

	t.Run("rejected is terminal", func(t *testing.T) {
		require.ErrorIs(t, svc.Accept(testCtx, ana.ID, beto.ID), apperrors.ErrRequestNotFound)

		friends, err := svc.ListFriends(testCtx, ana.ID)
		require.NoError(t, err)
		assert.Empty(t, friends)
	})
}

func TestFriendshipService_PairUniquenessAcrossSequences(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Ayala")
	beto := createUser(t, "Beto", "Bonilla")
	carla := createUser(t, "Carla", "Campos")

	// Whatever sequence runs, the pair keeps exactly one row.
	require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))
	_ = svc.Request(testCtx, beto.ID, ana.ID)
	require.NoError(t, svc.Accept(testCtx, ana.ID, beto.ID))
	_ = svc.Request(testCtx, ana.ID, beto.ID)
	_ = svc.Request(testCtx, beto.ID, ana.ID)
	assert.Equal(t, 1, pairRows(t, ana.ID, beto.ID))

	// Distinct pairs are independent.
	require.NoError(t, svc.Request(testCtx, ana.ID, carla.ID))
	require.NoError(t, svc.Request(testCtx, beto.ID, carla.ID))
	assert.Equal(t, 1, pairRows(t, ana.ID, carla.ID))
	assert.Equal(t, 1, pairRows(t, beto.ID, carla.ID))

	pending, err := svc.ListPending(testCtx, carla.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestFriendshipService_PairIndexClosesCheckInsertRace(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)

	ana := createUser(t, "Ana", "Benitez")
	beto := createUser(t, "Beto", "Carrillo")

	// A reversed-pair insert in flight in another session. Read committed
	// hides the uncommitted row from Request's existence check, so the
	// amistades_par_unico index is the only guard left: the insert waits
	// on the in-flight entry and collapses onto its unique violation.
	tx, err := testPool.Begin(testCtx)
	require.NoError(t, err)
	_, err = tx.Exec(testCtx,
		`INSERT INTO amistades (id, usuario1_id, usuario2_id, estado) VALUES ($1, $2, $3, 'pendiente')`,
		uuid.New(), beto.ID, ana.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- svc.Request(testCtx, ana.ID, beto.ID)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, tx.Commit(testCtx))

	require.ErrorIs(t, <-done, apperrors.ErrFriendshipExists)
	assert.Equal(t, 1, pairRows(t, ana.ID, beto.ID))
}

func TestFriendshipService_ListFriendsSkipsDeactivated(t *testing.T) {
	resetDB(t)
	svc := services.NewFriendshipService(testPool)
	identity := services.NewIdentityService(testPool)

	ana := createUser(t, "Ana", "Arce")
	beto := createUser(t, "Beto", "Bello")

	require.NoError(t, svc.Request(testCtx, ana.ID, beto.ID))
	require.NoError(t, svc.Accept(testCtx, ana.ID, beto.ID))
	require.NoError(t, identity.Deactivate(testCtx, beto.ID))

	friends, err := svc.ListFriends(testCtx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}
