package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"redsocial/internal/friendship"
	"redsocial/internal/metrics"
	"redsocial/internal/user"
	apperrors "redsocial/pkg/errors"
)

// FriendshipService owns the relationship state machine. The invariant it
// protects: at most one amistades row per unordered user pair, whatever
// sequence of requests, accepts and rejects ran before.
type FriendshipService struct {
	db *pgxpool.Pool
}

func NewFriendshipService(db *pgxpool.Pool) *FriendshipService {
	return &FriendshipService{db: db}
}

// Request inserts a pending friendship from requester to recipient. Any
// existing row for the pair, in either direction and whatever its status,
// blocks the request: rejected pairs are never retried automatically.
func (s *FriendshipService) Request(ctx context.Context, requesterID, recipientID uuid.UUID) (err error) {
	defer metrics.Track("friendships", "request")(&err)

	if requesterID == recipientID {
		return apperrors.ErrSelfRequest
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storeErr("failed to begin request", err)
	}
	defer tx.Rollback(ctx)

	// Pre-check both orderings for a clean error on the common path. The
	// amistades_par_unico index closes the race between check and insert.
	var exists bool
	checkQuery := `
		SELECT EXISTS(
			SELECT 1 FROM amistades
			WHERE (usuario1_id = $1 AND usuario2_id = $2)
			   OR (usuario1_id = $2 AND usuario2_id = $1)
		)
	`
	if err = tx.QueryRow(ctx, checkQuery, requesterID, recipientID).Scan(&exists); err != nil {
		return storeErr("failed to check existing friendship", err)
	}
	if exists {
		return apperrors.ErrFriendshipExists
	}

	insertQuery := `
		INSERT INTO amistades (id, usuario1_id, usuario2_id, estado)
		VALUES ($1, $2, $3, 'pendiente')
	`
	if _, err = tx.Exec(ctx, insertQuery, uuid.New(), requesterID, recipientID); err != nil {
		if uniqueViolation(err, "amistades_par_unico") {
			return apperrors.ErrFriendshipExists
		}
		if foreignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return storeErr("failed to create friend request", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return storeErr("failed to commit friend request", err)
	}

	return nil
}

// Accept transitions the exact pending request requester -> recipient to
// accepted. Only the recipient of the original request may do this; the
// caller passes the acting identity as recipientID.
func (s *FriendshipService) Accept(ctx context.Context, requesterID, recipientID uuid.UUID) (err error) {
	defer metrics.Track("friendships", "accept")(&err)
	return s.resolve(ctx, requesterID, recipientID, friendship.StatusAccepted)
}

// Reject is symmetric to Accept but leaves the pair in the terminal
// rejected state, which keeps blocking resubmission.
func (s *FriendshipService) Reject(ctx context.Context, requesterID, recipientID uuid.UUID) (err error) {
	defer metrics.Track("friendships", "reject")(&err)
	return s.resolve(ctx, requesterID, recipientID, friendship.StatusRejected)
}

func (s *FriendshipService) resolve(ctx context.Context, requesterID, recipientID uuid.UUID, status friendship.Status) error {
	query := `
		UPDATE amistades
		SET estado = $3
		WHERE usuario1_id = $1 AND usuario2_id = $2 AND estado = 'pendiente'
	`

	result, err := s.db.Exec(ctx, query, requesterID, recipientID, status)
	if err != nil {
		return storeErr("failed to resolve friend request", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// ListFriends returns the active counterparties of every accepted
// friendship touching userID, pair ordering ignored.
func (s *FriendshipService) ListFriends(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	query := `
	SELECT DISTINCT ` + prefixedUserColumns + `
	FROM usuarios u
	INNER JOIN amistades a ON (
		(a.usuario1_id = u.id AND a.usuario2_id = $1)
		OR
		(a.usuario2_id = u.id AND a.usuario1_id = $1)
	)
	WHERE a.estado = 'aceptada'
	  AND u.id != $1
	  AND u.activo = TRUE
	ORDER BY u.nombre, u.apellido
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("failed to list friends", err)
	}
	defer rows.Close()

	friends := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("failed to scan friend", err)
		}
		friends = append(friends, u)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating friends", err)
	}

	return friends, nil
}

// ListPending returns the requests waiting on userID's decision.
func (s *FriendshipService) ListPending(ctx context.Context, userID uuid.UUID) ([]*friendship.FriendRequest, error) {
	query := `
	SELECT u.id, CONCAT(u.nombre, ' ', u.apellido), u.email, a.fecha_solicitud
	FROM amistades a
	JOIN usuarios u ON a.usuario1_id = u.id
	WHERE a.usuario2_id = $1 AND a.estado = 'pendiente'
	ORDER BY a.fecha_solicitud
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("failed to list pending requests", err)
	}
	defer rows.Close()

	requests := []*friendship.FriendRequest{}
	for rows.Next() {
		req := &friendship.FriendRequest{}
		if err := rows.Scan(&req.RequesterID, &req.RequesterName, &req.Email, &req.RequestedAt); err != nil {
			return nil, storeErr("failed to scan pending request", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating pending requests", err)
	}

	return requests, nil
}

// AreFriends reports whether an accepted friendship links a and b.
func (s *FriendshipService) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM amistades
			WHERE ((usuario1_id = $1 AND usuario2_id = $2) OR (usuario1_id = $2 AND usuario2_id = $1))
			AND estado = 'aceptada'
		)
	`

	var friends bool
	if err := s.db.QueryRow(ctx, query, a, b).Scan(&friends); err != nil {
		log.Printf("AreFriends: failed to check friendship: %v", err)
		return false, storeErr("failed to check friendship", err)
	}

	return friends, nil
}
