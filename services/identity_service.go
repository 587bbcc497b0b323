package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"redsocial/internal/metrics"
	"redsocial/internal/user"
	apperrors "redsocial/pkg/errors"
)

type IdentityService struct {
	db *pgxpool.Pool
}

func NewIdentityService(db *pgxpool.Pool) *IdentityService {
	return &IdentityService{db: db}
}

const userColumns = `id, nombre, apellido, email, fecha_nacimiento, ubicacion, biografia, imagen_perfil, activo, fecha_registro`

const prefixedUserColumns = `u.id, u.nombre, u.apellido, u.email, u.fecha_nacimiento, u.ubicacion, u.biografia, u.imagen_perfil, u.activo, u.fecha_registro`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.BirthDate,
		&u.Location,
		&u.Bio,
		&u.ImageURL,
		&u.Active,
		&u.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates an active user. The password hash comes from the
// hashing collaborator; plaintext never reaches this service.
func (s *IdentityService) Register(ctx context.Context, req *user.RegisterRequest) (u *user.User, err error) {
	defer metrics.Track("identity", "register")(&err)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.PasswordHash == "" {
		return nil, apperrors.InvalidArg("email and password hash are required")
	}

	u = &user.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		BirthDate: req.BirthDate,
		Location:  strings.TrimSpace(req.Location),
		Bio:       strings.TrimSpace(req.Bio),
	}

	query := `
	INSERT INTO usuarios (id, nombre, apellido, email, password_hash, fecha_nacimiento, ubicacion, biografia)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING activo, fecha_registro
	`

	err = s.db.QueryRow(
		ctx,
		query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		req.PasswordHash,
		u.BirthDate,
		u.Location,
		u.Bio,
	).Scan(&u.Active, &u.RegisteredAt)

	if err != nil {
		if uniqueViolation(err, "usuarios_email_key") {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, storeErr("failed to create user", err)
	}

	return u, nil
}

// FindByCredentials looks up an active user by email and password digest.
// A miss is not an error: it returns (nil, nil).
func (s *IdentityService) FindByCredentials(ctx context.Context, email, passwordHash string) (*user.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM usuarios
	WHERE email = $1 AND password_hash = $2 AND activo = TRUE
	`

	u, err := scanUser(s.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email)), passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("failed to find user by credentials", err)
	}

	return u, nil
}

func (s *IdentityService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1 AND activo = TRUE`

	u, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeErr("failed to get user", err)
	}

	return u, nil
}

func (s *IdentityService) ListActive(ctx context.Context) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE activo = TRUE ORDER BY nombre, apellido`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to list users", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("failed to scan user", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating users", err)
	}

	return users, nil
}

// UpdateEmail changes the user's unique email. Only the owning user calls
// this; the caller passes the acting id.
func (s *IdentityService) UpdateEmail(ctx context.Context, id uuid.UUID, newEmail string) (err error) {
	defer metrics.Track("identity", "update_email")(&err)

	email := strings.ToLower(strings.TrimSpace(newEmail))
	if email == "" {
		return apperrors.InvalidArg("email is required")
	}

	result, err := s.db.Exec(ctx, `UPDATE usuarios SET email = $2 WHERE id = $1 AND activo = TRUE`, id, email)
	if err != nil {
		if uniqueViolation(err, "usuarios_email_key") {
			return apperrors.ErrDuplicateEmail
		}
		return storeErr("failed to update email", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (s *IdentityService) UpdatePhoto(ctx context.Context, id uuid.UUID, path string) (err error) {
	defer metrics.Track("identity", "update_photo")(&err)

	result, err := s.db.Exec(ctx, `UPDATE usuarios SET imagen_perfil = $2 WHERE id = $1 AND activo = TRUE`, id, path)
	if err != nil {
		return storeErr("failed to update photo", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetPhoto returns the stored photo path, or nil when none is set.
func (s *IdentityService) GetPhoto(ctx context.Context, id uuid.UUID) (*string, error) {
	var path *string
	err := s.db.QueryRow(ctx, `SELECT imagen_perfil FROM usuarios WHERE id = $1`, id).Scan(&path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeErr("failed to get photo", err)
	}
	return path, nil
}

// Deactivate soft-deletes the user. Rows are never hard-deleted, so
// history keeps resolving names.
func (s *IdentityService) Deactivate(ctx context.Context, id uuid.UUID) (err error) {
	defer metrics.Track("identity", "deactivate")(&err)

	result, err := s.db.Exec(ctx, `UPDATE usuarios SET activo = FALSE WHERE id = $1 AND activo = TRUE`, id)
	if err != nil {
		return storeErr("failed to deactivate user", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
