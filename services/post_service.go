package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"redsocial/internal/metrics"
	"redsocial/internal/post"
	apperrors "redsocial/pkg/errors"
)

type PostService struct {
	db *pgxpool.Pool
}

func NewPostService(db *pgxpool.Pool) *PostService {
	return &PostService{db: db}
}

// CreatePost publishes a new post for authorID. Content is immutable once
// published; there is no edit path.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, req *post.CreatePostRequest) (p *post.Post, err error) {
	defer metrics.Track("posts", "create")(&err)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	kind := req.Kind
	if kind == "" {
		kind = post.KindText
	}
	if !kind.Valid() {
		return nil, apperrors.ErrInvalidKind
	}

	p = &post.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Content:  content,
		Kind:     kind,
		MediaURL: req.MediaURL,
	}

	query := `
	INSERT INTO publicaciones (id, usuario_id, contenido, tipo, url_media)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING fecha_publicacion, activa
	`

	err = s.db.QueryRow(ctx, query, p.ID, p.AuthorID, p.Content, p.Kind, p.MediaURL).
		Scan(&p.PublishedAt, &p.Active)
	if err != nil {
		if foreignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeErr("failed to create post", err)
	}

	return p, nil
}

// Like records that userID liked postID, at most once per pair. The target
// must be an active post; the check and the insert share one transaction
// so a concurrent soft delete cannot slip a like onto a dead post.
func (s *PostService) Like(ctx context.Context, userID, postID uuid.UUID) (err error) {
	defer metrics.Track("posts", "like")(&err)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return storeErr("failed to begin like", err)
	}
	defer tx.Rollback(ctx)

	if err = s.requireActivePost(ctx, tx, postID); err != nil {
		return err
	}

	query := `INSERT INTO me_gusta (usuario_id, publicacion_id) VALUES ($1, $2)`
	if _, err = tx.Exec(ctx, query, userID, postID); err != nil {
		if uniqueViolation(err, "me_gusta_pkey") {
			return apperrors.ErrAlreadyLiked
		}
		if foreignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return storeErr("failed to like post", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return storeErr("failed to commit like", err)
	}

	return nil
}

// Comment appends a comment to an active post.
func (s *PostService) Comment(ctx context.Context, userID, postID uuid.UUID, content string) (c *post.Comment, err error) {
	defer metrics.Track("posts", "comment")(&err)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, storeErr("failed to begin comment", err)
	}
	defer tx.Rollback(ctx)

	if err = s.requireActivePost(ctx, tx, postID); err != nil {
		return nil, err
	}

	c = &post.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}

	query := `
	INSERT INTO comentarios (id, publicacion_id, usuario_id, contenido)
	VALUES ($1, $2, $3, $4)
	RETURNING fecha_comentario, activo
	`

	if err = tx.QueryRow(ctx, query, c.ID, c.PostID, c.AuthorID, c.Content).Scan(&c.CommentedAt, &c.Active); err != nil {
		if foreignKeyViolation(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, storeErr("failed to create comment", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, storeErr("failed to commit comment", err)
	}

	return c, nil
}

// requireActivePost locks the post row for the rest of the transaction,
// so a soft delete in another session waits until the caller commits.
func (s *PostService) requireActivePost(ctx context.Context, tx pgx.Tx, postID uuid.UUID) error {
	var active bool
	err := tx.QueryRow(ctx, `SELECT activa FROM publicaciones WHERE id = $1 FOR SHARE`, postID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPostNotFound
		}
		return storeErr("failed to check post", err)
	}
	if !active {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// ListComments returns the active comments of a post, oldest first.
// Re-calling always re-queries, so the listing reflects current state.
func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID) ([]*post.Comment, error) {
	query := `
	SELECT c.id, c.publicacion_id, c.usuario_id, CONCAT(u.nombre, ' ', u.apellido),
	       c.contenido, c.fecha_comentario, c.activo
	FROM comentarios c
	JOIN usuarios u ON c.usuario_id = u.id
	WHERE c.publicacion_id = $1 AND c.activo = TRUE
	ORDER BY c.fecha_comentario ASC
	`

	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, storeErr("failed to list comments", err)
	}
	defer rows.Close()

	comments := []*post.Comment{}
	for rows.Next() {
		c := &post.Comment{}
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CommentedAt, &c.Active)
		if err != nil {
			return nil, storeErr("failed to scan comment", err)
		}
		comments = append(comments, c)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating comments", err)
	}

	return comments, nil
}

// DeletePost soft-deletes one of authorID's own posts.
func (s *PostService) DeletePost(ctx context.Context, authorID, postID uuid.UUID) (err error) {
	defer metrics.Track("posts", "delete")(&err)

	query := `UPDATE publicaciones SET activa = FALSE WHERE id = $2 AND usuario_id = $1 AND activa = TRUE`

	result, err := s.db.Exec(ctx, query, authorID, postID)
	if err != nil {
		return storeErr("failed to delete post", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// ListByAuthor returns a user's active posts with engagement counts,
// newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*post.View, error) {
	query := `
	SELECT p.id, p.usuario_id, p.contenido, p.tipo, p.url_media, p.fecha_publicacion, p.activa,
	       CONCAT(u.nombre, ' ', u.apellido),
	       (SELECT COUNT(*) FROM me_gusta mg WHERE mg.publicacion_id = p.id) AS total_likes,
	       (SELECT COUNT(*) FROM comentarios c WHERE c.publicacion_id = p.id AND c.activo = TRUE) AS total_comentarios
	FROM publicaciones p
	JOIN usuarios u ON p.usuario_id = u.id
	WHERE p.usuario_id = $1 AND p.activa = TRUE
	ORDER BY p.fecha_publicacion DESC
	`

	rows, err := s.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, storeErr("failed to list posts", err)
	}
	defer rows.Close()

	return scanPostViews(rows)
}

func scanPostViews(rows pgx.Rows) ([]*post.View, error) {
	views := []*post.View{}
	for rows.Next() {
		v := &post.View{}
		err := rows.Scan(
			&v.ID,
			&v.AuthorID,
			&v.Content,
			&v.Kind,
			&v.MediaURL,
			&v.PublishedAt,
			&v.Active,
			&v.AuthorName,
			&v.LikeCount,
			&v.CommentCount,
		)
		if err != nil {
			return nil, storeErr("failed to scan post", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("error iterating posts", err)
	}

	return views, nil
}
