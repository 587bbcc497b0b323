package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"redsocial/internal/message"
	"redsocial/internal/post"
	"redsocial/internal/stats"
)

// StatsService assembles the read-only views that combine several stores:
// the feed, per-user profile statistics, the inbox and recent activity. It
// owns no data and has no side effects; every count is recomputed from the
// underlying rows on each call, so there is nothing to go stale. Lookups
// for missing or inactive users yield empty results, never an error.
type StatsService struct {
	db *pgxpool.Pool
}

func NewStatsService(db *pgxpool.Pool) *StatsService {
	return &StatsService{db: db}
}

// Feed returns every active post by an active author, newest first, with
// the author's display name and exact engagement counts.
func (s *StatsService) Feed(ctx context.Context) ([]*post.View, error) {
	query := `
	SELECT p.id, p.usuario_id, p.contenido, p.tipo, p.url_media, p.fecha_publicacion, p.activa,
	       CONCAT(u.nombre, ' ', u.apellido) AS autor,
	       (SELECT COUNT(*) FROM me_gusta mg WHERE mg.publicacion_id = p.id) AS total_likes,
	       (SELECT COUNT(*) FROM comentarios c WHERE c.publicacion_id = p.id AND c.activo = TRUE) AS total_comentarios
	FROM publicaciones p
	JOIN usuarios u ON p.usuario_id = u.id
	WHERE p.activa = TRUE AND u.activo = TRUE
	ORDER BY p.fecha_publicacion DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to fetch feed", err)
	}
	defer rows.Close()

	return scanPostViews(rows)
}

// ProfileStats computes the eight profile counters, each with its own
// query. A missing or inactive user gets all zeroes.
func (s *StatsService) ProfileStats(ctx context.Context, userID uuid.UUID) (*stats.ProfileStats, error) {
	ps := &stats.ProfileStats{UserID: userID}

	active, err := s.userActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return ps, nil
	}

	counters := []struct {
		dst   *int
		query string
	}{
		{&ps.TotalPosts, `SELECT COUNT(*) FROM publicaciones WHERE usuario_id = $1 AND activa = TRUE`},
		{&ps.TotalFriends, `SELECT COUNT(*) FROM amistades WHERE (usuario1_id = $1 OR usuario2_id = $1) AND estado = 'aceptada'`},
		{&ps.LikesReceived, `SELECT COUNT(*) FROM me_gusta mg JOIN publicaciones p ON mg.publicacion_id = p.id WHERE p.usuario_id = $1 AND p.activa = TRUE`},
		{&ps.LikesGiven, `SELECT COUNT(*) FROM me_gusta WHERE usuario_id = $1`},
		{&ps.CommentsReceived, `SELECT COUNT(*) FROM comentarios c JOIN publicaciones p ON c.publicacion_id = p.id WHERE p.usuario_id = $1 AND c.activo = TRUE AND p.activa = TRUE`},
		{&ps.CommentsGiven, `SELECT COUNT(*) FROM comentarios WHERE usuario_id = $1 AND activo = TRUE`},
		{&ps.MessagesSent, `SELECT COUNT(*) FROM mensajes WHERE emisor_id = $1`},
		{&ps.MessagesReceived, `SELECT COUNT(*) FROM mensajes WHERE receptor_id = $1`},
	}

	for _, c := range counters {
		if err := s.db.QueryRow(ctx, c.query, userID).Scan(c.dst); err != nil {
			return nil, storeErr("failed to compute profile stats", err)
		}
	}

	return ps, nil
}

// Inbox returns the union of a user's sent and received messages, newest
// first, each tagged with its direction and the other party's name. The
// counterparty name resolves even for deactivated users so old threads
// stay readable.
func (s *StatsService) Inbox(ctx context.Context, userID uuid.UUID) ([]*message.View, error) {
	query := `
	SELECT m.id, m.contenido, m.fecha_envio, m.leido,
	       CASE WHEN m.emisor_id = $1 THEN 'sent' ELSE 'received' END AS direction,
	       CASE WHEN m.emisor_id = $1 THEN m.receptor_id ELSE m.emisor_id END AS counterparty,
	       CONCAT(u.nombre, ' ', u.apellido)
	FROM mensajes m
	JOIN usuarios u ON u.id = CASE WHEN m.emisor_id = $1 THEN m.receptor_id ELSE m.emisor_id END
	WHERE m.emisor_id = $1 OR m.receptor_id = $1
	ORDER BY m.fecha_envio DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("failed to fetch inbox", err)
	}
	defer rows.Close()

	views := []*message.View{}
	for rows.Next() {
		v := &message.View{}
		err := rows.Scan(&v.ID, &v.Content, &v.SentAt, &v.Read, &v.Direction, &v.CounterpartyID, &v.CounterpartyName)
		if err != nil {
			return nil, storeErr("failed to scan message", err)
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating inbox", err)
	}

	return views, nil
}

// RecentActivity returns the user's likes and comments within the trailing
// window, tagged by kind, newest first.
func (s *StatsService) RecentActivity(ctx context.Context, userID uuid.UUID, windowDays int) ([]*stats.ActivityEvent, error) {
	query := `
	SELECT 'like' AS tipo, mg.fecha_like AS fecha, p.id, CONCAT(u.nombre, ' ', u.apellido)
	FROM me_gusta mg
	JOIN publicaciones p ON mg.publicacion_id = p.id
	JOIN usuarios u ON p.usuario_id = u.id
	WHERE mg.usuario_id = $1 AND mg.fecha_like >= NOW() - make_interval(days => $2)
	UNION ALL
	SELECT 'comment' AS tipo, c.fecha_comentario AS fecha, p.id, CONCAT(u.nombre, ' ', u.apellido)
	FROM comentarios c
	JOIN publicaciones p ON c.publicacion_id = p.id
	JOIN usuarios u ON p.usuario_id = u.id
	WHERE c.usuario_id = $1 AND c.fecha_comentario >= NOW() - make_interval(days => $2)
	ORDER BY fecha DESC
	`

	rows, err := s.db.Query(ctx, query, userID, windowDays)
	if err != nil {
		return nil, storeErr("failed to fetch recent activity", err)
	}
	defer rows.Close()

	events := []*stats.ActivityEvent{}
	for rows.Next() {
		e := &stats.ActivityEvent{}
		if err := rows.Scan(&e.Kind, &e.OccurredAt, &e.PostID, &e.AuthorName); err != nil {
			return nil, storeErr("failed to scan activity event", err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, storeErr("error iterating activity", err)
	}

	return events, nil
}

func (s *StatsService) userActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	var active bool
	query := `SELECT EXISTS(SELECT 1 FROM usuarios WHERE id = $1 AND activo = TRUE)`
	if err := s.db.QueryRow(ctx, query, userID).Scan(&active); err != nil {
		return false, storeErr("failed to check user", err)
	}
	return active, nil
}
