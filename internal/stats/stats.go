package stats

import (
	"time"

	"github.com/google/uuid"
)

// ProfileStats bundles the per-user counters the profile window shows.
// JSON names keep the aliases the original report used. Every counter
// defaults to zero when no rows match.
type ProfileStats struct {
	UserID           uuid.UUID `json:"userId"`
	TotalPosts       int       `json:"total_publicaciones"`
	TotalFriends     int       `json:"total_amigos"`
	LikesReceived    int       `json:"total_likes_recibidos"`
	LikesGiven       int       `json:"total_likes_dados"`
	CommentsReceived int       `json:"total_comentarios_recibidos"`
	CommentsGiven    int       `json:"total_comentarios_dados"`
	MessagesSent     int       `json:"total_mensajes_enviados"`
	MessagesReceived int       `json:"total_mensajes_recibidos"`
}

type ActivityKind string

const (
	ActivityLike    ActivityKind = "like"
	ActivityComment ActivityKind = "comment"
)

// ActivityEvent is one entry of a user's recent-interactions view: a like
// or comment they made, tagged with whose post it landed on.
type ActivityEvent struct {
	Kind       ActivityKind `json:"kind"`
	OccurredAt time.Time    `json:"occurredAt"`
	PostID     uuid.UUID    `json:"postId"`
	AuthorName string       `json:"authorName"`
}
