package post

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindText  Kind = "texto"
	KindImage Kind = "imagen"
	KindVideo Kind = "video"
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindVideo:
		return true
	}
	return false
}

type Post struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AuthorID    uuid.UUID `json:"authorId" db:"usuario_id"`
	Content     string    `json:"content" db:"contenido"`
	Kind        Kind      `json:"kind" db:"tipo"`
	MediaURL    *string   `json:"mediaUrl,omitempty" db:"url_media"`
	PublishedAt time.Time `json:"publishedAt" db:"fecha_publicacion"`
	Active      bool      `json:"active" db:"activa"`
}

type Like struct {
	UserID  uuid.UUID `json:"userId" db:"usuario_id"`
	PostID  uuid.UUID `json:"postId" db:"publicacion_id"`
	LikedAt time.Time `json:"likedAt" db:"fecha_like"`
}

type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostID      uuid.UUID `json:"postId" db:"publicacion_id"`
	AuthorID    uuid.UUID `json:"authorId" db:"usuario_id"`
	AuthorName  string    `json:"authorName"`
	Content     string    `json:"content" db:"contenido"`
	CommentedAt time.Time `json:"commentedAt" db:"fecha_comentario"`
	Active      bool      `json:"active" db:"activo"`
}

// View is a feed entry: the post plus its author name and engagement
// counts, recomputed from the underlying rows on every read.
type View struct {
	Post
	AuthorName   string `json:"authorName"`
	LikeCount    int    `json:"likeCount"`
	CommentCount int    `json:"commentCount"`
}
