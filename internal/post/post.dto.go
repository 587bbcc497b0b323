package post

type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required"`
	Kind     Kind    `json:"kind,omitempty"`
	MediaURL *string `json:"mediaUrl,omitempty"`
}
