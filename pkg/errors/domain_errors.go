package errors

var (
	// Identity
	ErrDuplicateEmail = AlreadyExists("email is already registered")
	ErrUserNotFound   = NotFound("user not found or inactive")

	// Relationships
	ErrSelfRequest      = InvalidArg("cannot send a friend request to yourself")
	ErrFriendshipExists = AlreadyExists("a relationship already exists for this pair")
	ErrRequestNotFound  = NotFound("no pending request for this pair")

	// Content
	ErrEmptyContent = InvalidArg("content cannot be empty")
	ErrInvalidKind  = InvalidArg("post kind must be texto, imagen or video")
	ErrPostNotFound = NotFound("post not found or inactive")
	ErrAlreadyLiked = AlreadyExists("post already liked by this user")

	// Messaging
	ErrSelfMessage     = InvalidArg("cannot send a message to yourself")
	ErrMessageNotFound = NotFound("message not found for this recipient")
)

// ErrStoreUnavailable wraps a connection or transport failure to the
// backing store. The core never retries; the caller decides.
func ErrStoreUnavailable(cause error) error {
	return Unavailable("store unavailable", cause)
}
