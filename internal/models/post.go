package models

// Post is a community update.
type Post struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	AuthorID   Ref       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Location   *string   `json:"location,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  Timestamp `json:"created_at"`
}

// PostCreate is the payload for a new post.
type PostCreate struct {
	Content  string   `json:"content"`
	Location *string  `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Comment belongs to a post.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	Content    string    `json:"content"`
	AuthorID   Ref       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  Timestamp `json:"created_at"`
}

// CommentCreate is the payload for a new comment.
type CommentCreate struct {
	Content string `json:"content"`
}

// ChatMessage is the payload for the community chat.
type ChatMessage struct {
	Content string `json:"content"`
}

// ChatEntry is a stored chat message.
type ChatEntry struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	UserID     Ref       `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
}
