package domain

type PostCreated struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
	Title    string `json:"title"`
}
type PostUpdated struct {
	PostID string `json:"postId"`
}
type PostDeleted struct {
	PostID string `json:"postId"`
}
type CommentCreated struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
	AuthorID  string `json:"authorId"`
}
type CommentModerated struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
	Status    string `json:"status"`
}
