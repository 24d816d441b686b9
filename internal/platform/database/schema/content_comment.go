package schema

// ContentCommentTable represents the 'content.comment' table
type ContentCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt string
}

// ContentComment is the schema definition for content.comment
var ContentComment = ContentCommentTable{
	Table:     "content.comment",
	ID:        "id",
	PostID:    "postid",
	AuthorID:  "authorid",
	Content:   "content",
	CreatedAt: "createdat",
}
