package schema

// ContentPostTable represents the 'content.post' table
type ContentPostTable struct {
	Table     string
	ID        string
	Title     string
	Body      string
	AuthorID  string
	Category  string
	Tags      string
	Published string
	Likes     string
	Views     string
	ReadTime  string
	CreatedAt string
	UpdatedAt string
}

// ContentPost is the schema definition for content.post
var ContentPost = ContentPostTable{
	Table:     "content.post",
	ID:        "id",
	Title:     "title",
	Body:      "body",
	AuthorID:  "authorid",
	Category:  "category",
	Tags:      "tags",
	Published: "published",
	Likes:     "likes",
	Views:     "views",
	ReadTime:  "readtime",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ContentPostTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Body, t.AuthorID, t.Category, t.Tags, t.Published,
		t.Likes, t.Views, t.ReadTime, t.CreatedAt, t.UpdatedAt,
	}
}
