package schema

// CommentTable represents the 'comments' table
type CommentTable struct {
	Table     string
	ID        string
	Body      string
	ReviewID  string
	Author    string
	Votes     string
	CreatedAt string
}

// Comment is the schema definition for comments
var Comment = CommentTable{
	Table:     "comments",
	ID:        "comment_id",
	Body:      "body",
	ReviewID:  "review_id",
	Author:    "author",
	Votes:     "votes",
	CreatedAt: "created_at",
}

func (t CommentTable) Columns() []string {
	return []string{t.ID, t.Body, t.ReviewID, t.Author, t.Votes, t.CreatedAt}
}
