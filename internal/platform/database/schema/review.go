package schema

// ReviewTable represents the 'reviews' table
type ReviewTable struct {
	Table        string
	ID           string
	Title        string
	Category     string
	Designer     string
	Owner        string
	ReviewBody   string
	ReviewImgURL string
	CreatedAt    string
	Votes        string

	// CommentCount is the alias of the aggregated comment count, not a stored column.
	CommentCount string
}

// Review is the schema definition for reviews
var Review = ReviewTable{
	Table:        "reviews",
	ID:           "review_id",
	Title:        "title",
	Category:     "category",
	Designer:     "designer",
	Owner:        "owner",
	ReviewBody:   "review_body",
	ReviewImgURL: "review_img_url",
	CreatedAt:    "created_at",
	Votes:        "votes",
	CommentCount: "comment_count",
}

// Columns lists the stored columns in scan order.
func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.Title, t.Category, t.Designer, t.Owner, t.ReviewBody, t.ReviewImgURL, t.CreatedAt, t.Votes}
}
