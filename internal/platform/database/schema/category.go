package schema

// CategoryTable represents the 'categories' table
type CategoryTable struct {
	Table       string
	Slug        string
	Description string
}

// Category is the schema definition for categories
var Category = CategoryTable{
	Table:       "categories",
	Slug:        "slug",
	Description: "description",
}

func (t CategoryTable) Columns() []string {
	return []string{t.Slug, t.Description}
}
