package schema

// CoreBlogTable represents the 'core.blog' table
type CoreBlogTable struct {
	Table     string
	ID        string
	Slug      string
	Title     string
	Content   string
	Status    string
	ImageURL  string
	AuthorID  string
	CreatedAt string
	UpdatedAt string
}

// CoreBlog is the schema definition for core.blog
var CoreBlog = CoreBlogTable{
	Table:     "core.blog",
	ID:        "id",
	Slug:      "slug",
	Title:     "title",
	Content:   "content",
	Status:    "status",
	ImageURL:  "imageurl",
	AuthorID:  "authorid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t CoreBlogTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Content, t.Status, t.ImageURL,
		t.AuthorID, t.CreatedAt, t.UpdatedAt,
	}
}
