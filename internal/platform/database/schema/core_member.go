package schema

// CoreMemberTable represents the 'core.member' table
type CoreMemberTable struct {
	Table           string
	ID              string
	Name            string
	Category        string
	Position        string
	Description     string
	ProfileImageURL string
	IsActive        string
	CreatedAt       string
	UpdatedAt       string
}

// CoreMember is the schema definition for core.member
var CoreMember = CoreMemberTable{
	Table:           "core.member",
	ID:              "id",
	Name:            "name",
	Category:        "category",
	Position:        "position",
	Description:     "description",
	ProfileImageURL: "profileimageurl",
	IsActive:        "isactive",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CoreMemberTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Category, t.Position, t.Description,
		t.ProfileImageURL, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
