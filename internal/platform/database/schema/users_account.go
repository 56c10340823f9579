package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	Name         string
	Role         string
	IsActive     string
	LastLoginAt  string
	LastLogoutAt string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	Name:         "name",
	Role:         "role",
	IsActive:     "isactive",
	LastLoginAt:  "lastloginat",
	LastLogoutAt: "lastlogoutat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Name, t.Role, t.IsActive, t.LastLoginAt,
		t.LastLogoutAt, t.CreatedAt, t.UpdatedAt,
	}
}
