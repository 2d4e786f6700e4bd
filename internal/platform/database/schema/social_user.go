package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table    string
	ID       string
	Login    string
	Name     string
	Email    string
	Birthday string
}

// User is the schema definition for users
var User = UserTable{
	Table:    "users",
	ID:       "id",
	Login:    "login",
	Name:     "name",
	Email:    "email",
	Birthday: "birthday",
}

func (t UserTable) Columns() []string {
	return []string{t.ID, t.Login, t.Name, t.Email, t.Birthday}
}
