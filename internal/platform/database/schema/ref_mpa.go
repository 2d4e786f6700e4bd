package schema

// RefMpaTable represents the 'mpa' classification reference table
type RefMpaTable struct {
	Table string
	ID    string
	Name  string
}

// RefMpa is the schema definition for mpa
var RefMpa = RefMpaTable{
	Table: "mpa",
	ID:    "id",
	Name:  "name",
}

func (t RefMpaTable) Columns() []string {
	return []string{t.ID, t.Name}
}
