package schema

// RefGenreTable represents the 'genres' reference table
type RefGenreTable struct {
	Table string
	ID    string
	Name  string
}

// RefGenre is the schema definition for genres
var RefGenre = RefGenreTable{
	Table: "genres",
	ID:    "id",
	Name:  "name",
}

func (t RefGenreTable) Columns() []string {
	return []string{t.ID, t.Name}
}
