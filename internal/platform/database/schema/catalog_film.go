package schema

// FilmTable represents the 'films' table
type FilmTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	ReleaseDate string
	Duration    string
	MpaID       string
}

// Film is the schema definition for films
var Film = FilmTable{
	Table:       "films",
	ID:          "id",
	Name:        "name",
	Description: "description",
	ReleaseDate: "releasedate",
	Duration:    "duration",
	MpaID:       "mpa_id",
}

func (t FilmTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.ReleaseDate, t.Duration, t.MpaID}
}
