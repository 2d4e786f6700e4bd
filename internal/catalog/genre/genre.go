package genre

// Genre is a descriptive tag attached to films, many-to-many.
// The set is static reference data, seeded once and never mutated at runtime.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Defaults returns the seed set used by the memory backend. The postgres
// backend seeds the same rows via migration.
func Defaults() []Genre {
	return []Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}
