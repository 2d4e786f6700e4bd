// Package mpa holds the rating-board classification reference data.
// Each film carries at most one classification.
package mpa

// MPA is a content-rating classification attached to a film.
type MPA struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Defaults returns the seed set used by the memory backend. The postgres
// backend seeds the same rows via migration.
func Defaults() []MPA {
	return []MPA{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
}
