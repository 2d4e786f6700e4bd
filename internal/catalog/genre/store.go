package genre

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListGenres(context context.Context) ([]*Genre, error)
	GetGenreByID(context context.Context, id int64) (*Genre, error)
}
