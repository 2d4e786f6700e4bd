package film

import (
	"context"

	"github.com/mkuznet/cinelog/internal/social/user"
)

// Repository defines the data access contract for films and the likes edge
// set. Both the memory and the postgres backends implement it.
//
// All read methods return films fully hydrated: classification and genre
// names resolved, Rate set to the current like count.
type Repository interface {
	// CreateFilm persists a new film and assigns its id. Unknown genre or
	// classification references surface as NotFound errors.
	CreateFilm(context context.Context, film *Film) (*Film, error)

	// UpdateFilm replaces all mutable fields of an existing film, including
	// the full genre set.
	UpdateFilm(context context.Context, film *Film) (*Film, error)

	// ListFilms returns all films in store-defined order.
	ListFilms(context context.Context) ([]*Film, error)

	// GetFilmByID returns the film or a NotFound error.
	GetFilmByID(context context.Context, id int64) (*Film, error)

	// DeleteFilmByID removes one film and cascades to its genre links and likes.
	DeleteFilmByID(context context.Context, id int64) error

	// ClearFilms removes all films, genre links, and likes.
	ClearFilms(context context.Context) error

	// AddLike inserts the edge userID -> filmID. Re-liking is a no-op.
	AddLike(context context.Context, filmID, userID int64) error

	// DeleteLike removes the edge userID -> filmID. It reports whether an
	// edge was actually removed.
	DeleteLike(context context.Context, filmID, userID int64) (bool, error)

	// PopularFilms returns up to count films ordered by like count
	// descending, ties broken by ascending film id.
	PopularFilms(context context.Context, count int) ([]*Film, error)

	// DeleteLikesByUser removes every like the given user has placed. Used
	// as the cascade hook when a user account is deleted.
	DeleteLikesByUser(context context.Context, userID int64) error
}

// UserDirectory is the read view of the user store the film service needs
// to validate like endpoints. Satisfied by the user repository.
type UserDirectory interface {
	GetUserByID(context context.Context, id int64) (*user.User, error)
}
