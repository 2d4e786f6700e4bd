package film

import (
	"context"
	"sort"
	"sync"

	"github.com/mkuznet/cinelog/internal/catalog/genre"
	"github.com/mkuznet/cinelog/internal/catalog/mpa"
	"github.com/mkuznet/cinelog/internal/platform/apperr"
)

// MemoryRepository is the process-local storage profile.
//
// Classification and genre references are resolved against the reference
// repositories at write time, so reads only have to attach like counts.
type MemoryRepository struct {
	mu     sync.RWMutex
	films  map[int64]*Film
	likes  map[int64]map[int64]struct{}
	nextID int64

	genres  genre.Repository
	ratings mpa.Repository
}

func NewMemoryRepository(genres genre.Repository, ratings mpa.Repository) *MemoryRepository {
	return &MemoryRepository{
		films:   make(map[int64]*Film),
		likes:   make(map[int64]map[int64]struct{}),
		nextID:  1,
		genres:  genres,
		ratings: ratings,
	}
}

func (repository *MemoryRepository) CreateFilm(context context.Context, film *Film) (*Film, error) {
	resolved, err := repository.resolveReferences(context, film)
	if err != nil {
		return nil, err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	resolved.ID = repository.nextID
	repository.nextID++

	repository.films[resolved.ID] = resolved
	return repository.withRate(resolved), nil
}

func (repository *MemoryRepository) UpdateFilm(context context.Context, film *Film) (*Film, error) {
	resolved, err := repository.resolveReferences(context, film)
	if err != nil {
		return nil, err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.films[film.ID]; !ok {
		return nil, apperr.NotFound("Film")
	}

	repository.films[film.ID] = resolved
	return repository.withRate(resolved), nil
}

func (repository *MemoryRepository) ListFilms(context context.Context) ([]*Film, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	films := make([]*Film, 0, len(repository.films))
	for _, f := range repository.films {
		films = append(films, repository.withRate(f))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })

	return films, nil
}

func (repository *MemoryRepository) GetFilmByID(context context.Context, id int64) (*Film, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	f, ok := repository.films[id]
	if !ok {
		return nil, apperr.NotFound("Film")
	}
	return repository.withRate(f), nil
}

func (repository *MemoryRepository) DeleteFilmByID(context context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.films[id]; !ok {
		return apperr.NotFound("Film")
	}

	delete(repository.films, id)
	delete(repository.likes, id)
	return nil
}

func (repository *MemoryRepository) ClearFilms(context context.Context) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.films = make(map[int64]*Film)
	repository.likes = make(map[int64]map[int64]struct{})
	repository.nextID = 1
	return nil
}

func (repository *MemoryRepository) AddLike(context context.Context, filmID, userID int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.films[filmID]; !ok {
		return apperr.NotFound("Film")
	}

	edges, ok := repository.likes[filmID]
	if !ok {
		edges = make(map[int64]struct{})
		repository.likes[filmID] = edges
	}
	edges[userID] = struct{}{}
	return nil
}

func (repository *MemoryRepository) DeleteLike(context context.Context, filmID, userID int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.films[filmID]; !ok {
		return false, apperr.NotFound("Film")
	}

	edges, ok := repository.likes[filmID]
	if !ok {
		return false, nil
	}
	if _, exists := edges[userID]; !exists {
		return false, nil
	}

	delete(edges, userID)
	return true, nil
}

func (repository *MemoryRepository) PopularFilms(context context.Context, count int) ([]*Film, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	films := make([]*Film, 0, len(repository.films))
	for _, f := range repository.films {
		films = append(films, repository.withRate(f))
	}

	// Like count descending, ascending id as the deterministic tie-break.
	sort.Slice(films, func(i, j int) bool {
		if films[i].Rate != films[j].Rate {
			return films[i].Rate > films[j].Rate
		}
		return films[i].ID < films[j].ID
	})

	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (repository *MemoryRepository) DeleteLikesByUser(context context.Context, userID int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, edges := range repository.likes {
		delete(edges, userID)
	}
	return nil
}

// resolveReferences replaces classification and genre stubs with their
// canonical records. Unknown ids surface as NotFound errors.
func (repository *MemoryRepository) resolveReferences(context context.Context, film *Film) (*Film, error) {
	resolved := film.Clone()
	resolved.NormalizeGenres()

	if resolved.MPA != nil {
		rating, err := repository.ratings.GetRatingByID(context, resolved.MPA.ID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.NotFound("Mpa")
			}
			return nil, err
		}
		resolved.MPA = rating
	}

	for i, g := range resolved.Genres {
		canonical, err := repository.genres.GetGenreByID(context, g.ID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.NotFound("Genre")
			}
			return nil, err
		}
		resolved.Genres[i] = *canonical
	}

	return resolved, nil
}

// withRate clones the stored film and attaches the current like count.
// Callers must hold at least the read lock.
func (repository *MemoryRepository) withRate(film *Film) *Film {
	out := film.Clone()
	out.Rate = int64(len(repository.likes[film.ID]))
	if out.Genres == nil {
		out.Genres = []genre.Genre{}
	}
	return out
}
