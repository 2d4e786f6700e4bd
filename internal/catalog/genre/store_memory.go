package genre

import (
	"context"
	"sort"
	"sync"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
)

// MemoryRepository is the in-process backend for genre reference data.
//
// The seed set is copied at construction and never mutated afterwards; the
// mutex only guards against races with future administrative reseeding.
type MemoryRepository struct {
	mu     sync.RWMutex
	genres map[int64]Genre
}

func NewMemoryRepository(seed []Genre) *MemoryRepository {
	repository := &MemoryRepository{genres: make(map[int64]Genre, len(seed))}
	for _, g := range seed {
		repository.genres[g.ID] = g
	}
	return repository
}

func (repository *MemoryRepository) ListGenres(context context.Context) ([]*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	genres := make([]*Genre, 0, len(repository.genres))
	for _, g := range repository.genres {
		genre := g
		genres = append(genres, &genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })

	return genres, nil
}

func (repository *MemoryRepository) GetGenreByID(context context.Context, id int64) (*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	g, ok := repository.genres[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	genre := g
	return &genre, nil
}
