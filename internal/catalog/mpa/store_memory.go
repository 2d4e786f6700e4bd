package mpa

import (
	"context"
	"sort"
	"sync"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
)

// MemoryRepository is the in-process backend for classification reference data.
type MemoryRepository struct {
	mu      sync.RWMutex
	ratings map[int64]MPA
}

func NewMemoryRepository(seed []MPA) *MemoryRepository {
	repository := &MemoryRepository{ratings: make(map[int64]MPA, len(seed))}
	for _, rating := range seed {
		repository.ratings[rating.ID] = rating
	}
	return repository
}

func (repository *MemoryRepository) ListRatings(context context.Context) ([]*MPA, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	ratings := make([]*MPA, 0, len(repository.ratings))
	for _, r := range repository.ratings {
		rating := r
		ratings = append(ratings, &rating)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })

	return ratings, nil
}

func (repository *MemoryRepository) GetRatingByID(context context.Context, id int64) (*MPA, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	r, ok := repository.ratings[id]
	if !ok {
		return nil, apperr.NotFound("Mpa")
	}
	rating := r
	return &rating, nil
}
