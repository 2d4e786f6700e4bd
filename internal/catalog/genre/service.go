package genre

import (
	"context"
	"log/slog"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

func (service *Service) GetGenre(context context.Context, id int64) (*Genre, error) {
	g, err := service.repo.GetGenreByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Genre")
		}
		return nil, err
	}
	return g, nil
}
