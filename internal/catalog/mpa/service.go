package mpa

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

func (service *Service) ListRatings(context context.Context) ([]*MPA, error) {
	return service.repo.ListRatings(context)
}

func (service *Service) GetRating(context context.Context, id int64) (*MPA, error) {
	rating, err := service.repo.GetRatingByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Mpa")
		}
		return nil, err
	}
	return rating, nil
}
