// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package film

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/platform/validate"
)

// # Service Layer

// Service orchestrates business logic for the film catalog: the content
// contract, duplicate detection, like edges, and popularity ranking.
type Service struct {
	repository Repository
	users      UserDirectory
	strict     bool
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
//
// When strict is true, every film must carry a classification; the default
// profile treats it as optional.
func NewService(repository Repository, users UserDirectory, strict bool, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		users:      users,
		strict:     strict,
		logger:     logger,
	}
}

// # Catalog Management

/*
Create adds a new film to the catalog.

Description: Rejects duplicates (by id or by full content), validates the
film contract in priority order, and persists the film with a
store-assigned id and its normalized genre set.

Parameters:
  - context: context.Context
  - film: *Film

Returns:
  - *Film: The created film, hydrated
  - error: Duplicate, validation, reference, or storage failures
*/
func (service *Service) Create(context context.Context, film *Film) (*Film, error) {

	// Business: A client-supplied id must not collide with an existing film
	if film.ID != 0 {
		if _, err := service.repository.GetFilmByID(context, film.ID); err == nil {
			return nil, apperr.AlreadyExists(fmt.Sprintf("Film with id %d already exists", film.ID))
		} else if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("film_service_create_lookup_failed: %w", err)
		}
	}

	// Business: Two films with identical business fields are duplicates
	existing, err := service.repository.ListFilms(context)
	if err != nil {
		return nil, fmt.Errorf("film_service_create_list_failed: %w", err)
	}
	for _, candidate := range existing {
		if candidate.ContentKey() == film.ContentKey() {
			return nil, apperr.AlreadyExists("Film with the same data already exists")
		}
	}

	if err := service.validateFilm(film); err != nil {
		return nil, err
	}

	created, err := service.repository.CreateFilm(context, film)
	if err != nil {
		return nil, err
	}

	service.logger.Info("film_created",
		slog.Int64("film_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}

/*
Update replaces all mutable fields of an existing film, including its
genre set and classification.

Parameters:
  - context: context.Context
  - film: *Film

Returns:
  - *Film: The updated film, hydrated
  - error: Identity, validation, reference, or storage failures
*/
func (service *Service) Update(context context.Context, film *Film) (*Film, error) {

	// Business: Updates address films strictly by id
	if film.ID <= 0 {
		return nil, apperr.InvalidID("Film id is required for update")
	}
	if _, err := service.repository.GetFilmByID(context, film.ID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.InvalidID(fmt.Sprintf("Film with id %d is unknown", film.ID))
		}
		return nil, fmt.Errorf("film_service_update_lookup_failed: %w", err)
	}

	if err := service.validateFilm(film); err != nil {
		return nil, err
	}

	updated, err := service.repository.UpdateFilm(context, film)
	if err != nil {
		return nil, err
	}

	service.logger.Info("film_updated", slog.Int64("film_id", updated.ID))

	return updated, nil
}

// FindAll returns every film in ascending id order.
func (service *Service) FindAll(context context.Context) ([]*Film, error) {
	films, err := service.repository.ListFilms(context)
	if err != nil {
		return nil, fmt.Errorf("film_service_list_failed: %w", err)
	}
	if films == nil {
		films = []*Film{}
	}
	return films, nil
}

// FindByID returns one film or a NotFound error.
func (service *Service) FindByID(context context.Context, id int64) (*Film, error) {
	film, err := service.repository.GetFilmByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Film")
		}
		return nil, fmt.Errorf("film_service_get_failed: %w", err)
	}
	return film, nil
}

// Delete removes one film together with its genre links and likes.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.DeleteFilmByID(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Film")
		}
		return fmt.Errorf("film_service_delete_failed: %w", err)
	}

	service.logger.Info("film_deleted", slog.Int64("film_id", id))
	return nil
}

// Clear removes every film, genre link, and like. Intended for test
// harness resets, not for regular API traffic.
func (service *Service) Clear(context context.Context) error {
	if err := service.repository.ClearFilms(context); err != nil {
		return fmt.Errorf("film_service_clear_failed: %w", err)
	}
	service.logger.Info("films_cleared")
	return nil
}

// # Likes & Popularity

/*
AddLike records that a user likes a film.

Description: The edge is idempotent; liking the same film twice leaves a
single edge. Both endpoints must exist.

Parameters:
  - context: context.Context
  - filmID: int64
  - userID: int64

Returns:
  - error: Identity, not-found, or storage failures
*/
func (service *Service) AddLike(context context.Context, filmID, userID int64) error {
	if err := service.checkLikePair(context, filmID, userID); err != nil {
		return err
	}

	if err := service.repository.AddLike(context, filmID, userID); err != nil {
		return fmt.Errorf("film_service_add_like_failed: %w", err)
	}

	service.logger.Info("like_added",
		slog.Int64("film_id", filmID),
		slog.Int64("user_id", userID),
	)

	return nil
}

/*
DeleteLike removes a user's like from a film.

Description: Removing a like that does not exist is not an error; the
returned flag tells the caller whether anything was actually deleted.

Parameters:
  - context: context.Context
  - filmID: int64
  - userID: int64

Returns:
  - bool: Whether a like was removed
  - error: Identity, not-found, or storage failures
*/
func (service *Service) DeleteLike(context context.Context, filmID, userID int64) (bool, error) {
	if err := service.checkLikePair(context, filmID, userID); err != nil {
		return false, err
	}

	removed, err := service.repository.DeleteLike(context, filmID, userID)
	if err != nil {
		return false, fmt.Errorf("film_service_delete_like_failed: %w", err)
	}

	if removed {
		service.logger.Info("like_removed",
			slog.Int64("film_id", filmID),
			slog.Int64("user_id", userID),
		)
	}

	return removed, nil
}

/*
FindPopular returns the most-liked films.

Description: Ordering is like count descending with ascending id as the
deterministic tie-break. Fewer than count films in the catalog simply
yields a shorter list.

Parameters:
  - context: context.Context
  - count: int

Returns:
  - []*Film: Up to count films, hydrated
  - error: Validation or storage failures
*/
func (service *Service) FindPopular(context context.Context, count int) ([]*Film, error) {
	if count <= 0 {
		return nil, validate.RequiredError("count", "Must be a positive number")
	}

	films, err := service.repository.PopularFilms(context, count)
	if err != nil {
		return nil, fmt.Errorf("film_service_popular_failed: %w", err)
	}
	if films == nil {
		films = []*Film{}
	}
	return films, nil
}

// # Internal Helpers

// checkLikePair validates both endpoints of a like operation: positive ids
// first, then existence of the film and the user.
func (service *Service) checkLikePair(context context.Context, filmID, userID int64) error {
	if filmID <= 0 || userID <= 0 {
		return apperr.InvalidID("Film and user ids must be positive")
	}

	if _, err := service.repository.GetFilmByID(context, filmID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("Film")
		}
		return fmt.Errorf("film_service_lookup_failed: %w", err)
	}

	if _, err := service.users.GetUserByID(context, userID); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("film_service_user_lookup_failed: %w", err)
	}

	return nil
}

// validateFilm enforces the film contract in priority order: name first,
// then description, release date, duration, and finally the strict-profile
// classification rule.
func (service *Service) validateFilm(film *Film) error {
	v := &validate.Validator{}
	v.Required("name", film.Name)
	v.MaxLen("description", film.Description, MaxDescriptionLen)
	// An absent date is the zero time, which predates the epoch and fails too.
	v.NotBefore("releaseDate", film.ReleaseDate.Time, CinemaEpoch.Time)
	v.Positive("duration", film.Duration)
	if service.strict {
		v.Custom("mpa", film.MPA == nil, "Classification is required")
	}
	return v.Err()
}
