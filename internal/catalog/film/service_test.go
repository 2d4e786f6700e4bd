// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package film_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznet/cinelog/internal/catalog/film"
	"github.com/mkuznet/cinelog/internal/catalog/genre"
	"github.com/mkuznet/cinelog/internal/catalog/mpa"
	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/social/user"
	"github.com/mkuznet/cinelog/pkg/dateonly"
)

type fixture struct {
	films *film.Service
	users *user.Service
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()

	genres := genre.NewMemoryRepository(genre.Defaults())
	ratings := mpa.NewMemoryRepository(mpa.Defaults())
	userRepo := user.NewMemoryRepository()
	filmRepo := film.NewMemoryRepository(genres, ratings)

	return &fixture{
		films: film.NewService(filmRepo, userRepo, strict, slog.Default()),
		users: user.NewService(userRepo, filmRepo, slog.Default()),
	}
}

func validFilm(name string) *film.Film {
	return &film.Film{
		Name:        name,
		Description: "A test entry",
		ReleaseDate: dateonly.New(1999, time.October, 12),
		Duration:    120,
	}
}

func (f *fixture) mustCreateUser(t *testing.T, login string) *user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &user.User{
		Login:    login,
		Email:    login + "@example.com",
		Birthday: dateonly.New(1990, time.January, 1),
	})
	require.NoError(t, err)
	return u
}

/*
TestService_Create covers id assignment, duplicate detection, and
reference resolution.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns_sequential_ids", func(t *testing.T) {
		fx := newFixture(t, false)

		first, err := fx.films.Create(ctx, validFilm("First"))
		require.NoError(t, err)
		second, err := fx.films.Create(ctx, validFilm("Second"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("resolves_classification_and_genres", func(t *testing.T) {
		fx := newFixture(t, false)

		f := validFilm("Annotated")
		f.MPA = &mpa.MPA{ID: 3}
		f.Genres = []genre.Genre{{ID: 2}, {ID: 1}, {ID: 2}}

		created, err := fx.films.Create(ctx, f)
		require.NoError(t, err)

		require.NotNil(t, created.MPA)
		assert.Equal(t, "PG-13", created.MPA.Name)

		// Deduplicated and ordered by genre id, names hydrated.
		require.Len(t, created.Genres, 2)
		assert.Equal(t, int64(1), created.Genres[0].ID)
		assert.Equal(t, "Комедия", created.Genres[0].Name)
		assert.Equal(t, int64(2), created.Genres[1].ID)
	})

	t.Run("unknown_classification", func(t *testing.T) {
		fx := newFixture(t, false)

		f := validFilm("BadRating")
		f.MPA = &mpa.MPA{ID: 99}

		_, err := fx.films.Create(ctx, f)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("unknown_genre", func(t *testing.T) {
		fx := newFixture(t, false)

		f := validFilm("BadGenre")
		f.Genres = []genre.Genre{{ID: 99}}

		_, err := fx.films.Create(ctx, f)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("rejects_duplicate_content", func(t *testing.T) {
		fx := newFixture(t, false)

		_, err := fx.films.Create(ctx, validFilm("Twice"))
		require.NoError(t, err)

		_, err = fx.films.Create(ctx, validFilm("Twice"))
		require.Error(t, err)
		assert.Equal(t, "ALREADY_EXISTS", apperr.As(err).Code)
	})
}

/*
TestService_Create_Validation checks each field rule and the priority
order of the reported details.
*/
func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(f *film.Film)
		firstField string
	}{
		{"blank_name", func(f *film.Film) { f.Name = "" }, "name"},
		{"description_too_long", func(f *film.Film) { f.Description = strings.Repeat("x", 201) }, "description"},
		{"release_before_first_screening", func(f *film.Film) { f.ReleaseDate = dateonly.New(1895, time.December, 27) }, "releaseDate"},
		{"missing_release_date", func(f *film.Film) { f.ReleaseDate = dateonly.Date{} }, "releaseDate"},
		{"zero_duration", func(f *film.Film) { f.Duration = 0 }, "duration"},
		{"negative_duration", func(f *film.Film) { f.Duration = -5 }, "duration"},
		{"name_beats_duration", func(f *film.Film) { f.Name = ""; f.Duration = 0 }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, false)

			f := validFilm("Candidate")
			tt.mutate(f)

			_, err := fx.films.Create(ctx, f)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.firstField, ae.Details[0].Field)
		})
	}

	t.Run("epoch_boundary_is_accepted", func(t *testing.T) {
		fx := newFixture(t, false)

		f := validFilm("FirstScreening")
		f.ReleaseDate = dateonly.New(1895, time.December, 28)

		_, err := fx.films.Create(ctx, f)
		require.NoError(t, err)
	})

	t.Run("description_at_limit_is_accepted", func(t *testing.T) {
		fx := newFixture(t, false)

		f := validFilm("Limit")
		f.Description = strings.Repeat("x", 200)

		_, err := fx.films.Create(ctx, f)
		require.NoError(t, err)
	})
}

type failingLookupRepo struct {
	*film.MemoryRepository
}

func (r *failingLookupRepo) GetFilmByID(_ context.Context, _ int64) (*film.Film, error) {
	return nil, errors.New("connection reset")
}

/*
TestService_Create_LookupFailure ensures a storage failure during the
id-collision probe aborts the create instead of being read as "id free".
*/
func TestService_Create_LookupFailure(t *testing.T) {
	ctx := context.Background()

	repo := &failingLookupRepo{film.NewMemoryRepository(
		genre.NewMemoryRepository(genre.Defaults()),
		mpa.NewMemoryRepository(mpa.Defaults()),
	)}
	service := film.NewService(repo, user.NewMemoryRepository(), false, slog.Default())

	f := validFilm("Unreachable")
	f.ID = 7

	_, err := service.Create(ctx, f)
	require.Error(t, err)
	assert.False(t, apperr.IsAppError(err))

	all, listErr := repo.ListFilms(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

/*
TestService_StrictClassification verifies the strict profile: a film
without a classification is rejected.
*/
func TestService_StrictClassification(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, true)

	_, err := fx.films.Create(ctx, validFilm("Unrated"))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "mpa", ae.Details[0].Field)

	rated := validFilm("Rated")
	rated.MPA = &mpa.MPA{ID: 1}
	_, err = fx.films.Create(ctx, rated)
	require.NoError(t, err)
}

/*
TestService_Update verifies identity rules and full genre-set replacement.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, false)

	f := validFilm("Original")
	f.Genres = []genre.Genre{{ID: 1}, {ID: 2}}
	created, err := fx.films.Create(ctx, f)
	require.NoError(t, err)

	t.Run("replaces_genre_set", func(t *testing.T) {
		created.Genres = []genre.Genre{{ID: 4}}

		updated, err := fx.films.Update(ctx, created)
		require.NoError(t, err)
		require.Len(t, updated.Genres, 1)
		assert.Equal(t, int64(4), updated.Genres[0].ID)
	})

	t.Run("unknown_id_is_identity_error", func(t *testing.T) {
		ghost := validFilm("Ghost")
		ghost.ID = 9999

		_, err := fx.films.Update(ctx, ghost)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})
}

/*
TestService_Likes covers the like edge rules: idempotency, endpoint
validation, and tolerant removal.
*/
func TestService_Likes(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, false)

	f1, err := fx.films.Create(ctx, validFilm("Liked"))
	require.NoError(t, err)
	u1 := fx.mustCreateUser(t, "viewer1")

	t.Run("like_is_idempotent", func(t *testing.T) {
		require.NoError(t, fx.films.AddLike(ctx, f1.ID, u1.ID))
		require.NoError(t, fx.films.AddLike(ctx, f1.ID, u1.ID))

		got, err := fx.films.FindByID(ctx, f1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Rate)
	})

	t.Run("nonpositive_ids", func(t *testing.T) {
		err := fx.films.AddLike(ctx, 0, u1.ID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})

	t.Run("missing_film", func(t *testing.T) {
		err := fx.films.AddLike(ctx, 9999, u1.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("missing_user", func(t *testing.T) {
		err := fx.films.AddLike(ctx, f1.ID, 9999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("delete_is_tolerant", func(t *testing.T) {
		removed, err := fx.films.DeleteLike(ctx, f1.ID, u1.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = fx.films.DeleteLike(ctx, f1.ID, u1.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

/*
TestService_FindPopular covers the ranking contract: like count
descending, id ascending on ties, truncation, and count validation.
*/
func TestService_FindPopular(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, false)

	f1, err := fx.films.Create(ctx, validFilm("One"))
	require.NoError(t, err)
	f2, err := fx.films.Create(ctx, validFilm("Two"))
	require.NoError(t, err)
	f3, err := fx.films.Create(ctx, validFilm("Three"))
	require.NoError(t, err)

	u1 := fx.mustCreateUser(t, "fan1")
	u2 := fx.mustCreateUser(t, "fan2")

	// f2 gets two likes, f1 one, f3 none.
	require.NoError(t, fx.films.AddLike(ctx, f2.ID, u1.ID))
	require.NoError(t, fx.films.AddLike(ctx, f2.ID, u2.ID))
	require.NoError(t, fx.films.AddLike(ctx, f1.ID, u1.ID))

	t.Run("orders_by_like_count", func(t *testing.T) {
		popular, err := fx.films.FindPopular(ctx, 10)
		require.NoError(t, err)
		require.Len(t, popular, 3)
		assert.Equal(t, f2.ID, popular[0].ID)
		assert.Equal(t, f1.ID, popular[1].ID)
		assert.Equal(t, f3.ID, popular[2].ID)
	})

	t.Run("truncates_to_count", func(t *testing.T) {
		popular, err := fx.films.FindPopular(ctx, 1)
		require.NoError(t, err)
		require.Len(t, popular, 1)
		assert.Equal(t, f2.ID, popular[0].ID)
	})

	t.Run("ties_break_by_ascending_id", func(t *testing.T) {
		require.NoError(t, fx.films.AddLike(ctx, f1.ID, u2.ID))

		popular, err := fx.films.FindPopular(ctx, 2)
		require.NoError(t, err)
		require.Len(t, popular, 2)
		assert.Equal(t, f1.ID, popular[0].ID)
		assert.Equal(t, f2.ID, popular[1].ID)
	})

	t.Run("nonpositive_count", func(t *testing.T) {
		_, err := fx.films.FindPopular(ctx, 0)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_UserDeletionCascade verifies that deleting a user through the
user service drops that user's likes from the films.
*/
func TestService_UserDeletionCascade(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t, false)

	f1, err := fx.films.Create(ctx, validFilm("Cascade"))
	require.NoError(t, err)
	u1 := fx.mustCreateUser(t, "leaver")

	require.NoError(t, fx.films.AddLike(ctx, f1.ID, u1.ID))
	require.NoError(t, fx.users.Delete(ctx, u1.ID))

	got, err := fx.films.FindByID(ctx, f1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Rate)
}
