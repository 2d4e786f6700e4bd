// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package user_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/social/user"
	"github.com/mkuznet/cinelog/pkg/dateonly"
)

func newService(t *testing.T) *user.Service {
	t.Helper()
	return user.NewService(user.NewMemoryRepository(), nil, slog.Default())
}

func validUser(login string) *user.User {
	return &user.User{
		Login:    login,
		Name:     "",
		Email:    login + "@example.com",
		Birthday: dateonly.New(1990, time.March, 14),
	}
}

/*
TestService_Create covers id assignment, name normalization, and the
validation priority order.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns_sequential_ids", func(t *testing.T) {
		service := newService(t)

		first, err := service.Create(ctx, validUser("alice"))
		require.NoError(t, err)
		second, err := service.Create(ctx, validUser("bob"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("blank_name_falls_back_to_login", func(t *testing.T) {
		service := newService(t)

		created, err := service.Create(ctx, validUser("carol"))
		require.NoError(t, err)
		assert.Equal(t, "carol", created.Name)
	})

	t.Run("explicit_name_is_kept", func(t *testing.T) {
		service := newService(t)

		u := validUser("dave")
		u.Name = "Dave D."
		created, err := service.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, "Dave D.", created.Name)
	})

	t.Run("rejects_duplicate_content", func(t *testing.T) {
		service := newService(t)

		_, err := service.Create(ctx, validUser("erin"))
		require.NoError(t, err)

		_, err = service.Create(ctx, validUser("erin"))
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "ALREADY_EXISTS", ae.Code)
	})

	t.Run("duplicate_check_sees_normalized_names", func(t *testing.T) {
		service := newService(t)

		// Stored with the blank name already normalized to the login.
		_, err := service.Create(ctx, validUser("walt"))
		require.NoError(t, err)

		// Same user resubmitted with the name spelled out explicitly.
		resubmitted := validUser("walt")
		resubmitted.Name = "walt"
		_, err = service.Create(ctx, resubmitted)
		require.Error(t, err)
		assert.Equal(t, "ALREADY_EXISTS", apperr.As(err).Code)
	})

	t.Run("rejects_duplicate_id", func(t *testing.T) {
		service := newService(t)

		created, err := service.Create(ctx, validUser("frank"))
		require.NoError(t, err)

		clash := validUser("grace")
		clash.ID = created.ID
		_, err = service.Create(ctx, clash)
		require.Error(t, err)
		assert.Equal(t, "ALREADY_EXISTS", apperr.As(err).Code)
	})
}

/*
TestService_Create_Validation checks each field rule and that the first
detail names the highest-priority failing field.
*/
func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		mutate     func(u *user.User)
		firstField string
	}{
		{"blank_login", func(u *user.User) { u.Login = "" }, "login"},
		{"login_with_spaces", func(u *user.User) { u.Login = "bad login" }, "login"},
		{"email_without_at", func(u *user.User) { u.Email = "not-an-email" }, "email"},
		{"future_birthday", func(u *user.User) { u.Birthday = dateonly.FromTime(time.Now().AddDate(1, 0, 0)) }, "birthday"},
		{"login_beats_email", func(u *user.User) { u.Login = ""; u.Email = "nope" }, "login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(t)

			u := validUser("henry")
			tt.mutate(u)

			_, err := service.Create(ctx, u)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.firstField, ae.Details[0].Field)
		})
	}
}

/*
TestService_Update verifies the identity rules for updates.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	created, err := service.Create(ctx, validUser("iris"))
	require.NoError(t, err)

	t.Run("replaces_fields", func(t *testing.T) {
		created.Name = "Iris Q."
		created.Email = "iris.q@example.com"

		updated, err := service.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "Iris Q.", updated.Name)
		assert.Equal(t, "iris.q@example.com", updated.Email)
	})

	t.Run("missing_id_is_identity_error", func(t *testing.T) {
		u := validUser("judy")
		_, err := service.Update(ctx, u)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})

	t.Run("unknown_id_is_identity_error", func(t *testing.T) {
		u := validUser("kate")
		u.ID = 9999
		_, err := service.Update(ctx, u)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})
}

/*
TestService_Friends covers the directed friendship graph: one-way edges,
idempotent adds, tolerant removals, and mutual friend intersection.
*/
func TestService_Friends(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	u1, err := service.Create(ctx, validUser("user1"))
	require.NoError(t, err)
	u2, err := service.Create(ctx, validUser("user2"))
	require.NoError(t, err)
	u3, err := service.Create(ctx, validUser("user3"))
	require.NoError(t, err)

	t.Run("edges_are_directed", func(t *testing.T) {
		require.NoError(t, service.AddFriend(ctx, u1.ID, u2.ID))

		friendsOf1, err := service.GetFriends(ctx, u1.ID)
		require.NoError(t, err)
		require.Len(t, friendsOf1, 1)
		assert.Equal(t, u2.ID, friendsOf1[0].ID)

		friendsOf2, err := service.GetFriends(ctx, u2.ID)
		require.NoError(t, err)
		assert.Empty(t, friendsOf2)
	})

	t.Run("add_is_idempotent", func(t *testing.T) {
		require.NoError(t, service.AddFriend(ctx, u1.ID, u2.ID))

		friendsOf1, err := service.GetFriends(ctx, u1.ID)
		require.NoError(t, err)
		assert.Len(t, friendsOf1, 1)
	})

	t.Run("self_friendship_is_rejected", func(t *testing.T) {
		err := service.AddFriend(ctx, u1.ID, u1.ID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})

	t.Run("unknown_endpoint_is_not_found", func(t *testing.T) {
		err := service.AddFriend(ctx, u1.ID, 9999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("mutual_friends_intersection", func(t *testing.T) {
		// u1 -> {u2, u3}, u3 -> {u2}; the only mutual friend is u2.
		require.NoError(t, service.AddFriend(ctx, u1.ID, u3.ID))
		require.NoError(t, service.AddFriend(ctx, u3.ID, u2.ID))

		mutual, err := service.MutualFriends(ctx, u1.ID, u3.ID)
		require.NoError(t, err)
		require.Len(t, mutual, 1)
		assert.Equal(t, u2.ID, mutual[0].ID)

		// Symmetric regardless of argument order.
		reversed, err := service.MutualFriends(ctx, u3.ID, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, mutual, reversed)
	})

	t.Run("delete_is_tolerant", func(t *testing.T) {
		removed, err := service.DeleteFriend(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = service.DeleteFriend(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("friends_of_unknown_user", func(t *testing.T) {
		_, err := service.GetFriends(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ID", apperr.As(err).Code)
	})
}

type failingLookupRepo struct {
	*user.MemoryRepository
}

func (r *failingLookupRepo) GetUserByID(_ context.Context, _ int64) (*user.User, error) {
	return nil, errors.New("connection reset")
}

/*
TestService_Create_LookupFailure ensures a storage failure during the
id-collision probe aborts the create instead of being read as "id free".
*/
func TestService_Create_LookupFailure(t *testing.T) {
	ctx := context.Background()
	repo := &failingLookupRepo{user.NewMemoryRepository()}
	service := user.NewService(repo, nil, slog.Default())

	u := validUser("zoe")
	u.ID = 7

	_, err := service.Create(ctx, u)
	require.Error(t, err)
	assert.False(t, apperr.IsAppError(err))

	all, listErr := repo.ListUsers(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, all)
}

type likePurgerStub struct {
	purged []int64
}

func (s *likePurgerStub) DeleteLikesByUser(_ context.Context, userID int64) error {
	s.purged = append(s.purged, userID)
	return nil
}

/*
TestService_Delete verifies the cascade: friendship edges in both
directions disappear and the like purge hook fires.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	purger := &likePurgerStub{}
	service := user.NewService(user.NewMemoryRepository(), purger, slog.Default())

	u1, err := service.Create(ctx, validUser("lena"))
	require.NoError(t, err)
	u2, err := service.Create(ctx, validUser("mike"))
	require.NoError(t, err)

	require.NoError(t, service.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, service.AddFriend(ctx, u2.ID, u1.ID))

	require.NoError(t, service.Delete(ctx, u2.ID))

	_, err = service.FindByID(ctx, u2.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	friendsOf1, err := service.GetFriends(ctx, u1.ID)
	require.NoError(t, err)
	assert.Empty(t, friendsOf1)

	assert.Equal(t, []int64{u2.ID}, purger.purged)

	t.Run("unknown_id", func(t *testing.T) {
		err := service.Delete(ctx, 9999)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_Clear verifies the full reset: users gone, id sequence back
to the beginning.
*/
func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	_, err := service.Create(ctx, validUser("nina"))
	require.NoError(t, err)
	_, err = service.Create(ctx, validUser("oleg"))
	require.NoError(t, err)

	require.NoError(t, service.Clear(ctx))

	all, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	recreated, err := service.Create(ctx, validUser("pavel"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), recreated.ID)
}
