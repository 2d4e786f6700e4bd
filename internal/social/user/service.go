// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/platform/validate"
)

// # Service Layer

// Service orchestrates business logic for user accounts and the social graph.
//
// It owns validation, duplicate detection, and the friendship edge rules;
// repositories stay free of business constraints.
type Service struct {
	repository Repository
	likes      LikePurger
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
//
// likes may be nil when no film store is wired (unit tests); deletion then
// skips the like cascade.
func NewService(repository Repository, likes LikePurger, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		likes:      likes,
		logger:     logger,
	}
}

// # Account Management

/*
Create registers a new user.

Description: Rejects duplicates (by id or by full content), validates the
login/email/birthday contract, normalizes a blank name to the login, and
persists the user with a store-assigned id.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *User: The created user with its assigned id
  - error: Duplicate, validation, or storage failures
*/
func (service *Service) Create(context context.Context, user *User) (*User, error) {

	// Business: A client-supplied id must not collide with an existing user
	if user.ID != 0 {
		if _, err := service.repository.GetUserByID(context, user.ID); err == nil {
			return nil, apperr.AlreadyExists(fmt.Sprintf("User with id %d already exists", user.ID))
		} else if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("user_service_create_lookup_failed: %w", err)
		}
	}

	// Business: Two users with identical business fields are duplicates.
	// Stored users carry normalized names, so the incoming key must be
	// computed after the same normalization.
	incoming := user.Clone()
	normalizeName(incoming)

	existing, err := service.repository.ListUsers(context)
	if err != nil {
		return nil, fmt.Errorf("user_service_create_list_failed: %w", err)
	}
	for _, candidate := range existing {
		if candidate.ContentKey() == incoming.ContentKey() {
			return nil, apperr.AlreadyExists("User with the same data already exists")
		}
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}

	normalizeName(user)

	created, err := service.repository.CreateUser(context, user)
	if err != nil {
		return nil, fmt.Errorf("user_service_create_failed: %w", err)
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", created.ID),
		slog.String("login", created.Login),
	)

	return created, nil
}

/*
Update replaces all mutable fields of an existing user.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *User: The updated user
  - error: Identity, validation, or storage failures
*/
func (service *Service) Update(context context.Context, user *User) (*User, error) {

	// Business: Updates address users strictly by id
	if user.ID <= 0 {
		return nil, apperr.InvalidID("User id is required for update")
	}
	if _, err := service.repository.GetUserByID(context, user.ID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.InvalidID(fmt.Sprintf("User with id %d is unknown", user.ID))
		}
		return nil, fmt.Errorf("user_service_update_lookup_failed: %w", err)
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}

	normalizeName(user)

	updated, err := service.repository.UpdateUser(context, user)
	if err != nil {
		return nil, fmt.Errorf("user_service_update_failed: %w", err)
	}

	service.logger.Info("user_updated", slog.Int64("user_id", updated.ID))

	return updated, nil
}

// FindAll returns every registered user in ascending id order.
func (service *Service) FindAll(context context.Context) ([]*User, error) {
	users, err := service.repository.ListUsers(context)
	if err != nil {
		return nil, fmt.Errorf("user_service_list_failed: %w", err)
	}
	if users == nil {
		users = []*User{}
	}
	return users, nil
}

// FindByID returns one user or a NotFound error.
func (service *Service) FindByID(context context.Context, id int64) (*User, error) {
	user, err := service.repository.GetUserByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("user_service_get_failed: %w", err)
	}
	return user, nil
}

/*
Delete removes a user together with its social traces.

Description: Friendship edges in both directions are removed by the store;
the likes the user has placed on films are purged through the film store's
cascade hook.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.DeleteUserByID(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("user_service_delete_failed: %w", err)
	}

	if service.likes != nil {
		if err := service.likes.DeleteLikesByUser(context, id); err != nil {
			return fmt.Errorf("user_service_delete_likes_failed: %w", err)
		}
	}

	service.logger.Info("user_deleted", slog.Int64("user_id", id))

	return nil
}

// Clear removes every user and all friendship edges. Intended for test
// harness resets, not for regular API traffic.
func (service *Service) Clear(context context.Context) error {
	if err := service.repository.ClearUsers(context); err != nil {
		return fmt.Errorf("user_service_clear_failed: %w", err)
	}
	service.logger.Info("users_cleared")
	return nil
}

// # Social Graph

/*
AddFriend inserts the directed friendship edge userID -> friendID.

Description: The edge is one-way; the reverse edge only exists once the other
user adds this one back. Re-adding an existing edge is a harmless no-op.

Parameters:
  - context: context.Context
  - userID: int64
  - friendID: int64

Returns:
  - error: Identity or storage failures
*/
func (service *Service) AddFriend(context context.Context, userID, friendID int64) error {
	if err := service.checkFriendPair(context, userID, friendID); err != nil {
		return err
	}

	if err := service.repository.AddFriend(context, userID, friendID); err != nil {
		return fmt.Errorf("user_service_add_friend_failed: %w", err)
	}

	service.logger.Info("friend_added",
		slog.Int64("user_id", userID),
		slog.Int64("friend_id", friendID),
	)

	return nil
}

/*
DeleteFriend removes the directed friendship edge userID -> friendID.

Description: Removing an edge that does not exist is not an error; the
returned flag tells the caller whether anything was actually deleted.

Parameters:
  - context: context.Context
  - userID: int64
  - friendID: int64

Returns:
  - bool: Whether an edge was removed
  - error: Identity or storage failures
*/
func (service *Service) DeleteFriend(context context.Context, userID, friendID int64) (bool, error) {
	if err := service.checkFriendPair(context, userID, friendID); err != nil {
		return false, err
	}

	removed, err := service.repository.DeleteFriend(context, userID, friendID)
	if err != nil {
		return false, fmt.Errorf("user_service_delete_friend_failed: %w", err)
	}

	if removed {
		service.logger.Info("friend_removed",
			slog.Int64("user_id", userID),
			slog.Int64("friend_id", friendID),
		)
	}

	return removed, nil
}

// GetFriends returns the targets of the user's outgoing friendship edges,
// hydrated and sorted by ascending id. An unknown user id is an identity
// violation, not a missing resource.
func (service *Service) GetFriends(context context.Context, userID int64) ([]*User, error) {
	if err := service.checkUserExists(context, userID); err != nil {
		return nil, err
	}

	ids, err := service.repository.FriendIDs(context, userID)
	if err != nil {
		return nil, fmt.Errorf("user_service_friend_ids_failed: %w", err)
	}

	return service.hydrate(context, ids)
}

/*
MutualFriends returns the users both participants point at.

Parameters:
  - context: context.Context
  - userID: int64
  - otherID: int64

Returns:
  - []*User: The intersection of both outgoing edge sets, sorted by id
  - error: Identity or storage failures
*/
func (service *Service) MutualFriends(context context.Context, userID, otherID int64) ([]*User, error) {
	if err := service.checkUserExists(context, userID); err != nil {
		return nil, err
	}
	if err := service.checkUserExists(context, otherID); err != nil {
		return nil, err
	}

	userFriends, err := service.repository.FriendIDs(context, userID)
	if err != nil {
		return nil, fmt.Errorf("user_service_friend_ids_failed: %w", err)
	}
	otherFriends, err := service.repository.FriendIDs(context, otherID)
	if err != nil {
		return nil, fmt.Errorf("user_service_friend_ids_failed: %w", err)
	}

	otherSet := make(map[int64]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}

	var mutual []int64
	for _, id := range userFriends {
		if _, ok := otherSet[id]; ok {
			mutual = append(mutual, id)
		}
	}

	return service.hydrate(context, mutual)
}

// # Internal Helpers

// checkFriendPair validates both endpoint ids of a friendship operation:
// positive ids first, then existence of both users, then the self rule.
func (service *Service) checkFriendPair(context context.Context, userID, friendID int64) error {
	if userID <= 0 || friendID <= 0 {
		return apperr.InvalidID("User ids must be positive")
	}

	for _, id := range []int64{userID, friendID} {
		if _, err := service.repository.GetUserByID(context, id); err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("User")
			}
			return fmt.Errorf("user_service_lookup_failed: %w", err)
		}
	}

	if userID == friendID {
		return apperr.InvalidID("A user cannot befriend themselves")
	}
	return nil
}

// checkUserExists maps an unknown id to an identity violation. Friend
// listing treats a bad id as a malformed request, not a missing resource.
func (service *Service) checkUserExists(context context.Context, id int64) error {
	if _, err := service.repository.GetUserByID(context, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.InvalidID(fmt.Sprintf("User with id %d is unknown", id))
		}
		return fmt.Errorf("user_service_lookup_failed: %w", err)
	}
	return nil
}

// hydrate resolves a sorted id slice into full user records.
func (service *Service) hydrate(context context.Context, ids []int64) ([]*User, error) {
	users := make([]*User, 0, len(ids))
	for _, id := range ids {
		u, err := service.repository.GetUserByID(context, id)
		if err != nil {
			// The edge can outlive its target between reads; skip dangling ids.
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("user_service_hydrate_failed: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// validateUser enforces the user contract in priority order: login first,
// then email, then birthday.
func validateUser(user *User) error {
	v := &validate.Validator{}
	v.Required("login", user.Login).
		Custom("login", strings.Contains(user.Login, " "), "Must not contain spaces")
	v.EmailLike("email", user.Email)
	if !user.Birthday.IsZero() {
		v.NotFuture("birthday", user.Birthday.Time)
	}
	return v.Err()
}

// normalizeName falls back to the login when the display name is blank.
func normalizeName(user *User) {
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Login
	}
}
