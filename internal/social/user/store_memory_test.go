// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package user_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuznet/cinelog/internal/social/user"
	"github.com/mkuznet/cinelog/pkg/dateonly"
)

/*
TestMemoryRepository_CloneIsolation ensures the store never hands out
aliased state: mutating a returned record must not change the stored one.
*/
func TestMemoryRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()

	created, err := repo.CreateUser(ctx, &user.User{
		Login:    "quinn",
		Name:     "Quinn",
		Email:    "quinn@example.com",
		Birthday: dateonly.New(1985, time.July, 2),
	})
	require.NoError(t, err)

	created.Name = "MUTATED"

	stored, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quinn", stored.Name)
}

/*
TestMemoryRepository_FriendIDsOrdering checks the ascending id contract.
*/
func TestMemoryRepository_FriendIDsOrdering(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()

	require.NoError(t, repo.AddFriend(ctx, 1, 30))
	require.NoError(t, repo.AddFriend(ctx, 1, 10))
	require.NoError(t, repo.AddFriend(ctx, 1, 20))

	ids, err := repo.FriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, ids)
}

/*
TestMemoryRepository_DeleteCascade verifies that deleting a user removes
both its outgoing edges and every edge pointing at it.
*/
func TestMemoryRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()

	u1, err := repo.CreateUser(ctx, &user.User{Login: "rita", Email: "rita@example.com"})
	require.NoError(t, err)
	u2, err := repo.CreateUser(ctx, &user.User{Login: "sam", Email: "sam@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.AddFriend(ctx, u1.ID, u2.ID))
	require.NoError(t, repo.AddFriend(ctx, u2.ID, u1.ID))

	require.NoError(t, repo.DeleteUserByID(ctx, u1.ID))

	idsOf2, err := repo.FriendIDs(ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, idsOf2)
}

/*
TestMemoryRepository_ConcurrentAccess hammers the store from multiple
goroutines; the race detector is the real assertion here.
*/
func TestMemoryRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := user.NewMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := repo.CreateUser(ctx, &user.User{
				Login: fmt.Sprintf("worker%d", n),
				Email: fmt.Sprintf("worker%d@example.com", n),
			})
			assert.NoError(t, err)
			_, _ = repo.GetUserByID(ctx, created.ID)
			_, _ = repo.ListUsers(ctx)
		}(i)
	}
	wg.Wait()

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 20)

	seen := make(map[int64]bool)
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}
