package user

import (
	"context"
	"sort"
	"sync"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
)

// MemoryRepository is the process-local storage profile.
//
// All state is guarded by a single RWMutex; the legacy in-memory maps had no
// protection at all and relied on a single-threaded harness.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[int64]*User
	friends map[int64]map[int64]struct{}
	nextID  int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[int64]*User),
		friends: make(map[int64]map[int64]struct{}),
		nextID:  1,
	}
}

func (repository *MemoryRepository) CreateUser(context context.Context, user *User) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := user.Clone()
	stored.ID = repository.nextID
	repository.nextID++

	repository.users[stored.ID] = stored
	return stored.Clone(), nil
}

func (repository *MemoryRepository) UpdateUser(context context.Context, user *User) (*User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[user.ID]; !ok {
		return nil, apperr.NotFound("User")
	}

	repository.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

func (repository *MemoryRepository) ListUsers(context context.Context) ([]*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	users := make([]*User, 0, len(repository.users))
	for _, u := range repository.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (repository *MemoryRepository) GetUserByID(context context.Context, id int64) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	u, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u.Clone(), nil
}

func (repository *MemoryRepository) DeleteUserByID(context context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.users[id]; !ok {
		return apperr.NotFound("User")
	}

	delete(repository.users, id)

	// Cascade: outgoing edges and every edge pointing at the deleted user.
	delete(repository.friends, id)
	for _, edges := range repository.friends {
		delete(edges, id)
	}

	return nil
}

func (repository *MemoryRepository) ClearUsers(context context.Context) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.users = make(map[int64]*User)
	repository.friends = make(map[int64]map[int64]struct{})
	repository.nextID = 1
	return nil
}

func (repository *MemoryRepository) AddFriend(context context.Context, userID, friendID int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	edges, ok := repository.friends[userID]
	if !ok {
		edges = make(map[int64]struct{})
		repository.friends[userID] = edges
	}
	edges[friendID] = struct{}{}
	return nil
}

func (repository *MemoryRepository) DeleteFriend(context context.Context, userID, friendID int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	edges, ok := repository.friends[userID]
	if !ok {
		return false, nil
	}
	if _, exists := edges[friendID]; !exists {
		return false, nil
	}

	delete(edges, friendID)
	return true, nil
}

func (repository *MemoryRepository) FriendIDs(context context.Context, userID int64) ([]int64, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	edges := repository.friends[userID]
	ids := make([]int64, 0, len(edges))
	for id := range edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
