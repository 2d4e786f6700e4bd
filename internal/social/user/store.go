package user

import "context"

// Repository defines the data access contract for users and the directed
// friendship edge set. Both the memory and the postgres backends implement it.
type Repository interface {
	// CreateUser persists a new user and assigns its id.
	CreateUser(context context.Context, user *User) (*User, error)

	// UpdateUser replaces all mutable fields of an existing user.
	UpdateUser(context context.Context, user *User) (*User, error)

	// ListUsers returns all users in store-defined order.
	ListUsers(context context.Context) ([]*User, error)

	// GetUserByID returns the user or a NotFound error.
	GetUserByID(context context.Context, id int64) (*User, error)

	// DeleteUserByID removes one user and cascades to its friendship edges.
	DeleteUserByID(context context.Context, id int64) error

	// ClearUsers removes all users and their friendship edges.
	ClearUsers(context context.Context) error

	// AddFriend inserts the directed edge userID -> friendID. Inserting an
	// existing edge is a no-op.
	AddFriend(context context.Context, userID, friendID int64) error

	// DeleteFriend removes the directed edge userID -> friendID. It reports
	// whether an edge was actually removed.
	DeleteFriend(context context.Context, userID, friendID int64) (bool, error)

	// FriendIDs returns the targets of the user's outgoing friendship edges,
	// in ascending id order.
	FriendIDs(context context.Context, userID int64) ([]int64, error)
}

// LikePurger is the cascade hook the user service invokes when a user is
// deleted: the film store owns the likes edge set, so the cleanup of that
// user's likes has to happen there.
type LikePurger interface {
	DeleteLikesByUser(context context.Context, userID int64) error
}
