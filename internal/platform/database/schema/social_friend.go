package schema

// FriendTable represents the 'friends' directed edge table
type FriendTable struct {
	Table    string
	UserID   string
	FriendID string
}

// Friend is the schema definition for friends
var Friend = FriendTable{
	Table:    "friends",
	UserID:   "user_id",
	FriendID: "friend_id",
}

func (t FriendTable) Columns() []string {
	return []string{t.UserID, t.FriendID}
}
