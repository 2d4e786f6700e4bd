package schema

// LikeTable represents the 'likes' edge table
type LikeTable struct {
	Table  string
	FilmID string
	UserID string
}

// Like is the schema definition for likes
var Like = LikeTable{
	Table:  "likes",
	FilmID: "film_id",
	UserID: "user_id",
}

func (t LikeTable) Columns() []string {
	return []string{t.FilmID, t.UserID}
}
