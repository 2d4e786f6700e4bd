package user

import (
	"fmt"

	"github.com/mkuznet/cinelog/pkg/dateonly"
)

// User is a registered member of the catalog.
//
// ID is assigned by the store on creation and immutable afterwards. Name
// falls back to Login when left blank (a normalization step, not an error).
type User struct {
	ID       int64         `json:"id"`
	Login    string        `json:"login"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Birthday dateonly.Date `json:"birthday"`
}

// ContentKey identifies a user by business fields, independent of the
// assigned id. Two users with equal keys are duplicates.
func (u *User) ContentKey() string {
	return fmt.Sprintf("%s|%s|%s|%s", u.Login, u.Name, u.Email, u.Birthday.String())
}

// Clone returns a deep copy so stores never hand out aliased internal state.
func (u *User) Clone() *User {
	clone := *u
	return &clone
}
