// Package film implements the core catalog: film records, their
// classification and genre references, and the likes edge set that
// drives popularity ranking.
package film

import (
	"fmt"
	"sort"
	"time"

	"github.com/mkuznet/cinelog/internal/catalog/genre"
	"github.com/mkuznet/cinelog/internal/catalog/mpa"
	"github.com/mkuznet/cinelog/pkg/dateonly"
)

// MaxDescriptionLen caps film descriptions at 200 characters.
const MaxDescriptionLen = 200

// CinemaEpoch is the earliest acceptable release date: the first public
// film screening (1895-12-28). Release dates before it are rejected.
var CinemaEpoch = dateonly.New(1895, time.December, 28)

// Film is one catalog entry.
//
// ID is assigned by the store on creation. MPA is optional under the
// default profile; Genres is a set ordered by ascending genre id. Rate is
// the like count, derived by the store on every read and ignored on input.
type Film struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ReleaseDate dateonly.Date `json:"releaseDate"`
	Duration    int64         `json:"duration"`
	MPA         *mpa.MPA      `json:"mpa,omitempty"`
	Genres      []genre.Genre `json:"genres"`
	Rate        int64         `json:"rate"`
}

// ContentKey identifies a film by business fields, independent of the
// assigned id. Two films with equal keys are duplicates.
func (f *Film) ContentKey() string {
	var mpaID int64
	if f.MPA != nil {
		mpaID = f.MPA.ID
	}
	return fmt.Sprintf("%s|%s|%s|%d|%d", f.Name, f.Description, f.ReleaseDate.String(), f.Duration, mpaID)
}

// Clone returns a deep copy so stores never hand out aliased internal state.
func (f *Film) Clone() *Film {
	clone := *f
	if f.MPA != nil {
		m := *f.MPA
		clone.MPA = &m
	}
	if f.Genres != nil {
		clone.Genres = make([]genre.Genre, len(f.Genres))
		copy(clone.Genres, f.Genres)
	}
	return &clone
}

// NormalizeGenres deduplicates the genre set by id and orders it ascending.
func (f *Film) NormalizeGenres() {
	if len(f.Genres) == 0 {
		return
	}

	seen := make(map[int64]struct{}, len(f.Genres))
	unique := f.Genres[:0]
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		unique = append(unique, g)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].ID < unique[j].ID })
	f.Genres = unique
}
