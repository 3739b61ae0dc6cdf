// Package drag tracks the one drag that may be in flight and the canvas
// pan/zoom transform. Both the dragged visual and the drop resolver read the
// grab offset and the scale from here and never from each other.
package drag

import (
	"fmt"

	"github.com/javiermolinar/poolboard/internal/schedule"
)

// Kind tags what is being dragged.
type Kind string

const (
	// KindBankBlock is a course picked up from the bank.
	KindBankBlock Kind = "bank-block"
	// KindGridCourse is an existing session on a pool.
	KindGridCourse Kind = "grid-course"
	// KindPoolCanvas is a whole pool being moved on the board.
	KindPoolCanvas Kind = "poolCanvas"
)

// Item is the drag payload.
type Item struct {
	Kind     Kind
	CourseID string
	PoolID   string
	// Session is the dragged session. For a bank block it is a temporary
	// session that is never stored.
	Session *schedule.Session
}

// BankItem builds the payload for a course dragged out of the bank. The
// temporary session spans duration minutes from midnight.
func BankItem(courseID string, duration int) Item {
	return Item{
		Kind:     KindBankBlock,
		CourseID: courseID,
		Session: &schedule.Session{
			ID:       "temp-" + courseID,
			CourseID: courseID,
			Day:      schedule.Monday,
			Start:    0,
			End:      duration,
		},
	}
}

// SessionItem builds the payload for an existing session.
func SessionItem(se schedule.Session) Item {
	return Item{
		Kind:     KindGridCourse,
		CourseID: se.CourseID,
		PoolID:   se.PoolID,
		Session:  &se,
	}
}

// PoolItem builds the payload for a pool being moved.
func PoolItem(poolID string) Item {
	return Item{Kind: KindPoolCanvas, PoolID: poolID}
}

// Duration returns the dragged session length, or 0 for pools.
func (it Item) Duration() int {
	if it.Session == nil {
		return 0
	}
	return it.Session.Duration()
}

func (it Item) String() string {
	switch it.Kind {
	case KindPoolCanvas:
		return fmt.Sprintf("%s(%s)", it.Kind, it.PoolID)
	case KindGridCourse:
		if it.Session != nil {
			return fmt.Sprintf("%s(%s)", it.Kind, it.Session.ID)
		}
	}
	return fmt.Sprintf("%s(%s)", it.Kind, it.CourseID)
}
