package party

import (
	"errors"
	"math"
)

// MaxParties is the largest number of parties a List can hold, so that every
// index fits in a Position.
const MaxParties = math.MaxUint16

var (
	// ErrNotSorted is returned when the candidate IDs are not in strictly ascending order.
	ErrNotSorted = errors.New("party: list of parties is not in ascending order")
	// ErrTooLarge is returned when the candidate IDs cannot all be addressed by a Position.
	ErrTooLarge = errors.New("party: list of parties too large: it must fit into a Position")
)

// List is the validated, ordered set of parties taking part in one protocol execution.
// The i-th ID of the list is the party at Position i.
//
// A List is immutable once created and may be shared between goroutines.
type List struct {
	ids IDSlice
}

// NewList validates partyIDs and returns the corresponding List.
// The slice is copied, so the caller may reuse it.
func NewList(partyIDs []ID) (*List, error) {
	ids := IDSlice(partyIDs)
	if !ids.StrictlySorted() {
		return nil, ErrNotSorted
	}
	if len(ids) > MaxParties {
		return nil, ErrTooLarge
	}
	return &List{ids: ids.Copy()}, nil
}

// Len returns the number of parties taking part in the execution.
func (l *List) Len() int { return len(l.ids) }

// PositionOf finds the Position of id using binary search.
func (l *List) PositionOf(id ID) (Position, bool) {
	idx, ok := l.ids.Search(id)
	if !ok {
		return 0, false
	}
	return Position(idx), true
}

// IDAt returns the ID of the party at Position p.
func (l *List) IDAt(p Position) (ID, bool) {
	if int(p) >= len(l.ids) {
		return "", false
	}
	return l.ids[p], true
}

// IDs returns a copy of the sorted IDs in the list.
func (l *List) IDs() IDSlice { return l.ids.Copy() }
