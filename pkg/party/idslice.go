package party

import (
	"encoding/binary"
	"io"
	"sort"
)

type IDSlice []ID

func (partyIDs IDSlice) Len() int           { return len(partyIDs) }
func (partyIDs IDSlice) Less(i, j int) bool { return partyIDs[i] < partyIDs[j] }
func (partyIDs IDSlice) Swap(i, j int)      { partyIDs[i], partyIDs[j] = partyIDs[j], partyIDs[i] }

// Sort is a convenience method: x.Sort() calls Sort(x).
func (partyIDs IDSlice) Sort() { sort.Sort(partyIDs) }

// NewIDSlice returns a sorted copy of partyIDs.
func NewIDSlice(partyIDs []ID) IDSlice {
	ids := IDSlice(partyIDs).Copy()
	ids.Sort()
	return ids
}

// StrictlySorted returns true if every ID is strictly greater than the one before it.
// This implies that partyIDs contains no duplicates.
func (partyIDs IDSlice) StrictlySorted() bool {
	for i := 1; i < len(partyIDs); i++ {
		if !(partyIDs[i-1] < partyIDs[i]) {
			return false
		}
	}
	return true
}

// Contains returns true if partyIDs contains id.
// Assumes that partyIDs is sorted.
func (partyIDs IDSlice) Contains(id ID) bool {
	_, ok := partyIDs.Search(id)
	return ok
}

// Search returns the index of x in the sorted partyIDs, and whether it was found.
func (partyIDs IDSlice) Search(x ID) (int, bool) {
	index := sort.Search(len(partyIDs), func(i int) bool { return partyIDs[i] >= x })
	if index < len(partyIDs) && partyIDs[index] == x {
		return index, true
	}
	return 0, false
}

// Copy returns an identical copy of partyIDs.
func (partyIDs IDSlice) Copy() IDSlice {
	a := make(IDSlice, len(partyIDs))
	copy(a, partyIDs)
	return a
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
// Each ID is length-prefixed so that different slices never produce the same encoding.
func (partyIDs IDSlice) WriteTo(w io.Writer) (int64, error) {
	var nAll int64
	if err := binary.Write(w, binary.BigEndian, uint64(len(partyIDs))); err != nil {
		return nAll, err
	}
	nAll += 8
	for _, id := range partyIDs {
		if err := binary.Write(w, binary.BigEndian, uint64(len(id))); err != nil {
			return nAll, err
		}
		nAll += 8
		n, err := w.Write([]byte(id))
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements WriterToWithDomain, and separates this type within hash.Hash.
func (IDSlice) Domain() string {
	return "IDSlice"
}
