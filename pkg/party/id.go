package party

import (
	"io"
	"strconv"
)

// ID represents the identifier of a particular party, encoded as a string.
// IDs are totally ordered by byte-wise comparison and stay stable across sessions.
type ID string

// WriteTo implements io.WriterTo interface.
// The empty ID writes nothing; hash.Hash prefixes it with its length.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte(id))
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (ID) Domain() string {
	return "ID"
}

// Position is the zero-based index of a party within the party list of one execution.
// Positions are session-local: the same ID may sit at a different Position in another session.
type Position uint16

// String returns a base 10 representation of the Position.
func (p Position) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
