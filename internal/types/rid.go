package types

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/round-driver/internal/params"
)

// RIDLength is the length in bytes of a valid RID.
const RIDLength = params.SecBytes

// RID is a random identifier contributed by a party.
// Combining RIDs with XOR gives a random value as long as one of them is random.
type RID []byte

// NewRID samples a RID from rand.
func NewRID(rand io.Reader) (RID, error) {
	rid := make(RID, RIDLength)
	if _, err := io.ReadFull(rand, rid); err != nil {
		return nil, fmt.Errorf("rid: %w", err)
	}
	return rid, nil
}

// XOR returns a new RID, rid ^ other. Both must be valid.
func (rid RID) XOR(other RID) RID {
	out := make(RID, RIDLength)
	for i := range out {
		out[i] = rid[i] ^ other[i]
	}
	return out
}

// WriteTo implements io.WriterTo.
func (rid RID) WriteTo(w io.Writer) (int64, error) {
	if rid == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(rid)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (RID) Domain() string { return "RID" }

// Validate ensures that the RID has the right length and is not identically 0.
func (rid RID) Validate() error {
	if l := len(rid); l != RIDLength {
		return fmt.Errorf("rid: incorrect length (got %d, expected %d)", l, RIDLength)
	}
	for _, b := range rid {
		if b != 0 {
			return nil
		}
	}
	return errors.New("rid: rid is 0")
}
