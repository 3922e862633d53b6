package hash

import (
	"bytes"
	"fmt"
	"io"

	"github.com/taurusgroup/round-driver/internal/params"
)

type (
	// Commitment binds a party to some data without revealing it.
	Commitment []byte
	// Decommitment is the randomness revealed together with the data to open a Commitment.
	Decommitment []byte
)

// WriteTo implements io.WriterTo.
func (c Commitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (Commitment) Domain() string { return "Commitment" }

// Validate checks that c has the length of a digest.
func (c Commitment) Validate() error {
	if l := len(c); l != DigestLengthBytes {
		return fmt.Errorf("commitment: incorrect length (got %d, expected %d)", l, DigestLengthBytes)
	}
	return nil
}

// WriteTo implements io.WriterTo.
func (d Decommitment) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (Decommitment) Domain() string { return "Decommitment" }

// Validate checks that d has the length of the security parameter.
func (d Decommitment) Validate() error {
	if l := len(d); l != params.SecBytes {
		return fmt.Errorf("decommitment: incorrect length (got %d, expected %d)", l, params.SecBytes)
	}
	return nil
}

// Commit samples a decommitment from rand, and returns
// commitment = h(data..., decommitment) together with the decommitment.
// The receiver is not modified.
func (hash *Hash) Commit(rand io.Reader, data ...WriterToWithDomain) (Commitment, Decommitment, error) {
	decommitment := make(Decommitment, params.SecBytes)
	if _, err := io.ReadFull(rand, decommitment); err != nil {
		return nil, nil, fmt.Errorf("hash.Commit: failed to sample decommitment: %w", err)
	}
	commitment, err := hash.commitment(decommitment, data)
	if err != nil {
		return nil, nil, fmt.Errorf("hash.Commit: %w", err)
	}
	return commitment, decommitment, nil
}

// Decommit returns true if c was obtained by Commit on the same data, with decommitment d.
func (hash *Hash) Decommit(c Commitment, d Decommitment, data ...WriterToWithDomain) bool {
	if c.Validate() != nil || d.Validate() != nil {
		return false
	}
	computed, err := hash.commitment(d, data)
	if err != nil {
		return false
	}
	return bytes.Equal(computed, c)
}

func (hash *Hash) commitment(d Decommitment, data []WriterToWithDomain) (Commitment, error) {
	h := hash.Clone()
	for _, item := range data {
		if err := writeWithDomain(h.h, item); err != nil {
			return nil, fmt.Errorf("write %s: %w", item.Domain(), err)
		}
	}
	if err := writeWithDomain(h.h, d); err != nil {
		return nil, fmt.Errorf("write decommitment: %w", err)
	}
	return h.Sum(), nil
}
