package hash

import (
	"encoding/binary"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the output of different types
// implementing this same interface.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, which should be unique for each implementor
	Domain() string
}

// writeWithDomain writes out a piece of data, using its domain.
//
// Both the domain and the data are prefixed with their length, so that
// the encoding of a sequence of objects is unambiguous.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	domain := object.Domain()
	if err := binary.Write(w, binary.BigEndian, uint64(len(domain))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(domain)); err != nil {
		return err
	}

	var buf lengthCounter
	if _, err := object.WriteTo(&buf); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint64(buf.n)); err != nil {
		return err
	}
	_, err := object.WriteTo(w)
	return err
}

// lengthCounter discards what is written to it, keeping track of its length.
type lengthCounter struct {
	n int
}

func (c *lengthCounter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// BytesWithDomain is a useful wrapper to annotate some chunk of data with a domain.
//
// The intention is to wrap some data using this struct, and then call WriteWithDomain,
// or use this struct as a WriterToWithDomain somewhere else.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

// WriteTo implements io.WriterTo.
func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

// Domain implements WriterToWithDomain.
func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
