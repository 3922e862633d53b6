// Package wire implements transport.Delivery over a byte stream, such as a
// net.Conn, by framing every message as a CBOR envelope.
//
// The caller owns the underlying stream: connecting, authenticating and
// closing it happen outside of this package.
package wire

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("wire: cbor encoding mode: %v", err))
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(fmt.Sprintf("wire: cbor decoding mode: %v", err))
	}
}

// ErrMalformedFrame is returned by Next when a frame cannot be decoded.
var ErrMalformedFrame = errors.New("wire: malformed frame")

// envelope is the frame written on the stream for every message.
type envelope struct {
	_         struct{} `cbor:",toarray"`
	Sender    party.Position
	Recipient *party.Position
	Body      cbor.RawMessage
}

// Conn is a transport.Delivery reading frames from r and writing frames to w.
// Outgoing frames are buffered until Flush.
//
// A Conn must be used by a single goroutine. Reads are not interruptible: ctx is only
// checked before each blocking call, so a stalled stream must be closed by its owner.
type Conn[M any] struct {
	self party.Position
	in   *countingReader
	w    *bufio.Writer
	dec  *cbor.Decoder
	enc  *cbor.Encoder
}

var _ transport.Delivery[struct{}] = (*Conn[struct{}])(nil)

// New returns a Conn for the party at position self.
func New[M any](self party.Position, r io.Reader, w io.Writer) *Conn[M] {
	bw := bufio.NewWriter(w)
	in := &countingReader{r: r}
	return &Conn[M]{
		self: self,
		in:   in,
		w:    bw,
		dec:  decMode.NewDecoder(in),
		enc:  encMode.NewEncoder(bw),
	}
}

// countingReader counts the bytes read from the stream, so that an end of stream
// in the middle of a frame can be told apart from one on a frame boundary.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// Feed implements transport.Outgoings.
func (c *Conn[M]) Feed(ctx context.Context, msg transport.Outgoing[M]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := encMode.Marshal(msg.Msg)
	if err != nil {
		return fmt.Errorf("wire: marshal body: %w", err)
	}
	frame := envelope{
		Sender:    c.self,
		Recipient: msg.Recipient,
		Body:      body,
	}
	if err = c.enc.Encode(&frame); err != nil {
		return fmt.Errorf("wire: write frame: %w", err)
	}
	return nil
}

// Flush implements transport.Outgoings.
func (c *Conn[M]) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("wire: flush: %w", err)
	}
	return nil
}

// Next implements transport.Incomings.
// Frames addressed to another position are skipped.
// io.EOF is returned only when the stream ends on a frame boundary.
func (c *Conn[M]) Next(ctx context.Context) (transport.Incoming[M], error) {
	for {
		if err := ctx.Err(); err != nil {
			return transport.Incoming[M]{}, err
		}

		var frame envelope
		if err := c.dec.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				if c.in.n > c.dec.NumBytesRead() {
					return transport.Incoming[M]{}, fmt.Errorf("%w: %w", ErrMalformedFrame, io.ErrUnexpectedEOF)
				}
				return transport.Incoming[M]{}, io.EOF
			}
			return transport.Incoming[M]{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
		}
		if frame.Recipient != nil && *frame.Recipient != c.self {
			continue
		}

		var body M
		if err := decMode.Unmarshal(frame.Body, &body); err != nil {
			return transport.Incoming[M]{}, fmt.Errorf("%w: body from %d: %w", ErrMalformedFrame, frame.Sender, err)
		}
		return transport.Incoming[M]{Sender: frame.Sender, Msg: body}, nil
	}
}
