package test

import (
	"context"
	"io"

	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

// Item is a scripted result of Delivery.Next.
type Item[M any] struct {
	Incoming transport.Incoming[M]
	Err      error
}

// Delivery is a transport.Delivery replaying a script of incoming items,
// and recording what is sent through it.
// Once the script is exhausted, Next returns io.EOF.
type Delivery[M any] struct {
	Script []Item[M]

	// FeedErr and FlushErr are returned by Feed and Flush when set.
	FeedErr  error
	FlushErr error

	// Fed holds the messages accepted by Feed.
	Fed []transport.Outgoing[M]
	// Flushes counts successful calls to Flush.
	Flushes int
	// SentAfterEOF is set if Feed or Flush is called after Next returned io.EOF.
	SentAfterEOF bool

	eof bool
}

var _ transport.Delivery[string] = (*Delivery[string])(nil)

func (d *Delivery[M]) Next(context.Context) (transport.Incoming[M], error) {
	if len(d.Script) == 0 {
		d.eof = true
		return transport.Incoming[M]{}, io.EOF
	}
	item := d.Script[0]
	d.Script = d.Script[1:]
	return item.Incoming, item.Err
}

func (d *Delivery[M]) Feed(_ context.Context, msg transport.Outgoing[M]) error {
	if d.eof {
		d.SentAfterEOF = true
	}
	if d.FeedErr != nil {
		return d.FeedErr
	}
	d.Fed = append(d.Fed, msg)
	return nil
}

func (d *Delivery[M]) Flush(context.Context) error {
	if d.eof {
		d.SentAfterEOF = true
	}
	if d.FlushErr != nil {
		return d.FlushErr
	}
	d.Flushes++
	return nil
}

// Incoming returns an Item delivering msg from sender.
func Incoming[M any](sender party.Position, msg M) Item[M] {
	return Item[M]{Incoming: transport.Incoming[M]{Sender: sender, Msg: msg}}
}
