// Package local provides an in-memory network connecting the parties of a
// single process, for tests and examples.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

// ErrUnknownRecipient is returned by Flush when a message is addressed to a position outside the network.
var ErrUnknownRecipient = errors.New("local: unknown recipient")

// Option configures a Network.
type Option func(*config)

type config struct {
	echo bool
}

// WithEcho makes broadcast messages also come back to their sender,
// like a transport relaying every broadcast to all subscribers would.
func WithEcho() Option {
	return func(c *config) { c.echo = true }
}

// Network connects n parties, identified by positions 0 to n-1.
type Network[M any] struct {
	// mtx serializes flushes, so that a message is in every recipient's inbox
	// before any of them can react to it.
	mtx     sync.Mutex
	inboxes []*inbox[M]
	echo    bool
}

// NewNetwork creates a Network of n parties.
func NewNetwork[M any](n int, opts ...Option) *Network[M] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	inboxes := make([]*inbox[M], n)
	for i := range inboxes {
		inboxes[i] = newInbox[M]()
	}
	return &Network[M]{
		inboxes: inboxes,
		echo:    c.echo,
	}
}

// N returns the number of parties connected to the network.
func (n *Network[M]) N() int { return len(n.inboxes) }

// Delivery returns the Delivery of the party at position p.
// It panics if p is not part of the network.
func (n *Network[M]) Delivery(p party.Position) *Delivery[M] {
	if int(p) >= len(n.inboxes) {
		panic(fmt.Sprintf("local: position %d outside network of %d parties", p, len(n.inboxes)))
	}
	return &Delivery[M]{network: n, self: p}
}

// Close ends the inbound stream of the party at position p.
// Messages already delivered can still be received, after which Next returns io.EOF.
func (n *Network[M]) Close(p party.Position) {
	if int(p) < len(n.inboxes) {
		n.inboxes[p].close()
	}
}

// CloseAll ends the inbound stream of every party.
func (n *Network[M]) CloseAll() {
	for _, in := range n.inboxes {
		in.close()
	}
}

func (n *Network[M]) send(from party.Position, msg transport.Outgoing[M]) error {
	incoming := transport.Incoming[M]{Sender: from, Msg: msg.Msg}
	if msg.Broadcast() {
		for i, in := range n.inboxes {
			if party.Position(i) == from && !n.echo {
				continue
			}
			in.push(incoming)
		}
		return nil
	}
	to := *msg.Recipient
	if int(to) >= len(n.inboxes) {
		return fmt.Errorf("%w: %d", ErrUnknownRecipient, to)
	}
	n.inboxes[to].push(incoming)
	return nil
}

// Delivery is one party's view of a Network.
// It must be used by a single goroutine.
type Delivery[M any] struct {
	network *Network[M]
	self    party.Position
	pending []transport.Outgoing[M]
}

var _ transport.Delivery[struct{}] = (*Delivery[struct{}])(nil)

// Self returns the position of the party owning the Delivery.
func (d *Delivery[M]) Self() party.Position { return d.self }

// Next implements transport.Incomings.
func (d *Delivery[M]) Next(ctx context.Context) (transport.Incoming[M], error) {
	return d.network.inboxes[d.self].pop(ctx)
}

// Feed implements transport.Outgoings.
func (d *Delivery[M]) Feed(ctx context.Context, msg transport.Outgoing[M]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.pending = append(d.pending, msg)
	return nil
}

// Flush implements transport.Outgoings.
// Messages are delivered in the order they were fed; delivery stops at the first failure.
func (d *Delivery[M]) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pending := d.pending
	d.pending = nil
	d.network.mtx.Lock()
	defer d.network.mtx.Unlock()
	for _, msg := range pending {
		if err := d.network.send(d.self, msg); err != nil {
			return err
		}
	}
	return nil
}

// inbox is an unbounded FIFO queue with a single consumer.
type inbox[M any] struct {
	mtx    sync.Mutex
	queue  []transport.Incoming[M]
	closed bool
	// signal holds a token whenever the queue may have changed.
	signal chan struct{}
}

func newInbox[M any]() *inbox[M] {
	return &inbox[M]{signal: make(chan struct{}, 1)}
}

func (in *inbox[M]) push(msg transport.Incoming[M]) {
	in.mtx.Lock()
	if in.closed {
		in.mtx.Unlock()
		return
	}
	in.queue = append(in.queue, msg)
	in.mtx.Unlock()
	in.notify()
}

func (in *inbox[M]) close() {
	in.mtx.Lock()
	in.closed = true
	in.mtx.Unlock()
	in.notify()
}

func (in *inbox[M]) notify() {
	select {
	case in.signal <- struct{}{}:
	default:
	}
}

func (in *inbox[M]) pop(ctx context.Context) (transport.Incoming[M], error) {
	for {
		in.mtx.Lock()
		if len(in.queue) > 0 {
			msg := in.queue[0]
			in.queue = in.queue[1:]
			in.mtx.Unlock()
			return msg, nil
		}
		closed := in.closed
		in.mtx.Unlock()
		if closed {
			return transport.Incoming[M]{}, io.EOF
		}

		select {
		case <-ctx.Done():
			return transport.Incoming[M]{}, ctx.Err()
		case <-in.signal:
		}
	}
}
