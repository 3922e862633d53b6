// Package transport defines the contract between the protocol driver and the
// network carrying the messages.
//
// A transport addresses parties by their Position in the party list of the
// current execution, and knows nothing about the protocol being run. Connection
// management, framing and retries are the transport's business.
package transport

import (
	"context"

	"github.com/taurusgroup/round-driver/pkg/party"
)

// Incoming is a message received from the party at position Sender.
type Incoming[M any] struct {
	Sender party.Position
	Msg    M
}

// Outgoing is a message to be delivered to the party at position Recipient.
// If Recipient is nil, the message is delivered to all parties.
type Outgoing[M any] struct {
	Recipient *party.Position
	Msg       M
}

// Broadcast returns true if the message is intended for all parties.
func (o Outgoing[M]) Broadcast() bool { return o.Recipient == nil }

// To returns an Outgoing addressed to the party at position p.
func To[M any](p party.Position, msg M) Outgoing[M] {
	return Outgoing[M]{Recipient: &p, Msg: msg}
}

// ToAll returns an Outgoing addressed to all parties.
func ToAll[M any](msg M) Outgoing[M] {
	return Outgoing[M]{Msg: msg}
}

// Incomings is the stream of messages received by a party.
type Incomings[M any] interface {
	// Next blocks until the next message is available.
	// It returns io.EOF once the stream has ended; any other error reports a
	// failure to receive.
	Next(ctx context.Context) (Incoming[M], error)
}

// Outgoings is a buffered sink for messages sent by a party.
type Outgoings[M any] interface {
	// Feed enqueues msg. It may not be sent before Flush is called.
	Feed(ctx context.Context, msg Outgoing[M]) error
	// Flush sends all enqueued messages.
	Flush(ctx context.Context) error
}

// Delivery is the bidirectional channel of one party.
type Delivery[M any] interface {
	Incomings[M]
	Outgoings[M]
}
