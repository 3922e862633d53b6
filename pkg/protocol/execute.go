// Package protocol runs round-based protocols over a transport.
//
// A protocol is given as a round.State, which only knows about party IDs, while
// a transport.Delivery addresses parties by their Position in the party list.
// Execute bridges the two: it sends the messages produced by each round,
// collects the messages the round expects, and moves on to the next round until
// the protocol terminates.
package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

var errNilState = errors.New("round returned a nil state")

// Execute runs the protocol starting from initial, for the party at position self
// in parties, and returns the output of the protocol.
//
// Each round proceeds as follows:
//   - the messages returned by State.Start are fed to the delivery in order, then flushed.
//     Messages addressed to a party outside parties are logged and dropped.
//   - messages are pulled from the delivery until State.IsInputComplete holds.
//     Messages sent by self are ignored. Every other message must be accepted by
//     State.IsMessageExpected.
//   - the received messages are given to State.Consume, which either starts a new
//     round or terminates the protocol.
//
// Any failure aborts the whole execution and is returned as an Error; nothing is
// retried. Execute does not impose any deadline: ctx is passed to every blocking
// call of the delivery, which is responsible for honouring it.
func Execute[M, T any](
	ctx context.Context,
	delivery transport.Delivery[M],
	initial round.State[M, T],
	self party.Position,
	parties *party.List,
	opts ...Option,
) (result T, err error) {
	c := newConfig(opts)
	defer func() { c.metrics.finished(err) }()

	if parties == nil {
		return result, Error{Kind: ErrInvalidSession, Err: errors.New("nil party list")}
	}
	selfID, ok := parties.IDAt(self)
	if !ok {
		return result, Error{
			Kind: ErrInvalidSession,
			Err:  fmt.Errorf("position %d outside party list of %d parties", self, parties.Len()),
		}
	}
	if delivery == nil {
		return result, Error{Kind: ErrInvalidSession, Err: errors.New("nil delivery")}
	}
	if initial == nil {
		return result, Error{Kind: ErrInvalidSession, Err: errors.New("nil initial state")}
	}

	ctxLog := c.log.With().Str("party", string(selfID)).Stringer("position", self)
	if c.protocolID != "" {
		ctxLog = ctxLog.Str("protocol", c.protocolID)
	}
	e := &execution[M, T]{
		baseLog:  ctxLog.Logger(),
		metrics:  c.metrics,
		delivery: delivery,
		self:     self,
		parties:  parties,
	}
	return e.run(ctx, initial)
}

// execution holds what stays fixed across the rounds of a single Execute call.
type execution[M, T any] struct {
	baseLog  zerolog.Logger
	metrics  *Metrics
	delivery transport.Delivery[M]
	self     party.Position
	parties  *party.List

	// log is baseLog with the current round number.
	log         zerolog.Logger
	roundNumber round.Number
}

func (e *execution[M, T]) run(ctx context.Context, state round.State[M, T]) (T, error) {
	var zero T

	e.setRound(1)
	e.log.Info().Int("parties", e.parties.Len()).Msg("start")

	for {
		if err := e.send(ctx, state.Start()); err != nil {
			return zero, err
		}

		received, err := e.receive(ctx, state)
		if err != nil {
			return zero, err
		}

		transition := state.Consume(received)
		e.metrics.roundDone()

		next, ok := transition.State()
		if !ok {
			result, err := transition.Result()
			if err != nil {
				return zero, e.abort(Error{Kind: ErrProtocol, Err: err})
			}
			e.log.Info().Msg("finished")
			return result, nil
		}
		if next == nil {
			return zero, e.abort(Error{Kind: ErrProtocol, Err: errNilState})
		}

		state = next
		e.setRound(e.roundNumber + 1)
		e.log.Info().Msg("round advanced")
	}
}

// send feeds msgs to the delivery in order, and flushes it.
func (e *execution[M, T]) send(ctx context.Context, msgs []round.OutputMessage[M]) error {
	if len(msgs) == 0 {
		return nil
	}

	for _, msg := range msgs {
		outgoing, err := ToOutgoing(e.parties, msg)
		if err != nil {
			// the protocol may address parties which are not part of this execution
			e.log.Warn().Err(err).Msg("ignoring message to a party that doesn't take part in the execution")
			e.metrics.dropped(dropUnknownDestination)
			continue
		}
		if err = e.delivery.Feed(ctx, outgoing); err != nil {
			return e.abort(Error{Kind: ErrSendMessage, Err: err})
		}
		e.metrics.sent()
		e.log.Debug().Stringer("to", msg.To).Msg("message queued")
	}

	if err := e.delivery.Flush(ctx); err != nil {
		return e.abort(Error{Kind: ErrSendMessage, Err: err})
	}
	return nil
}

// receive pulls messages from the delivery until state has all the input it needs.
func (e *execution[M, T]) receive(ctx context.Context, state round.State[M, T]) ([]round.InputMessage[M], error) {
	received := make([]round.InputMessage[M], 0, e.parties.Len())

	for !state.IsInputComplete(received) {
		incoming, err := e.delivery.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil, e.abort(Error{Kind: ErrUnexpectedEOF})
		}
		if err != nil {
			return nil, e.abort(Error{Kind: ErrReceiveNextMessage, Err: err})
		}

		sender := incoming.Sender
		if sender == e.self {
			e.log.Debug().Msg("ignoring own message")
			e.metrics.dropped(dropOwn)
			continue
		}

		msg, err := ToInput(e.parties, incoming)
		if err != nil {
			return nil, e.abort(Error{Kind: ErrUnknownSender, Sender: &sender, Err: err})
		}

		if !state.IsMessageExpected(msg, received) {
			return nil, e.abort(Error{Kind: ErrReceivedUnexpectedMessage, Sender: &sender, Culprit: msg.From})
		}

		received = append(received, msg)
		e.metrics.received()
		e.log.Debug().Str("from", string(msg.From)).Int("received", len(received)).Msg("got new message")
	}

	return received, nil
}

// abort completes err with the current round number and logs it.
func (e *execution[M, T]) abort(err Error) error {
	err.RoundNumber = e.roundNumber
	e.log.Error().Err(err).Msg("execution aborted")
	return err
}

func (e *execution[M, T]) setRound(n round.Number) {
	e.roundNumber = n
	e.log = e.baseLog.With().Uint16("round", uint16(n)).Logger()
}
