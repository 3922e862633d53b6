package round

import "errors"

// ErrNilResult is reported when a round aborts without giving a reason.
var ErrNilResult = errors.New("round: failed without error before reaching the final round")

// State is one round of a protocol.
//
// M is the body of the messages exchanged by the protocol. Since it is shared by
// OutputMessage and InputMessage, a protocol always consumes the same message
// type it produces. T is the output of the protocol.
//
// A State is owned by a single goroutine and is never used again once Consume has
// returned.
type State[M, T any] interface {
	// Start returns the messages to send at the beginning of the round, in order.
	// A nil or empty slice means nothing is sent.
	Start() []OutputMessage[M]

	// IsInputComplete reports whether enough messages were received to finish the round.
	IsInputComplete(received []InputMessage[M]) bool

	// IsMessageExpected reports whether msg may be accepted, given the messages received so far.
	// It is called once for every candidate, before it is added to received.
	IsMessageExpected(msg InputMessage[M], received []InputMessage[M]) bool

	// Consume finishes the round with the received messages and returns the next step.
	Consume(received []InputMessage[M]) Transition[M, T]
}

// Transition is the outcome of State.Consume: either the next round, or the
// final result of the protocol.
type Transition[M, T any] struct {
	next   State[M, T]
	result T
	err    error
	final  bool
}

// Next continues the protocol with the round s.
func Next[M, T any](s State[M, T]) Transition[M, T] {
	return Transition[M, T]{next: s}
}

// Final terminates the protocol successfully with result.
func Final[M, T any](result T) Transition[M, T] {
	return Transition[M, T]{result: result, final: true}
}

// Abort terminates the protocol with err.
// A nil err is replaced by ErrNilResult.
func Abort[M, T any](err error) Transition[M, T] {
	if err == nil {
		err = ErrNilResult
	}
	return Transition[M, T]{err: err, final: true}
}

// IsFinal returns true if the protocol terminated.
func (t Transition[M, T]) IsFinal() bool { return t.final }

// State returns the next round, if the protocol did not terminate.
func (t Transition[M, T]) State() (State[M, T], bool) {
	if t.final {
		return nil, false
	}
	return t.next, true
}

// Result returns the output of a terminated protocol, or the error it aborted with.
func (t Transition[M, T]) Result() (T, error) {
	return t.result, t.err
}
