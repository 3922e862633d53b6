package test

import (
	"github.com/taurusgroup/round-driver/pkg/round"
)

// Calls records how a driver used a Round.
type Calls[M any] struct {
	// Expected holds every message given to IsMessageExpected.
	Expected []round.InputMessage[M]
	// Completed holds the length of the batch given to each IsInputComplete call.
	Completed []int
	// Consumed holds the batch given to Consume, if it was called.
	Consumed []round.InputMessage[M]
	// ConsumeCalled is true once Consume was called.
	ConsumeCalled bool
}

// Round is a scripted round.State.
// Its output is the batch of messages received in the final round.
type Round[M any] struct {
	// Messages are returned by Start.
	Messages []round.OutputMessage[M]
	// Want is the number of messages completing the input.
	Want int
	// Reject makes IsMessageExpected return false for the messages it matches.
	Reject func(round.InputMessage[M]) bool
	// Next is the round following this one. If nil, the protocol terminates.
	Next *Round[M]
	// Err makes Consume abort the protocol.
	Err error

	Calls Calls[M]
}

var _ round.State[string, []round.InputMessage[string]] = (*Round[string])(nil)

func (r *Round[M]) Start() []round.OutputMessage[M] { return r.Messages }

func (r *Round[M]) IsInputComplete(received []round.InputMessage[M]) bool {
	r.Calls.Completed = append(r.Calls.Completed, len(received))
	return len(received) >= r.Want
}

func (r *Round[M]) IsMessageExpected(msg round.InputMessage[M], _ []round.InputMessage[M]) bool {
	r.Calls.Expected = append(r.Calls.Expected, msg)
	return r.Reject == nil || !r.Reject(msg)
}

func (r *Round[M]) Consume(received []round.InputMessage[M]) round.Transition[M, []round.InputMessage[M]] {
	r.Calls.ConsumeCalled = true
	r.Calls.Consumed = received
	if r.Err != nil {
		return round.Abort[M, []round.InputMessage[M]](r.Err)
	}
	if r.Next != nil {
		return round.Next[M, []round.InputMessage[M]](r.Next)
	}
	return round.Final[M, []round.InputMessage[M]](received)
}
