package protocol

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
)

// Kinds of failure reported by Execute.
// Every error returned by Execute is an Error whose Kind is one of these, and
// can be tested with errors.Is.
var (
	// ErrProtocol indicates that the protocol itself terminated with an error.
	ErrProtocol = errors.New("protocol terminated with error")
	// ErrReceiveNextMessage indicates that the transport failed to receive a message.
	ErrReceiveNextMessage = errors.New("receiving next message resulted in error")
	// ErrUnexpectedEOF indicates that the transport ran out of messages before the round was complete.
	ErrUnexpectedEOF = errors.New("unexpected eof")
	// ErrSendMessage indicates that the transport failed to send a message.
	ErrSendMessage = errors.New("cannot send a message")
	// ErrReceivedUnexpectedMessage indicates that the round rejected a message.
	ErrReceivedUnexpectedMessage = errors.New("received unexpected message")
	// ErrUnknownSender indicates that the transport reported a sender outside the party list.
	ErrUnknownSender = errors.New("received message from unknown party")
	// ErrInvalidSession indicates that Execute was called with inconsistent arguments.
	ErrInvalidSession = errors.New("invalid session")
)

// Error is returned by Execute when the execution aborts.
// It records in which round the abort happened and, when known, which party caused it.
type Error struct {
	// Kind is one of the Err* values of this package.
	Kind error
	// RoundNumber where the error occurred, 0 if it happened before the first round.
	RoundNumber round.Number
	// Sender is the position of the party whose message caused the error, if any.
	Sender *party.Position
	// Culprit is empty if the identity of the misbehaving party cannot be known.
	Culprit party.ID
	// Err is the underlying error, if any.
	Err error
}

func (e Error) Error() string {
	msg := fmt.Sprintf("round %d: %s", e.RoundNumber, e.Kind)
	switch {
	case e.Culprit != "":
		msg = fmt.Sprintf("round %d: party %s: %s", e.RoundNumber, e.Culprit, e.Kind)
	case e.Sender != nil:
		msg = fmt.Sprintf("round %d: party at position %d: %s", e.RoundNumber, *e.Sender, e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns both the Kind and the underlying error, so that errors.Is and
// errors.As match either of them.
func (e Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// kindLabel names an error kind for metrics.
func kindLabel(err error) string {
	var e Error
	if !errors.As(err, &e) {
		return "unknown"
	}
	switch e.Kind {
	case ErrProtocol:
		return "protocol"
	case ErrReceiveNextMessage:
		return "receive"
	case ErrUnexpectedEOF:
		return "unexpected_eof"
	case ErrSendMessage:
		return "send"
	case ErrReceivedUnexpectedMessage:
		return "unexpected_message"
	case ErrUnknownSender:
		return "unknown_sender"
	case ErrInvalidSession:
		return "invalid_session"
	default:
		return "unknown"
	}
}
