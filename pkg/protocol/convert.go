package protocol

import (
	"fmt"

	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

// UnknownDestinationError is returned by ToOutgoing when a message is addressed
// to a party that does not take part in the execution.
type UnknownDestinationError struct {
	Recipient party.ID
}

func (e *UnknownDestinationError) Error() string {
	return fmt.Sprintf("protocol message is addressed to unknown party: %q", e.Recipient)
}

// UnknownSenderError is returned by ToInput when the sender's position does not
// correspond to any party in the list.
type UnknownSenderError struct {
	Sender party.Position
}

func (e *UnknownSenderError) Error() string {
	return fmt.Sprintf("received message from unknown party %d", e.Sender)
}

// ToOutgoing converts a message addressed by party ID into a message addressed by Position.
// A broadcast message has no recipient.
func ToOutgoing[M any](parties *party.List, msg round.OutputMessage[M]) (transport.Outgoing[M], error) {
	id, ok := msg.To.Peer()
	if !ok {
		return transport.ToAll(msg.Body), nil
	}
	p, ok := parties.PositionOf(id)
	if !ok {
		return transport.Outgoing[M]{}, &UnknownDestinationError{Recipient: id}
	}
	return transport.To(p, msg.Body), nil
}

// ToInput converts a message received from a Position into a message from a party ID.
func ToInput[M any](parties *party.List, incoming transport.Incoming[M]) (round.InputMessage[M], error) {
	id, ok := parties.IDAt(incoming.Sender)
	if !ok {
		return round.InputMessage[M]{}, &UnknownSenderError{Sender: incoming.Sender}
	}
	return round.InputMessage[M]{From: id, Body: incoming.Msg}, nil
}
