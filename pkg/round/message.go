package round

import (
	"fmt"

	"github.com/taurusgroup/round-driver/pkg/party"
)

// Address designates the recipients of an OutputMessage.
// The zero value is the broadcast address.
type Address struct {
	to   party.ID
	peer bool
}

// Broadcast returns the Address of every party taking part in the execution.
func Broadcast() Address { return Address{} }

// Peer returns the Address of the single party id.
func Peer(id party.ID) Address { return Address{to: id, peer: true} }

// IsBroadcast returns true if the message should be delivered to all participants.
func (a Address) IsBroadcast() bool { return !a.peer }

// Peer returns the recipient of a point-to-point address.
// The second return value is false for a broadcast address.
func (a Address) Peer() (party.ID, bool) { return a.to, a.peer }

// String implements fmt.Stringer.
func (a Address) String() string {
	if a.peer {
		return fmt.Sprintf("peer(%s)", a.to)
	}
	return "broadcast"
}

// OutputMessage is a message produced by a State, addressed by party ID.
type OutputMessage[M any] struct {
	To   Address
	Body M
}

// InputMessage is a message handed to a State, together with the ID of its sender.
type InputMessage[M any] struct {
	From party.ID
	Body M
}
