package xor

import (
	"fmt"

	"github.com/taurusgroup/round-driver/internal/hash"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
)

// round2 reveals this party's RID, and outputs the XOR of all RIDs.
type round2 struct {
	*round1

	// commitments received in round1
	commitments map[party.ID]hash.Commitment
}

func (r *round2) Start() []round.OutputMessage[Message] {
	return []round.OutputMessage[Message]{{
		To:   round.Broadcast(),
		Body: Message{Round: 2, RID: r.rid, Decommitment: r.decommitment},
	}}
}

func (r *round2) IsInputComplete(received []round.InputMessage[Message]) bool {
	return len(received) >= r.others()
}

// IsMessageExpected accepts a single well formed opening from every party that committed in round1.
func (r *round2) IsMessageExpected(msg round.InputMessage[Message], received []round.InputMessage[Message]) bool {
	if _, ok := r.commitments[msg.From]; !ok || msg.Body.Round != 2 {
		return false
	}
	if msg.Body.RID.Validate() != nil || msg.Body.Decommitment.Validate() != nil {
		return false
	}
	return !receivedFrom(msg.From, received)
}

func (r *round2) Consume(received []round.InputMessage[Message]) round.Transition[Message, Result] {
	result := r.rid
	for _, msg := range received {
		if !r.hash.Decommit(r.commitments[msg.From], msg.Body.Decommitment, msg.From, msg.Body.RID) {
			return round.Abort[Message, Result](fmt.Errorf("party %q: %w", msg.From, ErrDecommitment))
		}
		result = result.XOR(msg.Body.RID)
	}
	return round.Final[Message, Result](Result(result))
}
