package xor

import (
	"github.com/taurusgroup/round-driver/internal/hash"
	"github.com/taurusgroup/round-driver/internal/types"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
)

// round1 broadcasts a commitment to this party's RID.
type round1 struct {
	*session

	rid          types.RID
	commitment   hash.Commitment
	decommitment hash.Decommitment
}

func (r *round1) Start() []round.OutputMessage[Message] {
	return []round.OutputMessage[Message]{{
		To:   round.Broadcast(),
		Body: Message{Round: 1, Commitment: r.commitment},
	}}
}

func (r *round1) IsInputComplete(received []round.InputMessage[Message]) bool {
	return len(received) >= r.others()
}

// IsMessageExpected accepts a single well formed commitment from every other party.
func (r *round1) IsMessageExpected(msg round.InputMessage[Message], received []round.InputMessage[Message]) bool {
	if msg.From == r.selfID || msg.Body.Round != 1 {
		return false
	}
	if msg.Body.Commitment.Validate() != nil {
		return false
	}
	return !receivedFrom(msg.From, received)
}

func (r *round1) Consume(received []round.InputMessage[Message]) round.Transition[Message, Result] {
	commitments := make(map[party.ID]hash.Commitment, len(received))
	for _, msg := range received {
		commitments[msg.From] = msg.Body.Commitment
	}
	return round.Next[Message, Result](&round2{
		round1:      r,
		commitments: commitments,
	})
}
