// Package xor implements a simple protocol where all parties agree on a common
// random value.
//
// In the first round, every party commits to a random RID. In the second round,
// the RIDs are revealed, and the output is the XOR of all of them. Since nobody
// can change their RID after seeing the others, the output is uniformly random as
// long as one party is honest.
package xor

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/taurusgroup/round-driver/internal/hash"
	"github.com/taurusgroup/round-driver/internal/types"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/round"
)

// ProtocolID identifies this protocol.
const ProtocolID = "example/xor"

// ErrDecommitment is returned when a party reveals a RID that does not match its commitment.
var ErrDecommitment = errors.New("xor: failed to decommit RID")

// Result is the output of the protocol.
type Result []byte

// Message is exchanged in both rounds of the protocol.
type Message struct {
	Round        round.Number
	Commitment   hash.Commitment   `cbor:",omitempty"`
	RID          types.RID         `cbor:",omitempty"`
	Decommitment hash.Decommitment `cbor:",omitempty"`
}

// session holds the information shared by all rounds.
type session struct {
	selfID   party.ID
	partyIDs party.IDSlice
	// hash is initialized with the session information, and used for commitments.
	hash *hash.Hash
}

// others returns the number of messages expected in each round.
func (s *session) others() int { return len(s.partyIDs) - 1 }

// Start returns the first round of the protocol for selfID.
// sessionID is optional. When used, it should be unique for each execution of the protocol.
func Start(selfID party.ID, parties *party.List, sessionID []byte) (round.State[Message, Result], error) {
	partyIDs := parties.IDs()
	if !partyIDs.Contains(selfID) {
		return nil, fmt.Errorf("xor: selfID %q not included in partyIDs", selfID)
	}

	h := hash.New()
	if err := h.WriteAny(&hash.BytesWithDomain{TheDomain: "Protocol ID", Bytes: []byte(ProtocolID)}); err != nil {
		return nil, fmt.Errorf("xor: %w", err)
	}
	if sessionID != nil {
		if err := h.WriteAny(&hash.BytesWithDomain{TheDomain: "Session ID", Bytes: sessionID}); err != nil {
			return nil, fmt.Errorf("xor: %w", err)
		}
	}
	if err := h.WriteAny(partyIDs); err != nil {
		return nil, fmt.Errorf("xor: %w", err)
	}

	s := &session{
		selfID:   selfID,
		partyIDs: partyIDs,
		hash:     h,
	}

	rid, err := types.NewRID(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("xor: failed to sample RID: %w", err)
	}
	commitment, decommitment, err := h.Commit(rand.Reader, selfID, rid)
	if err != nil {
		return nil, fmt.Errorf("xor: %w", err)
	}

	return &round1{
		session:      s,
		rid:          rid,
		commitment:   commitment,
		decommitment: decommitment,
	}, nil
}

// receivedFrom returns true if received already contains a message from id.
func receivedFrom(id party.ID, received []round.InputMessage[Message]) bool {
	for _, msg := range received {
		if msg.From == id {
			return true
		}
	}
	return false
}
