package protocol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/round-driver/internal/test"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/protocol"
	"github.com/taurusgroup/round-driver/pkg/round"
	"github.com/taurusgroup/round-driver/pkg/transport"
)

func TestToOutgoing(t *testing.T) {
	parties := test.PartyList(3)

	out, err := protocol.ToOutgoing(parties, round.OutputMessage[string]{To: round.Broadcast(), Body: "all"})
	require.NoError(t, err)
	assert.True(t, out.Broadcast())
	assert.Equal(t, "all", out.Msg)

	out, err = protocol.ToOutgoing(parties, round.OutputMessage[string]{To: round.Peer("c"), Body: "to c"})
	require.NoError(t, err)
	require.NotNil(t, out.Recipient)
	assert.Equal(t, party.Position(2), *out.Recipient)
	assert.Equal(t, "to c", out.Msg)

	_, err = protocol.ToOutgoing(parties, round.OutputMessage[string]{To: round.Peer("z"), Body: "lost"})
	var unknown *protocol.UnknownDestinationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, party.ID("z"), unknown.Recipient)
}

func TestToInput(t *testing.T) {
	parties := test.PartyList(2)

	in, err := protocol.ToInput(parties, transport.Incoming[string]{Sender: 1, Msg: "hi"})
	require.NoError(t, err)
	assert.Equal(t, round.InputMessage[string]{From: "b", Body: "hi"}, in)

	_, err = protocol.ToInput(parties, transport.Incoming[string]{Sender: 2, Msg: "hi"})
	var unknown *protocol.UnknownSenderError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, party.Position(2), unknown.Sender)
	assert.EqualError(t, err, "received message from unknown party 2")
}
