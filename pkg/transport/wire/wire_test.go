package wire_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/round-driver/pkg/transport"
	"github.com/taurusgroup/round-driver/pkg/transport/wire"
)

type payload struct {
	Round uint16
	Data  []byte
}

func TestConn_RoundTrip(t *testing.T) {
	ctx := context.Background()
	var stream bytes.Buffer

	sender := wire.New[payload](0, eofReader{}, &stream)
	require.NoError(t, sender.Feed(ctx, transport.ToAll(payload{Round: 1, Data: []byte("all")})))
	require.NoError(t, sender.Feed(ctx, transport.To(2, payload{Round: 1, Data: []byte("for 2")})))
	require.NoError(t, sender.Feed(ctx, transport.To(1, payload{Round: 1, Data: []byte("for 1")})))
	assert.Zero(t, stream.Len(), "frames must stay buffered until Flush")
	require.NoError(t, sender.Flush(ctx))
	require.NotZero(t, stream.Len())

	receiver := wire.New[payload](1, &stream, io.Discard)
	msg, err := receiver.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, transport.Incoming[payload]{Sender: 0, Msg: payload{Round: 1, Data: []byte("all")}}, msg)

	msg, err = receiver.Next(ctx)
	require.NoError(t, err, "frame for position 2 must be skipped")
	assert.Equal(t, []byte("for 1"), msg.Msg.Data)

	_, err = receiver.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConn_Truncated(t *testing.T) {
	ctx := context.Background()
	var frame bytes.Buffer
	sender := wire.New[payload](0, eofReader{}, &frame)
	require.NoError(t, sender.Feed(ctx, transport.ToAll(payload{Data: []byte("some data")})))
	require.NoError(t, sender.Flush(ctx))
	size := frame.Len()

	tests := []struct {
		name string
		cut  int
	}{
		{"last byte", 1},
		{"body", 3},
		{"header", size - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			truncated := bytes.NewReader(frame.Bytes()[:size-tt.cut])
			receiver := wire.New[payload](1, truncated, io.Discard)
			_, err := receiver.Next(ctx)
			assert.ErrorIs(t, err, wire.ErrMalformedFrame)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			assert.NotErrorIs(t, err, io.EOF)
		})
	}
}

func TestConn_TruncatedAfterFrame(t *testing.T) {
	ctx := context.Background()
	var stream bytes.Buffer
	sender := wire.New[payload](0, eofReader{}, &stream)
	require.NoError(t, sender.Feed(ctx, transport.ToAll(payload{Round: 1})))
	require.NoError(t, sender.Feed(ctx, transport.ToAll(payload{Round: 2, Data: []byte("cut")})))
	require.NoError(t, sender.Flush(ctx))

	receiver := wire.New[payload](1, bytes.NewReader(stream.Bytes()[:stream.Len()-2]), io.Discard)
	msg, err := receiver.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), msg.Msg.Round)

	_, err = receiver.Next(ctx)
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestConn_WrongBodyType(t *testing.T) {
	ctx := context.Background()
	var stream bytes.Buffer

	sender := wire.New[string](0, eofReader{}, &stream)
	require.NoError(t, sender.Feed(ctx, transport.ToAll("not a payload")))
	require.NoError(t, sender.Flush(ctx))

	receiver := wire.New[payload](1, &stream, io.Discard)
	_, err := receiver.Next(ctx)
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)
}

func TestConn_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := wire.New[payload](0, eofReader{}, io.Discard)
	assert.ErrorIs(t, c.Feed(ctx, transport.ToAll(payload{})), context.Canceled)
	assert.ErrorIs(t, c.Flush(ctx), context.Canceled)
	_, err := c.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
