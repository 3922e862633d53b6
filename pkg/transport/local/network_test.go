package local_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/round-driver/pkg/party"
	"github.com/taurusgroup/round-driver/pkg/transport"
	"github.com/taurusgroup/round-driver/pkg/transport/local"
)

func TestNetwork_Broadcast(t *testing.T) {
	ctx := context.Background()
	n := local.NewNetwork[string](3)
	require.Equal(t, 3, n.N())
	d0 := n.Delivery(0)
	assert.Equal(t, party.Position(0), d0.Self())

	require.NoError(t, d0.Feed(ctx, transport.ToAll("hello")))
	require.NoError(t, d0.Feed(ctx, transport.To[string](2, "direct")))
	require.NoError(t, d0.Flush(ctx))
	n.CloseAll()

	msg, err := n.Delivery(1).Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, transport.Incoming[string]{Sender: 0, Msg: "hello"}, msg)
	_, err = n.Delivery(1).Next(ctx)
	assert.ErrorIs(t, err, io.EOF)

	d2 := n.Delivery(2)
	msg, err = d2.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Msg)
	msg, err = d2.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "direct", msg.Msg)

	_, err = d0.Next(ctx)
	assert.ErrorIs(t, err, io.EOF, "broadcast must not come back without echo")
}

func TestNetwork_Echo(t *testing.T) {
	ctx := context.Background()
	n := local.NewNetwork[int](2, local.WithEcho())
	d0 := n.Delivery(0)

	require.NoError(t, d0.Feed(ctx, transport.ToAll(7)))
	require.NoError(t, d0.Flush(ctx))

	msg, err := d0.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, transport.Incoming[int]{Sender: 0, Msg: 7}, msg)
}

func TestNetwork_FeedIsBuffered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	n := local.NewNetwork[int](2)

	require.NoError(t, n.Delivery(0).Feed(ctx, transport.ToAll(1)))
	_, err := n.Delivery(1).Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNetwork_UnknownRecipient(t *testing.T) {
	ctx := context.Background()
	n := local.NewNetwork[int](2)
	d := n.Delivery(0)

	require.NoError(t, d.Feed(ctx, transport.To(5, 1)))
	assert.ErrorIs(t, d.Flush(ctx), local.ErrUnknownRecipient)
}

func TestNetwork_BlockingNext(t *testing.T) {
	ctx := context.Background()
	n := local.NewNetwork[int](2)

	got := make(chan transport.Incoming[int], 1)
	go func() {
		msg, err := n.Delivery(1).Next(ctx)
		if err == nil {
			got <- msg
		}
		close(got)
	}()

	d0 := n.Delivery(0)
	require.NoError(t, d0.Feed(ctx, transport.To(1, 3)))
	require.NoError(t, d0.Flush(ctx))

	select {
	case msg := <-got:
		assert.Equal(t, 3, msg.Msg)
	case <-time.After(5 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestNetwork_DeliveryOutOfRange(t *testing.T) {
	n := local.NewNetwork[int](1)
	assert.Panics(t, func() { n.Delivery(1) })
}
