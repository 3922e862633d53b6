package types

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRID_XOR(t *testing.T) {
	a, err := NewRID(rand.Reader)
	require.NoError(t, err)
	require.NoError(t, a.Validate())
	b, err := NewRID(rand.Reader)
	require.NoError(t, err)

	before := append(RID(nil), a...)
	ab := a.XOR(b)
	assert.Equal(t, before, a, "XOR must not modify its receiver")
	assert.Equal(t, a, ab.XOR(b))

	zero := a.XOR(a)
	assert.Len(t, zero, RIDLength)
	assert.Error(t, zero.Validate(), "zero rid is invalid")
}

func TestNewRID(t *testing.T) {
	rid, err := NewRID(bytes.NewReader(bytes.Repeat([]byte{7}, RIDLength)))
	require.NoError(t, err)
	assert.Equal(t, RID(bytes.Repeat([]byte{7}, RIDLength)), rid)

	_, err = NewRID(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)

	assert.Error(t, RID{1, 2}.Validate())
}
