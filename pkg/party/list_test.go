package party_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/round-driver/pkg/party"
)

func sortedIDs(n int) []party.ID {
	ids := make([]party.ID, n)
	for i := range ids {
		ids[i] = party.ID(fmt.Sprintf("party-%08d", i))
	}
	return ids
}

func TestNewList(t *testing.T) {
	tests := []struct {
		name     string
		partyIDs []party.ID
		wantErr  error
	}{
		{"empty", nil, nil},
		{"single", []party.ID{"a"}, nil},
		{"sorted", []party.ID{"a", "b", "c"}, nil},
		{"unsorted", []party.ID{"b", "a", "c"}, party.ErrNotSorted},
		{"duplicate", []party.ID{"a", "b", "b"}, party.ErrNotSorted},
		{"max", sortedIDs(party.MaxParties), nil},
		{"too large", sortedIDs(party.MaxParties + 1), party.ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := party.NewList(tt.partyIDs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.partyIDs), l.Len())
		})
	}
}

func TestList_Bijection(t *testing.T) {
	ids := sortedIDs(300)
	l, err := party.NewList(ids)
	require.NoError(t, err)

	for i := 0; i < l.Len(); i++ {
		p := party.Position(i)
		id, ok := l.IDAt(p)
		require.True(t, ok)
		got, ok := l.PositionOf(id)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
	for _, id := range ids {
		p, ok := l.PositionOf(id)
		require.True(t, ok)
		got, ok := l.IDAt(p)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestList_Lookups(t *testing.T) {
	l, err := party.NewList([]party.ID{"alice", "bob", "carol"})
	require.NoError(t, err)

	p, ok := l.PositionOf("bob")
	assert.True(t, ok)
	assert.Equal(t, party.Position(1), p)

	_, ok = l.PositionOf("dave")
	assert.False(t, ok)
	_, ok = l.PositionOf("")
	assert.False(t, ok)

	_, ok = l.IDAt(3)
	assert.False(t, ok)
	_, ok = l.IDAt(party.MaxParties)
	assert.False(t, ok)
}

func TestList_Immutable(t *testing.T) {
	ids := []party.ID{"a", "b"}
	l, err := party.NewList(ids)
	require.NoError(t, err)

	ids[0] = "z"
	got, _ := l.IDAt(0)
	assert.Equal(t, party.ID("a"), got)

	out := l.IDs()
	out[1] = "y"
	got, _ = l.IDAt(1)
	assert.Equal(t, party.ID("b"), got)
}

func TestIDSlice_Search(t *testing.T) {
	tests := []struct {
		name        string
		partyIDs    party.IDSlice
		requestedID party.ID
		want        int
		found       bool
	}{
		{"empty", party.IDSlice{}, "a", 0, false},
		{"first", party.IDSlice{"a", "b"}, "a", 0, true},
		{"last", party.IDSlice{"a", "b", "c"}, "c", 2, true},
		{"missing", party.IDSlice{"a", "c"}, "b", 0, false},
		{"empty id", party.IDSlice{"", "a"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.partyIDs.Search(tt.requestedID)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, tt.partyIDs.Contains(tt.requestedID))
		})
	}
}

func TestNewIDSlice(t *testing.T) {
	in := []party.ID{"c", "a", "b"}
	ids := party.NewIDSlice(in)
	assert.Equal(t, party.IDSlice{"a", "b", "c"}, ids)
	assert.True(t, ids.StrictlySorted())
	assert.Equal(t, party.ID("c"), in[0])
}
