package test

import (
	"github.com/taurusgroup/round-driver/pkg/party"
)

// PartyIDs returns a party.IDSlice (sorted) with IDs represented as simple strings.
func PartyIDs(n int) party.IDSlice {
	baseString := ""
	ids := make(party.IDSlice, n)
	for i := range ids {
		if i%26 == 0 && i > 0 {
			baseString += "a"
		}
		ids[i] = party.ID(baseString + string('a'+rune(i%26)))
	}
	return party.NewIDSlice(ids)
}

// PartyList returns the party.List of PartyIDs(n).
func PartyList(n int) *party.List {
	l, err := party.NewList(PartyIDs(n))
	if err != nil {
		panic(err)
	}
	return l
}
