package bets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_Deterministic(t *testing.T) {
	assert.Equal(t, "bet_u1_m01", ID("u1", "m01"))
	assert.Equal(t, ID("u1", "m01"), ID("u1", "m01"))
	assert.NotEqual(t, ID("u1", "m01"), ID("u1", "m02"))
	assert.NotEqual(t, ID("u1", "m01"), ID("u2", "m01"))
}

func TestPick(t *testing.T) {
	b := &Bet{PlayerPicks: []PlayerPick{
		{Slot: 0, PlayerID: "p_rohit"},
		{Slot: 2, PlayerID: "p_dhoni"},
	}}

	p, ok := b.Pick(0)
	assert.True(t, ok)
	assert.Equal(t, "p_rohit", p)

	_, ok = b.Pick(1)
	assert.False(t, ok)
}
