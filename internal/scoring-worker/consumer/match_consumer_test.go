package consumer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/cricket-bet-platform/internal/scoring"
)

// Payload que não é JSON é descartado na hora: conta como erro de
// decode e não vai para a DLQ nem chega na pontuação.
func TestHandle_InvalidPayloadIsDropped(t *testing.T) {
	var consumed, scored int
	var stages []string

	p := &MatchProcessor{
		Log:        zap.NewNop(),
		OnConsumed: func() { consumed++ },
		OnScored:   func() { scored++ },
		OnError:    func(stage string) { stages = append(stages, stage) },
	}

	p.handle(context.Background(), []byte("m10"), []byte("not json"))

	assert.Equal(t, 1, consumed)
	assert.Equal(t, 0, scored)
	require.Len(t, stages, 1)
	assert.Equal(t, "decode", stages[0])
}

func TestHandle_InvalidPayloadLongTerm(t *testing.T) {
	var stages []string
	p := &LongTermProcessor{
		Log:     zap.NewNop(),
		OnError: func(stage string) { stages = append(stages, stage) },
	}

	p.handle(context.Background(), nil, []byte("{broken"))

	require.Len(t, stages, 1)
	assert.Equal(t, "decode", stages[0])
}

func TestApplyManOfMatch(t *testing.T) {
	stats := map[string]scoring.PlayerMatchStat{
		"p_rohit":  {PlayerID: "p_rohit", Runs: 120},
		"p_bumrah": {PlayerID: "p_bumrah", Wickets: 3},
	}

	applyManOfMatch(stats, "p_rohit")

	// exatamente um jogador marcado
	assert.True(t, stats["p_rohit"].ManOfMatch)
	assert.False(t, stats["p_bumrah"].ManOfMatch)
}

func TestApplyManOfMatch_EmptyPlayerID(t *testing.T) {
	stats := map[string]scoring.PlayerMatchStat{
		"p_rohit": {PlayerID: "p_rohit"},
	}

	applyManOfMatch(stats, "")

	assert.False(t, stats["p_rohit"].ManOfMatch)
}

func TestApplyManOfMatch_UnknownPlayer(t *testing.T) {
	stats := map[string]scoring.PlayerMatchStat{
		"p_rohit": {PlayerID: "p_rohit"},
	}

	applyManOfMatch(stats, "p_fantasma")

	assert.Len(t, stats, 1)
	assert.False(t, stats["p_rohit"].ManOfMatch)
}
