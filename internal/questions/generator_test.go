package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/cricket-bet-platform/internal/fixtures"
)

func testMatch(id string) *fixtures.Match {
	return &fixtures.Match{
		ID:    id,
		TeamA: fixtures.Team{ID: "MI", Name: "Mumbai Indians"},
		TeamB: fixtures.Team{ID: "CSK", Name: "Chennai Super Kings"},
		SquadA: []fixtures.Player{
			{ID: "p_rohit", Name: "Rohit Sharma", TeamID: "MI"},
			{ID: "p_bumrah", Name: "Jasprit Bumrah", TeamID: "MI"},
		},
		SquadB: []fixtures.Player{
			{ID: "p_dhoni", Name: "MS Dhoni", TeamID: "CSK"},
		},
	}
}

func TestGenerateStandardPack_EarlyMatch(t *testing.T) {
	// Jogo de abertura ignora a config e gera exatamente 2 perguntas
	cfg := MatchBettingConfig{WinnerPointsX: 9999, PlayerPickSlots: 5, RunnersEnabled: true}
	pack := GenerateStandardPack(testMatch("m01"), cfg)

	require.Len(t, pack, 2)
	assert.Equal(t, "q_m01_winner", pack[0].QuestionID)
	assert.Equal(t, KindWinner, pack[0].Kind)
	assert.Equal(t, 1000, pack[0].Points)
	assert.Equal(t, 0, pack[0].PointsWrong)
	assert.Equal(t, "q_m01_runs", pack[1].QuestionID)
	assert.Equal(t, KindTotalRuns, pack[1].Kind)
	assert.Equal(t, 1000, pack[1].Points)
}

func TestGenerateStandardPack_RegularMatch(t *testing.T) {
	cfg := MatchBettingConfig{
		WinnerPointsX:    1000,
		TotalRunsPointsX: 1000,
		PlayerPickSlots:  3,
		MultiplierPreset: []float64{2}, // curto de propósito
		RunnersEnabled:   true,
	}
	pack := GenerateStandardPack(testMatch("m10"), cfg)

	// winner + runs + 3 picks + runner
	require.Len(t, pack, 6)

	assert.Equal(t, "q_m10_winner", pack[0].QuestionID)
	assert.Equal(t, "q_m10_runs", pack[1].QuestionID)
	assert.Equal(t, "q_m10_pick1", pack[2].QuestionID)
	assert.Equal(t, "q_m10_pick2", pack[3].QuestionID)
	assert.Equal(t, "q_m10_pick3", pack[4].QuestionID)
	assert.Equal(t, "q_m10_runner", pack[5].QuestionID)

	// Preset curto completa com 1s
	assert.Equal(t, 2.0, pack[2].Slot.Multiplier)
	assert.Equal(t, 1.0, pack[3].Slot.Multiplier)
	assert.Equal(t, 1.0, pack[4].Slot.Multiplier)

	// Picks listam a união dos elencos
	assert.Len(t, pack[2].Options, 3)
}

func TestGenerateStandardPack_WinnerOptions(t *testing.T) {
	cfg := MatchBettingConfig{WinnerPointsX: 1000}
	pack := GenerateStandardPack(testMatch("m10"), cfg)

	winner := pack[0]
	require.Len(t, winner.Options, 3)
	assert.Equal(t, "opt_m10_MI", winner.Options[0].OptionID)
	assert.Equal(t, "opt_m10_CSK", winner.Options[1].OptionID)

	so := winner.Options[2]
	assert.Equal(t, "opt_m10_super_over", so.OptionID)
	assert.Equal(t, "SUPER_OVER", so.ReferenceID)
	assert.Equal(t, 5.0, so.Weight)
}

func TestGenerateStandardPack_EmptySquads(t *testing.T) {
	m := testMatch("m10")
	m.SquadA = nil
	m.SquadB = nil
	cfg := MatchBettingConfig{PlayerPickSlots: 2}
	pack := GenerateStandardPack(m, cfg)

	require.Len(t, pack, 4)
	assert.Empty(t, pack[2].Options)
	assert.Empty(t, pack[3].Options)
}

func TestGenerateStandardPack_Deterministic(t *testing.T) {
	cfg := MatchBettingConfig{WinnerPointsX: 1000, PlayerPickSlots: 2, RunnersEnabled: true}
	a := GenerateStandardPack(testMatch("m10"), cfg)
	b := GenerateStandardPack(testMatch("m10"), cfg)
	assert.Equal(t, a, b)
}

func testTemplates() *TemplateLibrary {
	return &TemplateLibrary{Templates: []SideBetTemplate{
		{
			TemplateID:    "tpl_toss",
			Text:          "Who wins the toss in {{teamA}} vs {{teamB}}?",
			Type:          TypeMultiChoice,
			DefaultPoints: 200,
			Options: []TemplateOption{
				{Label: "{{teamA}}", ReferenceType: RefTeam, ReferenceID: "{{teamAId}}"},
				{Label: "{{teamB}}", ReferenceType: RefTeam, ReferenceID: "{{teamBId}}"},
			},
		},
		{
			TemplateID:    "tpl_six",
			Text:          "Six in the first over?",
			Type:          TypeYesNo,
			DefaultPoints: 150,
			PointsWrong:   -50,
			Options: []TemplateOption{
				{Label: "Yes", ReferenceType: RefNone},
				{Label: "No", ReferenceType: RefNone},
			},
		},
	}}
}

func TestApplySideBets_Substitution(t *testing.T) {
	out := ApplySideBets(testMatch("m10"), testTemplates(), 1, nil, []string{"tpl_toss"})

	require.Len(t, out, 1)
	q := out[0]
	assert.Equal(t, "q_m10_side_tpl_toss", q.QuestionID)
	assert.Equal(t, SectionSide, q.Section)
	assert.Equal(t, "Who wins the toss in Mumbai Indians vs Chennai Super Kings?", q.Text)
	assert.Equal(t, 200, q.Points)

	require.Len(t, q.Options, 2)
	assert.Equal(t, "q_m10_side_tpl_toss_opt1", q.Options[0].OptionID)
	assert.Equal(t, "Mumbai Indians", q.Options[0].Label)
	assert.Equal(t, "MI", q.Options[0].ReferenceID)
	assert.Equal(t, "CSK", q.Options[1].ReferenceID)
}

func TestApplySideBets_OverridePoints(t *testing.T) {
	out := ApplySideBets(testMatch("m10"), testTemplates(), 1, map[string]int{"tpl_toss": 350}, []string{"tpl_toss"})
	require.Len(t, out, 1)
	assert.Equal(t, 350, out[0].Points)
}

func TestApplySideBets_EarlyMatchExactlyOne(t *testing.T) {
	// Jogo de abertura: exatamente 1 side bet com pontuação fixa,
	// independente do count da config
	for _, count := range []int{0, 1, 2, 5} {
		out := ApplySideBets(testMatch("m02"), testTemplates(), count, map[string]int{"tpl_toss": 9999}, nil)

		require.Len(t, out, 1, "count=%d", count)
		assert.Equal(t, 500, out[0].Points)
		assert.Equal(t, 0, out[0].PointsWrong)
	}
}

func TestApplySideBets_ZeroCount(t *testing.T) {
	assert.Empty(t, ApplySideBets(testMatch("m10"), testTemplates(), 0, nil, nil))
}

func TestApplySideBets_UnknownTemplateIgnored(t *testing.T) {
	out := ApplySideBets(testMatch("m10"), testTemplates(), 2, nil, []string{"tpl_inexistente", "tpl_six"})
	require.Len(t, out, 1)
	assert.Equal(t, "q_m10_side_tpl_six", out[0].QuestionID)
	assert.Equal(t, -50, out[0].PointsWrong)
}

func TestIsEarlyMatch(t *testing.T) {
	assert.True(t, IsEarlyMatch("m01"))
	assert.True(t, IsEarlyMatch("m02"))
	assert.True(t, IsEarlyMatch("m03"))
	assert.False(t, IsEarlyMatch("m04"))
}
