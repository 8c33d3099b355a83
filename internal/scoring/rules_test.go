package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radieske/cricket-bet-platform/internal/bets"
	"github.com/radieske/cricket-bet-platform/internal/questions"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

func winnerQ() questions.Question {
	return questions.Question{
		QuestionID:  "q_m10_winner",
		MatchID:     "m10",
		Kind:        questions.KindWinner,
		Points:      1000,
		PointsWrong: 0,
		Options: []questions.Option{
			{OptionID: "opt_m10_MI", ReferenceType: questions.RefTeam, ReferenceID: "MI"},
			{OptionID: "opt_m10_CSK", ReferenceType: questions.RefTeam, ReferenceID: "CSK"},
			{OptionID: "opt_m10_super_over", ReferenceType: questions.RefNone, ReferenceID: "SUPER_OVER", Weight: 5},
		},
	}
}

func TestScoreWinner(t *testing.T) {
	q := winnerQ()

	r := ScoreWinner(q, "opt_m10_MI", "MI")
	assert.True(t, r.Correct)
	assert.Equal(t, 1000, r.Points)

	r = ScoreWinner(q, "opt_m10_MI", "CSK")
	assert.False(t, r.Correct)
	assert.Equal(t, 0, r.Points)
}

func TestScoreWinner_SuperOverWeight(t *testing.T) {
	// Super Over acertado paga o peso 5x da opção
	r := ScoreWinner(winnerQ(), "opt_m10_super_over", "SUPER_OVER")
	assert.True(t, r.Correct)
	assert.Equal(t, 5000, r.Points)
}

func TestScoreWinner_Unanswered(t *testing.T) {
	r := ScoreWinner(winnerQ(), "", "MI")
	assert.False(t, r.Correct)
	assert.Equal(t, 0, r.Points)
}

func TestScoreWinner_UnknownOption(t *testing.T) {
	q := winnerQ()
	q.PointsWrong = -100
	r := ScoreWinner(q, "opt_inexistente", "MI")
	assert.False(t, r.Correct)
	assert.Equal(t, -100, r.Points)
}

func TestScoreTotalRuns_Bands(t *testing.T) {
	q := questions.Question{Kind: questions.KindTotalRuns, Points: 1000}
	actual := 295

	cases := []struct {
		guess string
		want  int
	}{
		{"295", 5000},
		{"294", 1000},
		{"296", 1000},
		{"292", 500},
		{"298", 500},
		{"288", 250},
		{"302", 250},
		{"283", 100},
		{"307", 100},
		{"275", 0},
		{"320", 0},
	}
	for _, tc := range cases {
		t.Run(tc.guess, func(t *testing.T) {
			r := ScoreTotalRuns(q, tc.guess, actual)
			assert.Equal(t, tc.want, r.Points)
			assert.Equal(t, tc.guess == "295", r.Correct)
		})
	}
}

func TestScoreTotalRuns_InvalidGuess(t *testing.T) {
	q := questions.Question{Kind: questions.KindTotalRuns, Points: 1000}
	r := ScoreTotalRuns(q, "abc", 295)
	assert.Equal(t, 0, r.Points)
	assert.False(t, r.Correct)
}

func TestScoreTotalRuns_NeverIncreasesWithDistance(t *testing.T) {
	q := questions.Question{Kind: questions.KindTotalRuns, Points: 1000}
	prev := ScoreTotalRuns(q, "200", 200).Points
	for d := 1; d <= 25; d++ {
		pts := ScoreTotalRuns(q, "200", 200+d).Points
		assert.LessOrEqual(t, pts, prev, "distance %d", d)
		prev = pts
	}
}

func TestScorePlayerPick(t *testing.T) {
	q := questions.Question{
		Kind: questions.KindPlayerPick,
		Slot: &questions.Slot{Index: 0, Multiplier: 2},
	}
	stats := map[string]PlayerMatchStat{
		"p_rohit": {Runs: 50, BallsFaced: 40, Fours: 4, Sixes: 2}, // 255 base
	}

	r := ScorePlayerPick(q, "p_rohit", stats)
	assert.True(t, r.Correct)
	assert.Equal(t, 510, r.Points)
}

func TestScorePlayerPick_MissingStat(t *testing.T) {
	// Jogador sem stat no jogo vale 0, nunca erro
	q := questions.Question{Kind: questions.KindPlayerPick, Slot: &questions.Slot{Index: 0, Multiplier: 2}}
	r := ScorePlayerPick(q, "p_fantasma", map[string]PlayerMatchStat{})
	assert.False(t, r.Correct)
	assert.Equal(t, 0, r.Points)
}

func TestScoreSideBet(t *testing.T) {
	q := questions.Question{Kind: questions.KindSideBet, Points: 200, PointsWrong: -50}

	r := ScoreSideBet(q, "opt1", "opt1")
	assert.True(t, r.Correct)
	assert.Equal(t, 200, r.Points)

	r = ScoreSideBet(q, "opt2", "opt1")
	assert.False(t, r.Correct)
	assert.Equal(t, -50, r.Points)

	// Sem resposta ou sem gabarito vale 0
	assert.Equal(t, 0, ScoreSideBet(q, "", "opt1").Points)
	assert.Equal(t, 0, ScoreSideBet(q, "opt1", "").Points)
}

func TestRunnerPoints(t *testing.T) {
	assert.Equal(t, 100, RunnerPoints(1000, 10))
	assert.Equal(t, 0, RunnerPoints(0, 10))
	assert.Equal(t, 33, RunnerPoints(333, 10))
}

func TestScoreBet_Totals(t *testing.T) {
	pack := []questions.Question{
		winnerQ(),
		{QuestionID: "q_m10_runs", Kind: questions.KindTotalRuns, Points: 1000},
		{QuestionID: "q_m10_pick1", Kind: questions.KindPlayerPick, Slot: &questions.Slot{Index: 0, Multiplier: 2}},
		{QuestionID: "q_m10_side_tpl_toss", Kind: questions.KindSideBet, Points: 200},
		{QuestionID: "q_m10_runner", Kind: questions.KindRunnerPick, RunnerConfig: &questions.RunnerConfig{MaxRunners: 3, Percent: 10}},
	}
	b := &bets.Bet{
		BetID:   "bet_u1_m10",
		UserID:  "u1",
		MatchID: "m10",
		Answers: map[string]string{
			"q_m10_winner": "opt_m10_MI",
			"q_m10_runs":   "296",
		},
		PlayerPicks:    []bets.PlayerPick{{Slot: 0, PlayerID: "p_rohit"}},
		SideBetAnswers: map[string]string{"q_m10_side_tpl_toss": "optA"},
		RunnerPicks:    []string{"p_bumrah"},
	}
	res := events.ResultsFinalized{
		MatchID:        "m10",
		Winner:         "MI",
		TotalRuns:      295,
		SideBetAnswers: map[string]string{"q_m10_side_tpl_toss": "optA"},
		RunnerPool:     1000,
	}
	stats := map[string]PlayerMatchStat{
		"p_rohit": {Runs: 50, BallsFaced: 40, Fours: 4, Sixes: 2},
	}

	bd := ScoreBet(pack, b, res, stats)

	assert.Equal(t, 1000, bd.WinnerPoints)
	assert.Equal(t, 1000, bd.TotalRunsPoints)
	assert.Equal(t, 510, bd.PlayerPickPoints)
	assert.Equal(t, 200, bd.SideBetPoints)
	assert.Equal(t, 100, bd.RunnerPoints)
	assert.Equal(t, 2810, bd.Score)
}

func TestScoreBet_SkipsDisabled(t *testing.T) {
	q := winnerQ()
	q.Disabled = true
	b := &bets.Bet{Answers: map[string]string{"q_m10_winner": "opt_m10_MI"}}
	bd := ScoreBet([]questions.Question{q}, b, events.ResultsFinalized{Winner: "MI"}, nil)
	assert.Equal(t, 0, bd.Score)
}
