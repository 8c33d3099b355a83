package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFantasyPoints_Batting(t *testing.T) {
	// 50 runs, 40 bolas, 4 quatros, 2 seis:
	// 50 + 40 + 40 + round(100*50/40) = 255
	st := PlayerMatchStat{Runs: 50, BallsFaced: 40, Fours: 4, Sixes: 2}
	assert.Equal(t, 255, ComputeFantasyPoints(st))
}

func TestComputeFantasyPoints_ZeroStat(t *testing.T) {
	assert.Equal(t, 0, ComputeFantasyPoints(PlayerMatchStat{}))
}

func TestComputeFantasyPoints_NoStrikeRateWithoutBalls(t *testing.T) {
	// Sem bolas enfrentadas não existe bônus de strike rate
	st := PlayerMatchStat{Runs: 10}
	assert.Equal(t, 10, ComputeFantasyPoints(st))
}

func TestComputeFantasyPoints_EconomyTiers(t *testing.T) {
	cases := []struct {
		name     string
		conceded int
		want     int
	}{
		{"economy 6", 24, 3*20 + 100},
		{"economy 8", 32, 3*20 + 50},
		{"economy 10", 40, 3*20 + 25},
		{"economy above 10", 41, 3 * 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := PlayerMatchStat{Wickets: 3, OversBowled: 4, RunsConceded: tc.conceded}
			assert.Equal(t, tc.want, ComputeFantasyPoints(st))
		})
	}
}

func TestComputeFantasyPoints_NoEconomyUnderOneOver(t *testing.T) {
	// Menos de 1 over completo não habilita o bônus de economia
	st := PlayerMatchStat{Wickets: 1, OversBowled: 0.5, RunsConceded: 0}
	assert.Equal(t, 20, ComputeFantasyPoints(st))
}

func TestComputeFantasyPoints_Fielding(t *testing.T) {
	st := PlayerMatchStat{Catches: 2, RunOuts: 1, Stumpings: 1}
	assert.Equal(t, 20, ComputeFantasyPoints(st))
}

func TestComputeFantasyPoints_FlatBonuses(t *testing.T) {
	st := PlayerMatchStat{Century: true, FiveWicketHaul: true, HatTrick: true, ManOfMatch: true}
	assert.Equal(t, 800, ComputeFantasyPoints(st))
}

func TestComputeFantasyPoints_Deterministic(t *testing.T) {
	st := PlayerMatchStat{Runs: 77, BallsFaced: 50, Fours: 6, Sixes: 3, Wickets: 2, OversBowled: 2, RunsConceded: 13, Catches: 1, ManOfMatch: true}
	first := ComputeFantasyPoints(st)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeFantasyPoints(st))
	}
}
