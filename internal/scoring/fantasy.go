package scoring

import "math"

// PlayerMatchStat é a linha de box score de um jogador em um jogo.
// Exatamente uma por (matchId, playerId); imutável depois do jogo pontuado.
type PlayerMatchStat struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`

	// Batting
	Runs       int `json:"runs"`
	BallsFaced int `json:"ballsFaced"`
	Fours      int `json:"fours"`
	Sixes      int `json:"sixes"`

	// Bowling
	Wickets      int     `json:"wickets"`
	OversBowled  float64 `json:"oversBowled"`
	RunsConceded int     `json:"runsConceded"`

	// Fielding
	Catches   int `json:"catches"`
	RunOuts   int `json:"runOuts"`
	Stumpings int `json:"stumpings"`

	// Bônus fixos
	Century        bool `json:"century"`
	FiveWicketHaul bool `json:"fiveWicketHaul"`
	HatTrick       bool `json:"hatTrick"`
	ManOfMatch     bool `json:"manOfMatch"`
}

const (
	pointsPerFour     = 10
	pointsPerSix      = 20
	pointsPerWicket   = 20
	pointsPerFielding = 5
	flatBonus         = 200
)

// ComputeFantasyPoints converte o box score de um jogador em pontos fantasy.
// Determinística e sem efeitos colaterais; stat ausente é zero no caller.
func ComputeFantasyPoints(st PlayerMatchStat) int {
	pts := 0

	// Batting: runs pontuam 1:1, boundaries e strike rate bonificam
	pts += st.Runs
	pts += st.Fours * pointsPerFour
	pts += st.Sixes * pointsPerSix
	if st.BallsFaced > 0 {
		pts += int(math.Round(100 * float64(st.Runs) / float64(st.BallsFaced)))
	}

	// Bowling: wickets + bônus de economia a partir de 1 over completo
	pts += st.Wickets * pointsPerWicket
	if st.OversBowled >= 1 {
		economy := float64(st.RunsConceded) / st.OversBowled
		switch {
		case economy <= 6:
			pts += 100
		case economy <= 8:
			pts += 50
		case economy <= 10:
			pts += 25
		}
	}

	// Fielding
	pts += (st.Catches + st.RunOuts + st.Stumpings) * pointsPerFielding

	// Bônus fixos
	if st.Century {
		pts += flatBonus
	}
	if st.FiveWicketHaul {
		pts += flatBonus
	}
	if st.HatTrick {
		pts += flatBonus
	}
	if st.ManOfMatch {
		pts += flatBonus
	}

	return pts
}
