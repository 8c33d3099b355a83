package scoring

import (
	"math"
	"strconv"

	"github.com/radieske/cricket-bet-platform/internal/bets"
	"github.com/radieske/cricket-bet-platform/internal/questions"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

// Result é o desfecho de uma pergunta para uma aposta
type Result struct {
	Points  int
	Correct bool
}

// ScoreWinner compara a opção apostada com o vencedor oficial.
// Acerto vale basePoints * peso da opção (Super Over carrega 5x);
// erro vale pointsWrong. Empate/No Result/Super Over são valores
// de vencedor por si só e precisam casar exatamente.
func ScoreWinner(q questions.Question, selectedOptionID string, winner string) Result {
	if selectedOptionID == "" {
		return Result{}
	}

	opt, ok := q.Option(selectedOptionID)
	if !ok {
		return Result{Points: q.PointsWrong}
	}

	if opt.ReferenceID != winner {
		return Result{Points: q.PointsWrong}
	}

	weight := opt.Weight
	if weight == 0 {
		weight = 1
	}
	return Result{
		Points:  int(math.Round(float64(q.Points) * weight)),
		Correct: true,
	}
}

// Faixas do total de runs: multiplicador por distância do valor real
func totalRunsMultiplier(d int) float64 {
	switch {
	case d == 0:
		return 5
	case d == 1:
		return 1
	case d <= 5:
		return 0.5
	case d <= 10:
		return 0.25
	case d <= 15:
		return 0.1
	default:
		return 0
	}
}

// ScoreTotalRuns pontua o palpite numérico por faixas, nunca negativo
func ScoreTotalRuns(q questions.Question, guess string, actual int) Result {
	g, err := strconv.Atoi(guess)
	if err != nil {
		return Result{}
	}

	d := g - actual
	if d < 0 {
		d = -d
	}

	mult := totalRunsMultiplier(d)
	return Result{
		Points:  int(math.Round(float64(q.Points) * mult)),
		Correct: d == 0,
	}
}

// ScorePlayerPick aplica o multiplicador do slot aos pontos fantasy do
// jogador escolhido. Jogador sem stat no jogo contribui 0, nunca erro.
func ScorePlayerPick(q questions.Question, playerID string, stats map[string]PlayerMatchStat) Result {
	if q.Slot == nil || playerID == "" {
		return Result{}
	}

	st, ok := stats[playerID]
	if !ok {
		return Result{}
	}

	base := ComputeFantasyPoints(st)
	return Result{
		Points:  int(math.Round(float64(base) * q.Slot.Multiplier)),
		Correct: true,
	}
}

// ScoreSideBet: acerto vale os pontos da pergunta; respondeu e errou vale
// pointsWrong (pode ser negativo); sem resposta vale 0 e nunca conta como erro.
func ScoreSideBet(q questions.Question, answer string, correct string) Result {
	if answer == "" || correct == "" {
		return Result{}
	}
	if answer == correct {
		return Result{Points: q.Points, Correct: true}
	}
	return Result{Points: q.PointsWrong}
}

// RunnerPoints é o contrato percentual do runner pick: uma fatia do pool.
// A derivação do pool é agregação externa.
func RunnerPoints(pool int, percent float64) int {
	return int(math.Round(float64(pool) * percent / 100))
}

// Breakdown expõe os totais por categoria para a UI de detalhamento
type Breakdown struct {
	WinnerPoints     int
	TotalRunsPoints  int
	PlayerPickPoints int
	SideBetPoints    int
	RunnerPoints     int
	Score            int
}

// ScoreBet aplica as regras do pacote inteiro sobre uma aposta.
// Sem dependência de ordem entre apostas; pode rodar em paralelo por usuário.
func ScoreBet(pack []questions.Question, b *bets.Bet, res events.ResultsFinalized, stats map[string]PlayerMatchStat) Breakdown {
	var bd Breakdown

	for _, q := range pack {
		if q.Disabled {
			continue
		}

		switch q.Kind {
		case questions.KindWinner:
			r := ScoreWinner(q, b.Answers[q.QuestionID], res.Winner)
			bd.WinnerPoints += r.Points

		case questions.KindTotalRuns:
			r := ScoreTotalRuns(q, b.Answers[q.QuestionID], res.TotalRuns)
			bd.TotalRunsPoints += r.Points

		case questions.KindPlayerPick:
			playerID, _ := b.Pick(slotIndex(q))
			r := ScorePlayerPick(q, playerID, stats)
			bd.PlayerPickPoints += r.Points

		case questions.KindSideBet:
			r := ScoreSideBet(q, b.SideBetAnswers[q.QuestionID], res.SideBetAnswers[q.QuestionID])
			bd.SideBetPoints += r.Points

		case questions.KindRunnerPick:
			if q.RunnerConfig != nil && len(b.RunnerPicks) > 0 {
				bd.RunnerPoints += RunnerPoints(res.RunnerPool, q.RunnerConfig.Percent)
			}
		}
	}

	bd.Score = bd.WinnerPoints + bd.TotalRunsPoints + bd.PlayerPickPoints + bd.SideBetPoints + bd.RunnerPoints
	return bd
}

func slotIndex(q questions.Question) int {
	if q.Slot == nil {
		return -1
	}
	return q.Slot.Index
}
