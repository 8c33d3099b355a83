package longterm

import "github.com/radieske/cricket-bet-platform/internal/questions"

// ScoreSubmission pontua as respostas de longo prazo contra o gabarito
// final. Cada pergunta segue a semântica de side bet: acerto vale os
// pontos da pergunta, erro vale pointsWrong, sem resposta vale 0.
func ScoreSubmission(qs []questions.Question, answers map[string]string, final map[string]string) int {
	total := 0
	for _, q := range qs {
		if q.Disabled {
			continue
		}

		answer := answers[q.QuestionID]
		correct := final[q.QuestionID]
		if answer == "" || correct == "" {
			continue
		}

		if answer == correct {
			total += q.Points
		} else {
			total += q.PointsWrong
		}
	}
	return total
}
