package bets

import (
	"fmt"
	"time"
)

// PlayerPick amarra o jogador escolhido ao slot do pacote
type PlayerPick struct {
	Slot     int    `json:"slot"`
	PlayerID string `json:"playerId"`
}

// Bet é a submissão de um usuário para um jogo. O ID determinístico
// garante no máximo uma aposta viva por (usuário, jogo): reenvios
// convergem para a mesma linha em vez de duplicar.
type Bet struct {
	BetID   string `json:"betId"`
	UserID  string `json:"userId"`
	MatchID string `json:"matchId"`

	Answers        map[string]string `json:"answers"` // questionId -> valor
	PlayerPicks    []PlayerPick      `json:"playerPicks,omitempty"`
	SideBetAnswers map[string]string `json:"sideBetAnswers,omitempty"`
	RunnerPicks    []string          `json:"runnerPicks,omitempty"`

	Score            int `json:"score"`
	WinnerPoints     int `json:"winnerPoints"`
	TotalRunsPoints  int `json:"totalRunsPoints"`
	PlayerPickPoints int `json:"playerPickPoints"`
	SideBetPoints    int `json:"sideBetPoints"`
	RunnerPoints     int `json:"runnerPoints"`

	IsLocked  bool      `json:"isLocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ID deriva o identificador determinístico da aposta
func ID(userID, matchID string) string {
	return fmt.Sprintf("bet_%s_%s", userID, matchID)
}

// Pick devolve o jogador escolhido para um slot, se houver
func (b *Bet) Pick(slot int) (string, bool) {
	for _, p := range b.PlayerPicks {
		if p.Slot == slot {
			return p.PlayerID, true
		}
	}
	return "", false
}
