package events

import "time"

// Evento emitido pelo scoring-worker após pontuar uma aposta.
type BetScored struct {
	BetID            string    `json:"betId"`
	UserID           string    `json:"userId"`
	MatchID          string    `json:"matchId"`
	Score            int       `json:"score"`
	WinnerPoints     int       `json:"winnerPoints"`
	TotalRunsPoints  int       `json:"totalRunsPoints"`
	PlayerPickPoints int       `json:"playerPickPoints"`
	SideBetPoints    int       `json:"sideBetPoints"`
	RunnerPoints     int       `json:"runnerPoints"`
	Ts               time.Time `json:"ts"`
}
