package dto

import "github.com/radieske/cricket-bet-platform/internal/bets"

type SubmitBetRequest struct {
	UserID         string            `json:"userId"`
	MatchID        string            `json:"matchId"`
	Answers        map[string]string `json:"answers"`
	PlayerPicks    []bets.PlayerPick `json:"playerPicks,omitempty"`
	SideBetAnswers map[string]string `json:"sideBetAnswers,omitempty"`
	RunnerPicks    []string          `json:"runnerPicks,omitempty"`
}

type SubmitLongTermRequest struct {
	UserID  string            `json:"userId"`
	Answers map[string]string `json:"answers"`
}
