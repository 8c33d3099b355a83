package events

import "time"

// Evento publicado no tópico "results_finalized" quando o admin fecha um jogo.
// Winner carrega o código do time vencedor ou um desfecho especial
// ("SUPER_OVER", "TIE", "NO_RESULT").
type ResultsFinalized struct {
	MatchID            string            `json:"match_id"`
	Winner             string            `json:"winner"`
	TotalRuns          int               `json:"total_runs"`
	SideBetAnswers     map[string]string `json:"side_bet_answers,omitempty"` // questionId -> optionId
	ManOfMatchPlayerID string            `json:"man_of_match_player_id,omitempty"`
	RunnerPool         int               `json:"runner_pool,omitempty"` // pool agregado externamente
	FinalizedAt        time.Time         `json:"finalized_at"`
	Version            int               `json:"version"` // incrementado a cada refinalização
}
