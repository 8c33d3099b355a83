package events

import "time"

// Evento publicado quando os resultados de longo prazo de um evento
// (campeão, artilheiro etc.) são fechados pelo admin.
type LongTermResultsFinalized struct {
	EventID     string            `json:"event_id"`
	Answers     map[string]string `json:"answers"` // questionId -> optionId
	FinalizedAt time.Time         `json:"finalized_at"`
}

// Evento emitido pelo scoring-worker após pontuar uma submissão de longo prazo.
type LongTermScored struct {
	EventID string    `json:"eventId"`
	UserID  string    `json:"userId"`
	Points  int       `json:"points"`
	Ts      time.Time `json:"ts"`
}
