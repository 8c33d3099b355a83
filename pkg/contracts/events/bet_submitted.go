package events

type BetSubmitted struct {
	BetID    string `json:"bet_id"`
	UserID   string `json:"user_id"`
	MatchID  string `json:"match_id"`
	Resubmit bool   `json:"resubmit"` // true quando sobrescreveu uma aposta anterior
	TsUnixMs int64  `json:"ts_unix_ms"`
}
