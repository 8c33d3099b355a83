package topics

const (
	// Resultados oficiais
	ResultsFinalized         = "results_finalized"
	LongTermResultsFinalized = "longterm_results_finalized"

	// Bets
	BetSubmitted   = "bet_submitted"
	BetScored      = "bet_scored"
	LongTermScored = "longterm_scored"

	// DLQs
	ResultsFinalizedDLQ         = "results_finalized_dlq"
	LongTermResultsFinalizedDLQ = "longterm_results_finalized_dlq"
)
