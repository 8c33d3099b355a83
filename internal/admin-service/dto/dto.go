package dto

// StatRequest é a entrada de box score de um jogador pelo admin
type StatRequest struct {
	Runs       int `json:"runs"`
	BallsFaced int `json:"ballsFaced"`
	Fours      int `json:"fours"`
	Sixes      int `json:"sixes"`

	Wickets      int     `json:"wickets"`
	OversBowled  float64 `json:"oversBowled"`
	RunsConceded int     `json:"runsConceded"`

	Catches   int `json:"catches"`
	RunOuts   int `json:"runOuts"`
	Stumpings int `json:"stumpings"`

	Century        bool `json:"century"`
	FiveWicketHaul bool `json:"fiveWicketHaul"`
	HatTrick       bool `json:"hatTrick"`
}

// ResultsRequest fecha os resultados oficiais de um jogo
type ResultsRequest struct {
	Winner             string            `json:"winner"` // código do time, SUPER_OVER, TIE ou NO_RESULT
	TotalRuns          int               `json:"totalRuns"`
	SideBetAnswers     map[string]string `json:"sideBetAnswers,omitempty"`
	ManOfMatchPlayerID string            `json:"manOfMatchPlayerId,omitempty"`
	RunnerPool         int               `json:"runnerPool,omitempty"`
}

// LongTermResultsRequest fecha o gabarito das perguntas de longo prazo
type LongTermResultsRequest struct {
	Answers map[string]string `json:"answers"`
}

type GenerateResponse struct {
	MatchID       string `json:"matchId"`
	StandardCount int    `json:"standardCount"`
	SideCount     int    `json:"sideCount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
