package dto

import (
	"time"

	"github.com/radieske/cricket-bet-platform/internal/longterm"
)

type SubmitBetResponse struct {
	BetID    string `json:"betId"`
	Status   string `json:"status"` // ACCEPTED
	Resubmit bool   `json:"resubmit"`
}

type SubmitLongTermResponse struct {
	Success        bool      `json:"success"`
	SubmittedAt    time.Time `json:"submittedAt"`
	IsLocked       bool      `json:"isLocked"`
	EditCount      int       `json:"editCount"`
	PointsDeducted int       `json:"pointsDeducted"`
}

type LongTermStateResponse struct {
	EventID     string               `json:"eventId"`
	IsLocked    bool                 `json:"isLocked"`
	IsReopened  bool                 `json:"isReopened"`
	CanEdit     bool                 `json:"canEdit"`
	Submission  *longterm.Submission `json:"submission,omitempty"`
}

type LedgerResponse struct {
	UserID       string                 `json:"userId"`
	Balance      int                    `json:"balance"`
	Transactions []longterm.Transaction `json:"transactions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
