package longterm

import (
	"context"
	"errors"
	"time"
)

// Saldo inicial de todo usuário no ledger de pontos
const StartingBalance = 1000

// Falhas nomeadas para o caller renderizar mensagem precisa
var (
	ErrSubmissionsLocked  = errors.New("SUBMISSIONS_LOCKED")
	ErrEmptySubmission    = errors.New("EMPTY_SUBMISSION")
	ErrInsufficientPoints = errors.New("INSUFFICIENT_POINTS")
	ErrNotFound           = errors.New("not found")
)

type TxType string

const (
	TxAdd    TxType = "ADD"
	TxDeduct TxType = "DEDUCT"
)

// Transaction é uma linha imutável do extrato de pontos
type Transaction struct {
	ID           string    `json:"id"`
	Ts           time.Time `json:"ts"`
	Type         TxType    `json:"type"`
	Amount       int       `json:"amount"`
	Reason       string    `json:"reason"`
	BalanceAfter int       `json:"balanceAfter"`
}

// AuditEntry é uma linha de auditoria append-only; nunca mutada nem removida
type AuditEntry struct {
	ID      string         `json:"id"`
	UserID  string         `json:"userId"`
	Ts      time.Time      `json:"ts"`
	Action  string         `json:"action"`
	Cost    int            `json:"cost"`
	Details map[string]any `json:"details,omitempty"`
}

// Submission é a previsão de longo prazo de um usuário para um evento
type Submission struct {
	EventID             string            `json:"eventId"`
	UserID              string            `json:"userId"`
	Answers             map[string]string `json:"answers"`
	SubmittedAt         time.Time         `json:"submittedAt"`
	OriginalSubmittedAt time.Time         `json:"originalSubmittedAt"`
	IsLocked            bool              `json:"isLocked"`
	EditCount           int               `json:"editCount"`
	Score               int               `json:"score"`
}

// Store persiste submissões, saldo e trilha de auditoria.
// SubmitPaid aplica débito + auditoria + atualização da submissão como
// unidade atômica: em falha (saldo insuficiente) nada é gravado.
type Store interface {
	GetSubmission(ctx context.Context, eventID, userID string) (*Submission, error)
	SaveSubmission(ctx context.Context, sub *Submission) error
	SubmitPaid(ctx context.Context, sub *Submission, cost int, audit AuditEntry) (newBalance int, err error)

	Balance(ctx context.Context, userID string) (int, error)
	Credit(ctx context.Context, userID string, amount int, reason string) (newBalance int, err error)
	Transactions(ctx context.Context, userID string) ([]Transaction, error)
	AuditTrail(ctx context.Context, userID string) ([]AuditEntry, error)
}
