package longterm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ledger implementa o ciclo de vida das previsões de longo prazo:
// OPEN -> LOCKED -> (reopen pago) -> LOCKED após cada save pago.
type Ledger struct {
	cfg   Config
	store Store
	now   func() time.Time
}

// NewLedger monta o engine; now == nil usa o relógio do sistema
func NewLedger(cfg Config, store Store, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{cfg: cfg, store: store, now: now}
}

func (l *Ledger) Config() Config { return l.cfg }

// IsLocked indica se o horário de trava já passou
func (l *Ledger) IsLocked() bool {
	return !l.now().Before(l.cfg.LongTermLockAt)
}

// IsReopenedForEdits indica se a janela paga de edição está aberta
func (l *Ledger) IsReopenedForEdits() bool {
	return l.IsLocked() && l.cfg.ReopenEnabled
}

// CanEdit indica se submissões são aceitas neste instante
func (l *Ledger) CanEdit() bool {
	return !l.IsLocked() || l.IsReopenedForEdits()
}

// SubmitResult devolve o estado pós-submissão para o caller
type SubmitResult struct {
	Success        bool      `json:"success"`
	SubmittedAt    time.Time `json:"submittedAt"`
	IsLocked       bool      `json:"isLocked"`
	EditCount      int       `json:"editCount"`
	PointsDeducted int       `json:"pointsDeducted"`
}

// Submit grava (ou regrava) as respostas de longo prazo de um usuário.
// Durante a janela reaberta, editar uma submissão existente custa
// cfg.ReopenCostPoints: o débito, a auditoria e a atualização são
// aplicados juntos ou nada é aplicado.
func (l *Ledger) Submit(ctx context.Context, userID string, answers map[string]string) (SubmitResult, error) {
	if !l.CanEdit() {
		return SubmitResult{}, ErrSubmissionsLocked
	}
	if len(answers) == 0 {
		return SubmitResult{}, ErrEmptySubmission
	}

	now := l.now()
	prev, err := l.store.GetSubmission(ctx, l.cfg.EventID, userID)
	if err != nil && err != ErrNotFound {
		return SubmitResult{}, fmt.Errorf("load submission: %w", err)
	}

	sub := &Submission{
		EventID:             l.cfg.EventID,
		UserID:              userID,
		Answers:             answers,
		SubmittedAt:         now,
		OriginalSubmittedAt: now,
		IsLocked:            l.IsLocked() && !l.IsReopenedForEdits(),
	}
	if prev != nil {
		sub.OriginalSubmittedAt = prev.OriginalSubmittedAt
		sub.EditCount = prev.EditCount + 1
	}

	// Edição paga: janela reaberta sobre submissão existente
	if l.IsReopenedForEdits() && prev != nil {
		cost := l.cfg.ReopenCostPoints
		audit := AuditEntry{
			ID:     uuid.NewString(),
			UserID: userID,
			Ts:     now,
			Action: "longterm_paid_edit",
			Cost:   cost,
			Details: map[string]any{
				"eventId":         l.cfg.EventID,
				"previousAnswers": prev.Answers,
				"newAnswers":      answers,
			},
		}

		if _, err := l.store.SubmitPaid(ctx, sub, cost, audit); err != nil {
			return SubmitResult{}, err
		}

		return SubmitResult{
			Success:        true,
			SubmittedAt:    sub.SubmittedAt,
			IsLocked:       sub.IsLocked,
			EditCount:      sub.EditCount,
			PointsDeducted: cost,
		}, nil
	}

	if err := l.store.SaveSubmission(ctx, sub); err != nil {
		return SubmitResult{}, fmt.Errorf("save submission: %w", err)
	}

	return SubmitResult{
		Success:     true,
		SubmittedAt: sub.SubmittedAt,
		IsLocked:    sub.IsLocked,
		EditCount:   sub.EditCount,
	}, nil
}
