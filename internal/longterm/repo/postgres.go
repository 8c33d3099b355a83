package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/cricket-bet-platform/internal/longterm"
)

// Postgres implementa longterm.Store sobre o banco.
// A checagem de saldo e o débito acontecem na mesma transação, com
// SELECT ... FOR UPDATE na linha do ledger: duas edições pagas
// concorrentes do mesmo usuário serializam em vez de passarem as duas.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) GetSubmission(ctx context.Context, eventID, userID string) (*longterm.Submission, error) {
	var (
		sub     longterm.Submission
		rawAns  []byte
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT event_id, user_id, answers, submitted_at, original_submitted_at, is_locked, edit_count, score
		FROM longterm_submissions
		WHERE event_id=$1 AND user_id=$2`, eventID, userID,
	).Scan(&sub.EventID, &sub.UserID, &rawAns, &sub.SubmittedAt, &sub.OriginalSubmittedAt, &sub.IsLocked, &sub.EditCount, &sub.Score)
	if err == sql.ErrNoRows {
		return nil, longterm.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rawAns, &sub.Answers); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (p *Postgres) SaveSubmission(ctx context.Context, sub *longterm.Submission) error {
	rawAns, err := json.Marshal(sub.Answers)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO longterm_submissions
		  (event_id, user_id, answers, submitted_at, original_submitted_at, is_locked, edit_count, score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
		  answers      = EXCLUDED.answers,
		  submitted_at = EXCLUDED.submitted_at,
		  is_locked    = EXCLUDED.is_locked,
		  edit_count   = EXCLUDED.edit_count`,
		sub.EventID, sub.UserID, rawAns, sub.SubmittedAt, sub.OriginalSubmittedAt, sub.IsLocked, sub.EditCount, sub.Score,
	)
	return err
}

// SubmitPaid aplica débito + auditoria + submissão em uma transação só.
// Em saldo insuficiente nada é gravado.
func (p *Postgres) SubmitPaid(ctx context.Context, sub *longterm.Submission, cost int, audit longterm.AuditEntry) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, sub.UserID)
	if err != nil {
		return 0, err
	}

	if balance < cost {
		return balance, longterm.ErrInsufficientPoints
	}

	newBalance := balance - cost
	if _, err = tx.ExecContext(ctx,
		`UPDATE points_ledger SET balance=$1, version = version + 1 WHERE user_id=$2`,
		newBalance, sub.UserID); err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO points_transactions (id, user_id, ts, type, amount, reason, balance_after)
		VALUES ($1,$2,$3,'DEDUCT',$4,$5,$6)`,
		uuid.NewString(), sub.UserID, audit.Ts, cost, audit.Action, newBalance); err != nil {
		return 0, err
	}

	details, err := json.Marshal(audit.Details)
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO audit_log (id, user_id, ts, action, cost, details)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		audit.ID, audit.UserID, audit.Ts, audit.Action, audit.Cost, details); err != nil {
		return 0, err
	}

	rawAns, err := json.Marshal(sub.Answers)
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO longterm_submissions
		  (event_id, user_id, answers, submitted_at, original_submitted_at, is_locked, edit_count, score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
		  answers      = EXCLUDED.answers,
		  submitted_at = EXCLUDED.submitted_at,
		  is_locked    = EXCLUDED.is_locked,
		  edit_count   = EXCLUDED.edit_count`,
		sub.EventID, sub.UserID, rawAns, sub.SubmittedAt, sub.OriginalSubmittedAt, sub.IsLocked, sub.EditCount, sub.Score); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (p *Postgres) Balance(ctx context.Context, userID string) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

func (p *Postgres) Credit(ctx context.Context, userID string, amount int, reason string) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := balance + amount
	if _, err = tx.ExecContext(ctx,
		`UPDATE points_ledger SET balance=$1, version = version + 1 WHERE user_id=$2`,
		newBalance, userID); err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO points_transactions (id, user_id, ts, type, amount, reason, balance_after)
		VALUES ($1,$2,$3,'ADD',$4,$5,$6)`,
		uuid.NewString(), userID, time.Now(), amount, reason, newBalance); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// lockBalance lê o saldo segurando o lock da linha, criando o ledger
// com o saldo inicial quando o usuário ainda não existe
func lockBalance(ctx context.Context, tx *sql.Tx, userID string) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx,
		`SELECT balance FROM points_ledger WHERE user_id=$1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO points_ledger (user_id, balance, version) VALUES ($1,$2,1)`,
			userID, longterm.StartingBalance); err != nil {
			return 0, err
		}
		return longterm.StartingBalance, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (p *Postgres) Transactions(ctx context.Context, userID string) ([]longterm.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, ts, type, amount, reason, balance_after
		FROM points_transactions
		WHERE user_id=$1
		ORDER BY ts`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []longterm.Transaction
	for rows.Next() {
		var t longterm.Transaction
		if err := rows.Scan(&t.ID, &t.Ts, &t.Type, &t.Amount, &t.Reason, &t.BalanceAfter); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *Postgres) AuditTrail(ctx context.Context, userID string) ([]longterm.AuditEntry, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, ts, action, cost, details
		FROM audit_log
		WHERE user_id=$1
		ORDER BY ts`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []longterm.AuditEntry
	for rows.Next() {
		var (
			e   longterm.AuditEntry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Ts, &e.Action, &e.Cost, &raw); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
