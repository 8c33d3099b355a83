package longterm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lockAt = time.Date(2026, 3, 22, 14, 0, 0, 0, time.UTC)

func testConfig(reopen bool) Config {
	return Config{
		EventID:          "season_2026",
		LongTermLockAt:   lockAt,
		ReopenEnabled:    reopen,
		ReopenCostPoints: 250,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSubmit_BeforeLock(t *testing.T) {
	store := NewMemStore()
	l := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Hour)))

	res, err := l.Submit(context.Background(), "u1", map[string]string{"lt_q1": "a"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.IsLocked)
	assert.Equal(t, 0, res.EditCount)
	assert.Equal(t, 0, res.PointsDeducted)
}

func TestSubmit_ResubmitBeforeLockIsFree(t *testing.T) {
	store := NewMemStore()
	l := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Hour)))
	ctx := context.Background()

	_, err := l.Submit(ctx, "u1", map[string]string{"lt_q1": "a"})
	require.NoError(t, err)

	res, err := l.Submit(ctx, "u1", map[string]string{"lt_q1": "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.EditCount)
	assert.Equal(t, 0, res.PointsDeducted)

	balance, err := store.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StartingBalance, balance)
}

func TestSubmit_LockedWithoutReopen(t *testing.T) {
	store := NewMemStore()
	l := NewLedger(testConfig(false), store, fixedClock(lockAt.Add(time.Hour)))

	_, err := l.Submit(context.Background(), "u1", map[string]string{"lt_q1": "a"})
	assert.ErrorIs(t, err, ErrSubmissionsLocked)
}

func TestSubmit_EmptyAnswers(t *testing.T) {
	store := NewMemStore()
	l := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Hour)))

	_, err := l.Submit(context.Background(), "u1", nil)
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestSubmit_PaidEdit(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	before := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Hour)))
	first, err := before.Submit(ctx, "u1", map[string]string{"lt_q1": "a"})
	require.NoError(t, err)

	// Janela reaberta: editar custa 250 pontos
	after := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(time.Hour)))
	res, err := after.Submit(ctx, "u1", map[string]string{"lt_q1": "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.EditCount)
	assert.Equal(t, 250, res.PointsDeducted)

	balance, err := store.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StartingBalance-250, balance)

	// Débito auditado com antes e depois das respostas
	trail, err := store.AuditTrail(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "longterm_paid_edit", trail[0].Action)
	assert.Equal(t, 250, trail[0].Cost)

	txs, err := store.Transactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, TxDeduct, txs[0].Type)
	assert.Equal(t, StartingBalance-250, txs[0].BalanceAfter)

	// originalSubmittedAt preserva o primeiro envio
	sub, err := store.GetSubmission(ctx, "season_2026", "u1")
	require.NoError(t, err)
	assert.Equal(t, first.SubmittedAt, sub.OriginalSubmittedAt)
	assert.Equal(t, "b", sub.Answers["lt_q1"])
}

func TestSubmit_PaidEditInsufficientPoints(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	before := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Hour)))
	_, err := before.Submit(ctx, "u1", map[string]string{"lt_q1": "a"})
	require.NoError(t, err)

	cfg := testConfig(true)
	cfg.ReopenCostPoints = StartingBalance + 500
	after := NewLedger(cfg, store, fixedClock(lockAt.Add(time.Hour)))

	_, err = after.Submit(ctx, "u1", map[string]string{"lt_q1": "b"})
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Nada muda quando o débito falha
	balance, _ := store.Balance(ctx, "u1")
	assert.Equal(t, StartingBalance, balance)

	trail, _ := store.AuditTrail(ctx, "u1")
	assert.Empty(t, trail)

	sub, err := store.GetSubmission(ctx, "season_2026", "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", sub.Answers["lt_q1"])
}

func TestSubmit_FirstSubmissionDuringReopenIsFree(t *testing.T) {
	store := NewMemStore()
	l := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(time.Hour)))
	ctx := context.Background()

	res, err := l.Submit(ctx, "u_novo", map[string]string{"lt_q1": "a"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.PointsDeducted)

	balance, _ := store.Balance(ctx, "u_novo")
	assert.Equal(t, StartingBalance, balance)
}

func TestLedger_WindowStates(t *testing.T) {
	store := NewMemStore()

	open := NewLedger(testConfig(true), store, fixedClock(lockAt.Add(-time.Minute)))
	assert.False(t, open.IsLocked())
	assert.True(t, open.CanEdit())

	reopened := NewLedger(testConfig(true), store, fixedClock(lockAt))
	assert.True(t, reopened.IsLocked())
	assert.True(t, reopened.IsReopenedForEdits())
	assert.True(t, reopened.CanEdit())

	closed := NewLedger(testConfig(false), store, fixedClock(lockAt))
	assert.True(t, closed.IsLocked())
	assert.False(t, closed.IsReopenedForEdits())
	assert.False(t, closed.CanEdit())
}

func TestMemStore_Credit(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	newBalance, err := store.Credit(ctx, "u1", 300, "longterm scoring season_2026")
	require.NoError(t, err)
	assert.Equal(t, StartingBalance+300, newBalance)

	txs, err := store.Transactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, TxAdd, txs[0].Type)
	assert.Equal(t, 300, txs[0].Amount)
}
