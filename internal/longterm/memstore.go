package longterm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore é a implementação em memória do Store. O mutex serializa
// checagem de saldo e débito, evitando que duas edições pagas
// concorrentes passem pela checagem com leitura velha.
type MemStore struct {
	mu          sync.Mutex
	submissions map[string]*Submission // eventID|userID
	balances    map[string]int
	txs         map[string][]Transaction
	audit       map[string][]AuditEntry
}

func NewMemStore() *MemStore {
	s := &MemStore{}
	s.reset()
	return s
}

func (s *MemStore) reset() {
	s.submissions = make(map[string]*Submission)
	s.balances = make(map[string]int)
	s.txs = make(map[string][]Transaction)
	s.audit = make(map[string][]AuditEntry)
}

// Reset limpa todo o estado. Suporte de teste apenas.
func (s *MemStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func subKey(eventID, userID string) string { return eventID + "|" + userID }

func (s *MemStore) GetSubmission(_ context.Context, eventID, userID string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[subKey(eventID, userID)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *MemStore) SaveSubmission(_ context.Context, sub *Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sub
	s.submissions[subKey(sub.EventID, sub.UserID)] = &cp
	return nil
}

// SubmitPaid debita, audita e grava a submissão sob o mesmo lock.
// Saldo insuficiente rejeita antes de qualquer mutação.
func (s *MemStore) SubmitPaid(_ context.Context, sub *Submission, cost int, audit AuditEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balanceLocked(sub.UserID)
	if balance < cost {
		return balance, ErrInsufficientPoints
	}

	newBalance := balance - cost
	s.balances[sub.UserID] = newBalance
	s.txs[sub.UserID] = append(s.txs[sub.UserID], Transaction{
		ID:           uuid.NewString(),
		Ts:           audit.Ts,
		Type:         TxDeduct,
		Amount:       cost,
		Reason:       audit.Action,
		BalanceAfter: newBalance,
	})
	s.audit[sub.UserID] = append(s.audit[sub.UserID], audit)

	cp := *sub
	s.submissions[subKey(sub.EventID, sub.UserID)] = &cp
	return newBalance, nil
}

func (s *MemStore) Balance(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(userID), nil
}

func (s *MemStore) balanceLocked(userID string) int {
	if b, ok := s.balances[userID]; ok {
		return b
	}
	s.balances[userID] = StartingBalance
	return StartingBalance
}

func (s *MemStore) Credit(_ context.Context, userID string, amount int, reason string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newBalance := s.balanceLocked(userID) + amount
	s.balances[userID] = newBalance
	s.txs[userID] = append(s.txs[userID], Transaction{
		ID:           uuid.NewString(),
		Ts:           time.Now(),
		Type:         TxAdd,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: newBalance,
	})
	return newBalance, nil
}

func (s *MemStore) Transactions(_ context.Context, userID string) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transaction(nil), s.txs[userID]...), nil
}

func (s *MemStore) AuditTrail(_ context.Context, userID string) ([]AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AuditEntry(nil), s.audit[userID]...), nil
}
