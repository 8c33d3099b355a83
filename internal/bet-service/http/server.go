package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/cricket-bet-platform/internal/bet-service/dto"
	"github.com/radieske/cricket-bet-platform/internal/bet-service/repo"
	"github.com/radieske/cricket-bet-platform/internal/bets"
	"github.com/radieske/cricket-bet-platform/internal/fixtures"
	"github.com/radieske/cricket-bet-platform/internal/longterm"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

type Server struct {
	log      *zap.Logger
	repo     *repo.Postgres
	matches  *fixtures.Library
	ledger   *longterm.Ledger
	ltStore  longterm.Store
	publ     interface {
		PublishBetSubmitted(context.Context, events.BetSubmitted) error
	}
}

func NewServer(log *zap.Logger, r *repo.Postgres, matches *fixtures.Library, ledger *longterm.Ledger, ltStore longterm.Store, p interface {
	PublishBetSubmitted(context.Context, events.BetSubmitted) error
}) *Server {
	return &Server{log: log, repo: r, matches: matches, ledger: ledger, ltStore: ltStore, publ: p}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/bets", s.submitBet)
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/longterm/submissions", s.submitLongTerm)
	r.Get("/v1/longterm/submissions/{userId}", s.getLongTerm)
	r.Get("/v1/ledger/{userId}", s.getLedger)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// submitBet grava (upsert) a aposta do usuário para um jogo ainda aberto
func (s *Server) submitBet(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.UserID == "" || req.MatchID == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "userId and matchId required"})
		return
	}

	m, ok := s.matches.Match(req.MatchID)
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "match not found"})
		return
	}
	if m.IsLocked(time.Now()) {
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "SUBMISSIONS_LOCKED"})
		return
	}

	b := &bets.Bet{
		BetID:          bets.ID(req.UserID, req.MatchID),
		UserID:         req.UserID,
		MatchID:        req.MatchID,
		Answers:        req.Answers,
		PlayerPicks:    req.PlayerPicks,
		SideBetAnswers: req.SideBetAnswers,
		RunnerPicks:    req.RunnerPicks,
	}
	if b.Answers == nil {
		b.Answers = map[string]string{}
	}
	if b.SideBetAnswers == nil {
		b.SideBetAnswers = map[string]string{}
	}

	resubmit, err := s.repo.Upsert(r.Context(), b)
	if err != nil {
		s.log.Error("bet upsert", zap.String("betId", b.BetID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "persist failed"})
		return
	}

	_ = s.publ.PublishBetSubmitted(r.Context(), events.BetSubmitted{
		BetID:    b.BetID,
		UserID:   b.UserID,
		MatchID:  b.MatchID,
		Resubmit: resubmit,
	})

	writeJSON(w, http.StatusOK, dto.SubmitBetResponse{
		BetID:    b.BetID,
		Status:   "ACCEPTED",
		Resubmit: resubmit,
	})
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := s.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// submitLongTerm delega ao engine de longo prazo; as falhas nomeadas
// viram status + reason para a UI renderizar mensagem precisa
func (s *Server) submitLongTerm(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitLongTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "userId required"})
		return
	}

	res, err := s.ledger.Submit(r.Context(), req.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, longterm.ErrEmptySubmission):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: longterm.ErrEmptySubmission.Error()})
		case errors.Is(err, longterm.ErrSubmissionsLocked):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: longterm.ErrSubmissionsLocked.Error()})
		case errors.Is(err, longterm.ErrInsufficientPoints):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: longterm.ErrInsufficientPoints.Error()})
		default:
			s.log.Error("longterm submit", zap.String("userId", req.UserID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "submit failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SubmitLongTermResponse{
		Success:        res.Success,
		SubmittedAt:    res.SubmittedAt,
		IsLocked:       res.IsLocked,
		EditCount:      res.EditCount,
		PointsDeducted: res.PointsDeducted,
	})
}

func (s *Server) getLongTerm(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	resp := dto.LongTermStateResponse{
		EventID:    s.ledger.Config().EventID,
		IsLocked:   s.ledger.IsLocked(),
		IsReopened: s.ledger.IsReopenedForEdits(),
		CanEdit:    s.ledger.CanEdit(),
	}

	sub, err := s.ltStore.GetSubmission(r.Context(), s.ledger.Config().EventID, userID)
	if err != nil && !errors.Is(err, longterm.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp.Submission = sub

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getLedger(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	balance, err := s.ltStore.Balance(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	txs, err := s.ltStore.Transactions(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerResponse{
		UserID:       userID,
		Balance:      balance,
		Transactions: txs,
	})
}
