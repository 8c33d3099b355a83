package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/cricket-bet-platform/internal/admin-service/dto"
	"github.com/radieske/cricket-bet-platform/internal/admin-service/repo"
	"github.com/radieske/cricket-bet-platform/internal/fixtures"
	"github.com/radieske/cricket-bet-platform/internal/questions"
	qcache "github.com/radieske/cricket-bet-platform/internal/questions/cache"
	"github.com/radieske/cricket-bet-platform/internal/scoring"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

type publisher interface {
	PublishResultsFinalized(context.Context, events.ResultsFinalized) error
	PublishLongTermResults(context.Context, events.LongTermResultsFinalized) error
}

type resultsStore interface {
	UpsertStat(ctx context.Context, st scoring.PlayerMatchStat) error
	SetManOfMatch(ctx context.Context, matchID, playerID string) error
	UpsertResults(ctx context.Context, matchID, winner string, totalRuns int, sideBetAnswers map[string]string, momPlayerID string, runnerPool int) (int, error)
	LockBetsForMatch(ctx context.Context, matchID string) error
}

// Server é a API de tooling do admin: configuração do pacote de apostas,
// entrada de box scores e fechamento de resultados (gatilho de pontuação)
type Server struct {
	log       *zap.Logger
	matches   *fixtures.Library
	store     *questions.Store
	templates *questions.TemplateLibrary
	pack      *qcache.PackCache
	repo      resultsStore
	publ      publisher
}

func NewServer(log *zap.Logger, matches *fixtures.Library, store *questions.Store, templates *questions.TemplateLibrary, pack *qcache.PackCache, r resultsStore, p publisher) *Server {
	return &Server{log: log, matches: matches, store: store, templates: templates, pack: pack, repo: r, publ: p}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Put("/v1/matches/{id}/config", s.saveConfig)
	r.Post("/v1/matches/{id}/questions/generate", s.generateQuestions)
	r.Get("/v1/matches/{id}/questions", s.getQuestions)
	r.Put("/v1/matches/{id}/stats/{playerId}", s.saveStat)
	r.Put("/v1/matches/{id}/mom/{playerId}", s.setManOfMatch)
	r.Post("/v1/matches/{id}/results", s.finalizeResults)
	r.Post("/v1/longterm/{eventId}/results", s.finalizeLongTerm)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// saveConfig sobrescreve os knobs de geração do jogo (last-write-wins)
func (s *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if _, ok := s.matches.Match(matchID); !ok {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "match not found"})
		return
	}

	var cfg questions.MatchBettingConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	s.store.SaveMatchConfig(matchID, cfg)
	w.WriteHeader(http.StatusNoContent)
}

// generateQuestions roda o gerador com a config corrente e grava as duas
// seções; o pacote completo é espelhado no Redis para os outros serviços
func (s *Server) generateQuestions(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	m, ok := s.matches.Match(matchID)
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "match not found"})
		return
	}

	cfg, ok := s.store.Config(matchID)
	if !ok {
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "match config not set"})
		return
	}

	standard := questions.GenerateStandardPack(m, cfg)
	s.store.SaveQuestionsBySection(matchID, questions.SectionStandard, standard)

	// sideBetPointsDefault sobrescreve a pontuação default de todos os templates
	var override map[string]int
	if cfg.SideBetPointsDefault > 0 {
		override = make(map[string]int, len(s.templates.Templates))
		for _, t := range s.templates.Templates {
			override[t.TemplateID] = cfg.SideBetPointsDefault
		}
	}
	side := questions.ApplySideBets(m, s.templates, cfg.SideBetCount, override, cfg.SideBetTemplateIDs)
	s.store.SaveQuestionsBySection(matchID, questions.SectionSide, side)

	if err := s.pack.SetPack(r.Context(), matchID, s.store.Questions(matchID)); err != nil {
		s.log.Warn("pack cache set failed", zap.String("matchId", matchID), zap.Error(err))
		// cache é espelho; a geração em si já está no store
	}

	writeJSON(w, http.StatusOK, dto.GenerateResponse{
		MatchID:       matchID,
		StandardCount: len(standard),
		SideCount:     len(side),
	})
}

func (s *Server) getQuestions(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	qs := s.store.Questions(matchID)
	if len(qs) == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "no questions generated"})
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

// saveStat grava o box score de um jogador. Século é derivado dos runs
// na captura, mas fica persistido como flag explícita. Jogo com
// resultados fechados rejeita a edição (409).
func (s *Server) saveStat(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	playerID := chi.URLParam(r, "playerId")

	var req dto.StatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}

	st := scoring.PlayerMatchStat{
		MatchID:        matchID,
		PlayerID:       playerID,
		Runs:           req.Runs,
		BallsFaced:     req.BallsFaced,
		Fours:          req.Fours,
		Sixes:          req.Sixes,
		Wickets:        req.Wickets,
		OversBowled:    req.OversBowled,
		RunsConceded:   req.RunsConceded,
		Catches:        req.Catches,
		RunOuts:        req.RunOuts,
		Stumpings:      req.Stumpings,
		Century:        req.Century || req.Runs >= 100,
		FiveWicketHaul: req.FiveWicketHaul || req.Wickets >= 5,
		HatTrick:       req.HatTrick,
	}

	if err := s.repo.UpsertStat(r.Context(), st); err != nil {
		if errors.Is(err, repo.ErrMatchFinalized) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: repo.ErrMatchFinalized.Error()})
			return
		}
		s.log.Error("stat upsert", zap.String("matchId", matchID), zap.String("playerId", playerID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "persist failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setManOfMatch aponta o craque do jogo; valor único por jogo, trocar
// o jogador substitui o anterior
func (s *Server) setManOfMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	playerID := chi.URLParam(r, "playerId")

	if err := s.repo.SetManOfMatch(r.Context(), matchID, playerID); err != nil {
		s.log.Error("mom set", zap.String("matchId", matchID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "persist failed"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// finalizeResults persiste os resultados oficiais e publica o gatilho
// de pontuação. Idempotente: refinalizar incrementa a versão.
func (s *Server) finalizeResults(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if _, ok := s.matches.Match(matchID); !ok {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "match not found"})
		return
	}

	var req dto.ResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if req.Winner == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "winner required"})
		return
	}

	version, err := s.repo.UpsertResults(r.Context(), matchID, req.Winner, req.TotalRuns, req.SideBetAnswers, req.ManOfMatchPlayerID, req.RunnerPool)
	if err != nil {
		s.log.Error("results upsert", zap.String("matchId", matchID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "persist failed"})
		return
	}

	if err := s.repo.LockBetsForMatch(r.Context(), matchID); err != nil {
		s.log.Warn("lock bets", zap.String("matchId", matchID), zap.Error(err))
	}

	ev := events.ResultsFinalized{
		MatchID:            matchID,
		Winner:             req.Winner,
		TotalRuns:          req.TotalRuns,
		SideBetAnswers:     req.SideBetAnswers,
		ManOfMatchPlayerID: req.ManOfMatchPlayerID,
		RunnerPool:         req.RunnerPool,
		Version:            version,
	}
	if err := s.publ.PublishResultsFinalized(r.Context(), ev); err != nil {
		s.log.Error("publish results_finalized", zap.String("matchId", matchID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "publish failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matchId": matchID, "version": version})
}

func (s *Server) finalizeLongTerm(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var req dto.LongTermResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "bad json"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "answers required"})
		return
	}

	ev := events.LongTermResultsFinalized{EventID: eventID, Answers: req.Answers}
	if err := s.publ.PublishLongTermResults(r.Context(), ev); err != nil {
		s.log.Error("publish longterm_results_finalized", zap.String("eventId", eventID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "publish failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"eventId": eventID, "status": "PUBLISHED"})
}
