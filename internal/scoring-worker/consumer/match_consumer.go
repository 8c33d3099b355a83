package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	qcache "github.com/radieske/cricket-bet-platform/internal/questions/cache"
	"github.com/radieske/cricket-bet-platform/internal/scoring"
	"github.com/radieske/cricket-bet-platform/internal/scoring-worker/pubsub"
	wrepo "github.com/radieske/cricket-bet-platform/internal/scoring-worker/repo"
	skafka "github.com/radieske/cricket-bet-platform/internal/shared/kafka"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

// MatchProcessor consome results_finalized e pontua todas as apostas do
// jogo. Callbacks de métricas monitoram cada etapa; mensagens que
// esgotam as tentativas vão para a DLQ.
type MatchProcessor struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *wrepo.Postgres
	Pack   *qcache.PackCache
	Writer *kafka.Writer // bet_scored
	DLQ    *kafka.Writer

	OnConsumed func()                       // métricas (counter++)
	OnScored   func()                       // métricas: uma aposta pontuada
	OnError    func(string)                 // métricas por fase
	OnDone     func(pubsub.LeaderboardDelta) // broadcast pós-pontuação
}

const scoreRetries = 3

// Run inicia o loop principal de consumo e pontuação
func (p *MatchProcessor) Run(ctx context.Context) error {
	for {
		key, value, err := skafka.ReadNext(ctx, p.Reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		p.handle(ctx, key, value)
	}
}

// handle decodifica e processa uma mensagem. Payload inválido é
// descartado sem DLQ; falha de pontuação tenta de novo antes de desviar.
func (p *MatchProcessor) handle(ctx context.Context, key, value []byte) {
	if p.OnConsumed != nil {
		p.OnConsumed()
	}

	var ev events.ResultsFinalized
	if err := json.Unmarshal(value, &ev); err != nil {
		p.Log.Warn("invalid message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		return
	}

	if err := p.scoreMatch(ctx, ev); err != nil {
		for i := 0; i < scoreRetries && err != nil; i++ {
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			err = p.scoreMatch(ctx, ev)
		}
		if err != nil {
			p.Log.Error("score match failed", zap.String("matchId", ev.MatchID), zap.Error(err))
			if p.OnError != nil {
				p.OnError("score")
			}
			if p.DLQ != nil {
				_ = skafka.WriteJSON(ctx, p.DLQ, string(key), value)
			}
		}
	}
}

// applyManOfMatch materializa o craque do jogo como flag no stat do
// jogador apontado no evento. A flag fica em no máximo um jogador:
// a fonte é um valor único por jogo, nunca as linhas de stats.
// Jogador sem stat contribui zero, então não há o que marcar.
func applyManOfMatch(stats map[string]scoring.PlayerMatchStat, playerID string) {
	if playerID == "" {
		return
	}
	if st, ok := stats[playerID]; ok {
		st.ManOfMatch = true
		stats[playerID] = st
	}
}

// scoreMatch aplica as regras sobre cada aposta do jogo. Sem dependência
// de ordem entre apostas; o resultado de uma não afeta a outra.
func (p *MatchProcessor) scoreMatch(ctx context.Context, ev events.ResultsFinalized) error {
	pack, found, err := p.Pack.GetPack(ctx, ev.MatchID)
	if err != nil {
		return fmt.Errorf("load question pack: %w", err)
	}
	if !found {
		return fmt.Errorf("question pack not cached for match %s", ev.MatchID)
	}

	stats, err := p.Repo.StatsByMatch(ctx, ev.MatchID)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	applyManOfMatch(stats, ev.ManOfMatchPlayerID)

	allBets, err := p.Repo.ListBetsByMatch(ctx, ev.MatchID)
	if err != nil {
		return fmt.Errorf("load bets: %w", err)
	}

	delta := pubsub.LeaderboardDelta{MatchID: ev.MatchID}
	for _, b := range allBets {
		bd := scoring.ScoreBet(pack, b, ev, stats)

		if err := p.Repo.SaveBetScore(ctx, b.BetID, bd); err != nil {
			return fmt.Errorf("save score %s: %w", b.BetID, err)
		}
		if p.OnScored != nil {
			p.OnScored()
		}

		scored := events.BetScored{
			BetID:            b.BetID,
			UserID:           b.UserID,
			MatchID:          b.MatchID,
			Score:            bd.Score,
			WinnerPoints:     bd.WinnerPoints,
			TotalRunsPoints:  bd.TotalRunsPoints,
			PlayerPickPoints: bd.PlayerPickPoints,
			SideBetPoints:    bd.SideBetPoints,
			RunnerPoints:     bd.RunnerPoints,
			Ts:               time.Now(),
		}
		raw, _ := json.Marshal(scored)
		if p.Writer != nil {
			if err := skafka.WriteJSON(ctx, p.Writer, b.BetID, raw); err != nil {
				p.Log.Warn("publish bet_scored", zap.String("betId", b.BetID), zap.Error(err))
			}
		}

		delta.Entries = append(delta.Entries, pubsub.LeaderboardEntry{UserID: b.UserID, Score: bd.Score})
	}

	if p.OnDone != nil {
		p.OnDone(delta)
	}
	return nil
}
