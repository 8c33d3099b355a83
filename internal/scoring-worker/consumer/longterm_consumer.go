package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/cricket-bet-platform/internal/longterm"
	"github.com/radieske/cricket-bet-platform/internal/scoring-worker/pubsub"
	wrepo "github.com/radieske/cricket-bet-platform/internal/scoring-worker/repo"
	skafka "github.com/radieske/cricket-bet-platform/internal/shared/kafka"
	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

// LongTermProcessor consome longterm_results_finalized, pontua cada
// submissão contra o gabarito e credita o placar no ledger de pontos.
type LongTermProcessor struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *wrepo.Postgres
	Cfg    longterm.Config
	Store  longterm.Store
	Writer *kafka.Writer // longterm_scored
	DLQ    *kafka.Writer

	OnConsumed func()
	OnScored   func()
	OnError    func(string)
	OnDone     func(pubsub.LeaderboardDelta)
}

func (p *LongTermProcessor) Run(ctx context.Context) error {
	for {
		key, value, err := skafka.ReadNext(ctx, p.Reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
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

func (p *LongTermProcessor) handle(ctx context.Context, key, value []byte) {
	if p.OnConsumed != nil {
		p.OnConsumed()
	}

	var ev events.LongTermResultsFinalized
	if err := json.Unmarshal(value, &ev); err != nil {
		p.Log.Warn("invalid message", zap.Error(err))
		if p.OnError != nil {
			p.OnError("decode")
		}
		return
	}

	if err := p.scoreEvent(ctx, ev); err != nil {
		for i := 0; i < scoreRetries && err != nil; i++ {
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			err = p.scoreEvent(ctx, ev)
		}
		if err != nil {
			p.Log.Error("score longterm failed", zap.String("eventId", ev.EventID), zap.Error(err))
			if p.OnError != nil {
				p.OnError("score")
			}
			if p.DLQ != nil {
				_ = skafka.WriteJSON(ctx, p.DLQ, string(key), value)
			}
		}
	}
}

func (p *LongTermProcessor) scoreEvent(ctx context.Context, ev events.LongTermResultsFinalized) error {
	subs, err := p.Repo.ListSubmissions(ctx, ev.EventID)
	if err != nil {
		return fmt.Errorf("load submissions: %w", err)
	}

	delta := pubsub.LeaderboardDelta{EventID: ev.EventID}
	for _, sub := range subs {
		score := longterm.ScoreSubmission(p.Cfg.Questions, sub.Answers, ev.Answers)

		if err := p.Repo.SaveSubmissionScore(ctx, ev.EventID, sub.UserID, score); err != nil {
			return fmt.Errorf("save submission score %s: %w", sub.UserID, err)
		}

		// Pontos do longo prazo entram no mesmo ledger que banca o reopen
		if score > 0 {
			if _, err := p.Store.Credit(ctx, sub.UserID, score, "longterm scoring "+ev.EventID); err != nil {
				return fmt.Errorf("credit ledger %s: %w", sub.UserID, err)
			}
		}
		if p.OnScored != nil {
			p.OnScored()
		}

		scored := events.LongTermScored{
			EventID: ev.EventID,
			UserID:  sub.UserID,
			Points:  score,
			Ts:      time.Now(),
		}
		raw, _ := json.Marshal(scored)
		if p.Writer != nil {
			if err := skafka.WriteJSON(ctx, p.Writer, sub.UserID, raw); err != nil {
				p.Log.Warn("publish longterm_scored", zap.String("userId", sub.UserID), zap.Error(err))
			}
		}

		delta.Entries = append(delta.Entries, pubsub.LeaderboardEntry{UserID: sub.UserID, Score: score})
	}

	if p.OnDone != nil {
		p.OnDone(delta)
	}
	return nil
}
