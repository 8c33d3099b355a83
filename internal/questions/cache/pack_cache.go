package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/cricket-bet-platform/internal/questions"
)

// PackCache espelha no Redis o pacote de perguntas gerado pelo admin-service,
// para leitura pelo bet-service e pelo scoring-worker.
type PackCache struct {
	Client *redis.Client
	TTL    time.Duration // 0 = sem expiração
}

func NewPackCache(c *redis.Client, ttl time.Duration) *PackCache {
	return &PackCache{Client: c, TTL: ttl}
}

func packKey(matchID string) string { return "questions:match:" + matchID }

// SetPack grava o pacote completo do jogo
func (p *PackCache) SetPack(ctx context.Context, matchID string, qs []questions.Question) error {
	b, err := json.Marshal(qs)
	if err != nil {
		return err
	}
	return p.Client.Set(ctx, packKey(matchID), b, p.TTL).Err()
}

// GetPack lê o pacote do jogo; found=false quando a chave não existe
func (p *PackCache) GetPack(ctx context.Context, matchID string) ([]questions.Question, bool, error) {
	b, err := p.Client.Get(ctx, packKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var qs []questions.Question
	if err := json.Unmarshal(b, &qs); err != nil {
		return nil, false, err
	}
	return qs, true, nil
}
