package pubsub

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ChannelLeaderboardBroadcast = "leaderboard_updates_broadcast"

type RedisBroadcaster struct {
	r *redis.Client
}

func NewRedisBroadcaster(r *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{r: r}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.r.Publish(ctx, channel, payload).Err()
}

// Payload do broadcast de leaderboard após uma rodada de pontuação
type LeaderboardDelta struct {
	MatchID string             `json:"matchId,omitempty"`
	EventID string             `json:"eventId,omitempty"`
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
}
