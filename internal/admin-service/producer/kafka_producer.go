package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/cricket-bet-platform/pkg/contracts/events"
)

// KafkaPublisher publica os gatilhos de pontuação consumidos pelo scoring-worker
type KafkaPublisher struct {
	ResultsWriter  *kafka.Writer
	LongTermWriter *kafka.Writer
}

func NewKafkaPublisher(results, longTerm *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{ResultsWriter: results, LongTermWriter: longTerm}
}

func (p *KafkaPublisher) PublishResultsFinalized(ctx context.Context, e events.ResultsFinalized) error {
	e.FinalizedAt = time.Now()
	b, _ := json.Marshal(e)
	return p.ResultsWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.MatchID), Value: b})
}

func (p *KafkaPublisher) PublishLongTermResults(ctx context.Context, e events.LongTermResultsFinalized) error {
	e.FinalizedAt = time.Now()
	b, _ := json.Marshal(e)
	return p.LongTermWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.EventID), Value: b})
}
