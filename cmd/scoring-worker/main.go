package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/cricket-bet-platform/internal/longterm"
	ltrepo "github.com/radieske/cricket-bet-platform/internal/longterm/repo"
	qcache "github.com/radieske/cricket-bet-platform/internal/questions/cache"
	"github.com/radieske/cricket-bet-platform/internal/scoring-worker/consumer"
	"github.com/radieske/cricket-bet-platform/internal/scoring-worker/pubsub"
	wrepo "github.com/radieske/cricket-bet-platform/internal/scoring-worker/repo"
	sharedcache "github.com/radieske/cricket-bet-platform/internal/shared/cache"
	"github.com/radieske/cricket-bet-platform/internal/shared/config"
	"github.com/radieske/cricket-bet-platform/internal/shared/db"
	skafka "github.com/radieske/cricket-bet-platform/internal/shared/kafka"
	"github.com/radieske/cricket-bet-platform/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Config do evento de longo prazo (gabarito de perguntas + custo de reopen)
	ltCfg, err := longterm.LoadConfig(cfg.LongTermConfigPath)
	if err != nil {
		log.Fatal("longterm config", zap.Error(err))
	}

	repository := wrepo.NewPostgres(pg)
	ltStore := ltrepo.NewPostgres(pg)
	pack := qcache.NewPackCache(rdb, 24*time.Hour)

	// Consumers Kafka (consumer group scoring-worker) e writers de saída
	resultsReader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicResultsFinalized, "scoring-worker")
	defer resultsReader.Close()
	ltReader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicLongTermResults, "scoring-worker")
	defer ltReader.Close()

	scoredWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetScored)
	defer scoredWriter.Close()
	ltScoredWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLongTermScored)
	defer ltScoredWriter.Close()

	resultsDLQ := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicResultsFinalizedDLQ)
	defer resultsDLQ.Close()
	ltDLQ := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLongTermResultsDLQ)
	defer ltDLQ.Close()

	// Métricas Prometheus para monitoramento da pontuação
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "scoring_messages_consumed_total", Help: "mensagens consumidas"})
	scored := prometheus.NewCounter(prometheus.CounterOpts{Name: "scoring_bets_scored_total", Help: "apostas pontuadas"})
	ltScored := prometheus.NewCounter(prometheus.CounterOpts{Name: "scoring_longterm_scored_total", Help: "submissões de longo prazo pontuadas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "scoring_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, scored, ltScored, errorsBy)

	// Broadcaster para publicar o delta do leaderboard no Redis Pub/Sub
	broadcaster := pubsub.NewRedisBroadcaster(rdb)
	broadcast := func(delta pubsub.LeaderboardDelta) {
		b, _ := json.Marshal(delta)

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := broadcaster.Publish(ctx, cfg.RedisLeaderboardChannel, b); err != nil {
			log.Warn("leaderboard broadcast publish failed", zap.Error(err))
		}
	}

	matchProc := &consumer.MatchProcessor{
		Log:        log,
		Reader:     resultsReader,
		Repo:       repository,
		Pack:       pack,
		Writer:     scoredWriter,
		DLQ:        resultsDLQ,
		OnConsumed: func() { consumed.Inc() },
		OnScored:   func() { scored.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
		OnDone:     broadcast,
	}

	ltProc := &consumer.LongTermProcessor{
		Log:        log,
		Reader:     ltReader,
		Repo:       repository,
		Cfg:        ltCfg,
		Store:      ltStore,
		Writer:     ltScoredWriter,
		DLQ:        ltDLQ,
		OnConsumed: func() { consumed.Inc() },
		OnScored:   func() { ltScored.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
		OnDone:     broadcast,
	}

	// Servidor HTTP para métricas e health check
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			if err := rdb.Ping(ctx).Err(); err != nil {
				http.Error(w, "redis", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health listening", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("scoring-worker started")
	errCh := make(chan error, 2)
	go func() { errCh <- matchProc.Run(ctx) }()
	go func() { errCh <- ltProc.Run(ctx) }()

	if err := <-errCh; err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("scoring-worker stopped")
}
