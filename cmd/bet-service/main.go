package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	bhttp "github.com/radieske/cricket-bet-platform/internal/bet-service/http"
	kpub "github.com/radieske/cricket-bet-platform/internal/bet-service/producer"
	"github.com/radieske/cricket-bet-platform/internal/bet-service/repo"
	"github.com/radieske/cricket-bet-platform/internal/fixtures"
	"github.com/radieske/cricket-bet-platform/internal/longterm"
	ltrepo "github.com/radieske/cricket-bet-platform/internal/longterm/repo"
	"github.com/radieske/cricket-bet-platform/internal/shared/config"
	"github.com/radieske/cricket-bet-platform/internal/shared/db"
	skafka "github.com/radieske/cricket-bet-platform/internal/shared/kafka"
	"github.com/radieske/cricket-bet-platform/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writer (topic bet_submitted)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSubmitted)
	defer writer.Close()

	// Calendário de jogos (bootstrap estático)
	matches, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		log.Fatal("fixtures", zap.Error(err))
	}

	// Evento de longo prazo: config + ledger sobre o Postgres
	ltCfg, err := longterm.LoadConfig(cfg.LongTermConfigPath)
	if err != nil {
		log.Fatal("longterm config", zap.Error(err))
	}
	ltStore := ltrepo.NewPostgres(pg)
	ledger := longterm.NewLedger(ltCfg, ltStore, nil)

	// deps
	repository := repo.NewPostgres(pg)
	publ := kpub.NewKafkaPublisher(writer, cfg.TopicBetSubmitted)

	// HTTP público
	api := bhttp.NewServer(log, repository, matches, ledger, ltStore, publ)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.PingContext(r.Context()); err != nil {
			http.Error(w, "pg", http.StatusServiceUnavailable)
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, metricsMux)
	}()

	log.Info("bet-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
