package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ahttp "github.com/radieske/cricket-bet-platform/internal/admin-service/http"
	kpub "github.com/radieske/cricket-bet-platform/internal/admin-service/producer"
	"github.com/radieske/cricket-bet-platform/internal/admin-service/repo"
	"github.com/radieske/cricket-bet-platform/internal/fixtures"
	"github.com/radieske/cricket-bet-platform/internal/questions"
	qcache "github.com/radieske/cricket-bet-platform/internal/questions/cache"
	"github.com/radieske/cricket-bet-platform/internal/shared/config"
	"github.com/radieske/cricket-bet-platform/internal/shared/db"
	skafka "github.com/radieske/cricket-bet-platform/internal/shared/kafka"
	"github.com/radieske/cricket-bet-platform/internal/shared/logger"
	"github.com/radieske/cricket-bet-platform/internal/shared/metrics"
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

	// Kafka writers (results_finalized e longterm_results_finalized)
	resultsWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicResultsFinalized)
	defer resultsWriter.Close()
	ltWriter := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLongTermResults)
	defer ltWriter.Close()

	// Calendário de jogos e templates de side bet (bootstrap estático)
	matches, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		log.Fatal("fixtures", zap.Error(err))
	}
	templates, err := questions.LoadTemplates(cfg.SideBetTemplates)
	if err != nil {
		log.Fatal("side bet templates", zap.Error(err))
	}

	// Store de perguntas: retoma do documento em disco quando existir
	store, err := questions.LoadStore(cfg.QuestionsDocPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal("questions doc", zap.Error(err))
		}
		store = questions.NewStore()
	}

	// Espelho do pacote no Redis para leitura dos outros serviços
	pack := qcache.NewPackCache(rdb, 24*time.Hour)

	repository := repo.NewPostgres(pg)
	publ := kpub.NewKafkaPublisher(resultsWriter, ltWriter)

	// HTTP administrativo
	api := ahttp.NewServer(log, matches, store, templates, pack, repository, publ)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	log.Info("metrics/health", zap.String("addr", fmt.Sprintf(":%s", cfg.MetricsPort)))

	log.Info("admin-service listening", zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
