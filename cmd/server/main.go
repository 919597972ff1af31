package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	accountservice "ibangate/internal/account/service"
	accountstore "ibangate/internal/account/store"
	"ibangate/internal/jwtauth"
	"ibangate/internal/platform/config"
	"ibangate/internal/platform/httpserver"
	"ibangate/internal/platform/logger"
	"ibangate/internal/platform/metrics"
	platformredis "ibangate/internal/platform/redis"
	httptransport "ibangate/internal/transport/http"
	"ibangate/internal/validate"
	audit "ibangate/pkg/platform/audit"
	auditmemory "ibangate/pkg/platform/audit/store/memory"
	auditworker "ibangate/pkg/platform/audit/worker"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	group, ctx := errgroup.WithContext(ctx)

	var store accountstore.Store
	switch {
	case cfg.PostgresDSN != "":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			return
		}
		defer db.Close()

		pg := accountstore.NewPostgres(db)
		if err := pg.InitSchema(ctx); err != nil {
			log.Error("init postgres schema", "error", err)
			return
		}
		store = pg
		log.Info("account store: postgres")
	default:
		store = accountstore.NewMemory()
		log.Info("account store: memory")
	}

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("connect redis", "error", err)
			return
		}
		defer redisClient.Close()
		store = accountstore.NewRedisCache(store, redisClient.Client, config.AccountCacheTTL, m, log)
		log.Info("account store: redis cache enabled", "ttl", config.AccountCacheTTL)
	}

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafka(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			return
		}
		defer kafka.Close()
		publisher = kafka
		log.Info("audit trail: kafka", "topic", cfg.AuditTopic)
	} else {
		inbox := audit.NewInbox(256, log)
		worker := auditworker.New(auditmemory.New(), inbox.Events())
		group.Go(func() error {
			if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		publisher = inbox
		log.Info("audit trail: in-memory")
	}

	jwtService := jwtauth.NewService(cfg.JWTSigningKey, "ibangate", "ibangate-api")

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		JWTValidator: jwtService,
		Validate:     validate.NewService(log, m, publisher),
		Accounts:     accountservice.New(store, log, m, publisher),
	})

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("starting ibangate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		return
	}
	log.Info("shutdown complete")
}
