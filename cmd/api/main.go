package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	"github.com/BruksfildServices01/table-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/table-booking/internal/db"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/infra/events"
	"github.com/BruksfildServices01/table-booking/internal/infra/lock"
	"github.com/BruksfildServices01/table-booking/internal/infra/repository"
	"github.com/BruksfildServices01/table-booking/internal/infra/token"
	"github.com/BruksfildServices01/table-booking/internal/logging"
	"github.com/BruksfildServices01/table-booking/internal/middleware"
	"github.com/BruksfildServices01/table-booking/internal/routes"
)

func main() {

	cfg := config.Load()
	logging.Setup(nil, cfg.LogLevel, cfg.LogFormat)

	// ======================================================
	// STORAGE
	// ======================================================
	var (
		db    *gorm.DB
		repo  domain.Repository
		sinks []audit.Sink
	)

	if cfg.Storage == config.StorageMemory {
		mem := repository.NewMemoryRepository()
		mem.Seed(dbpkg.DefaultRestaurant(), dbpkg.DefaultTables(0), dbpkg.DefaultOpeningHours(0))
		repo = mem
		sinks = append(sinks, audit.LogSink{})
		logrus.Warn("using in-memory storage, reservations are lost on restart")
	} else {
		db = dbpkg.NewDB(cfg)
		repo = repository.NewReservationGormRepository(db)
		sinks = append(sinks, audit.New(db))
	}

	// ======================================================
	// DAY LOCK
	// ======================================================
	var locker domain.DayLocker = lock.NewLocal(cfg.LockWait)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		locker = lock.NewRedis(client, cfg.LockTTL, cfg.LockWait)
		logrus.Info("using redis day lock")
	}

	// ======================================================
	// EVENTS
	// ======================================================
	if cfg.EventsEnabled() {
		publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer publisher.Close()

		sinks = append(sinks, publisher)
		logrus.WithField("topic", cfg.KafkaTopic).Info("publishing reservation events")
	}

	dispatcher := audit.NewDispatcher(sinks...)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Repo:   repo,
		Locker: locker,
		Tokens: token.NewUUIDGenerator(),
		Audit:  dispatcher,
		DB:     db,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("failed to start server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}

	// flush pending audit events before the sinks close
	dispatcher.Close()
}
