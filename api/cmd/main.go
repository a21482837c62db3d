package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/events-api/internal/application/attendance"
	"github.com/baechuer/events-api/internal/application/auth"
	"github.com/baechuer/events-api/internal/application/event"
	"github.com/baechuer/events-api/internal/config"
	"github.com/baechuer/events-api/internal/contracts"
	"github.com/baechuer/events-api/internal/infrastructure/db/postgres"
	rabbitpub "github.com/baechuer/events-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/events-api/internal/infrastructure/security"
	"github.com/baechuer/events-api/internal/logger"
	"github.com/baechuer/events-api/internal/transport/http/handlers"
	authmw "github.com/baechuer/events-api/internal/transport/http/middleware"
	"github.com/baechuer/events-api/internal/transport/http/router"
)

const shutdownTimeout = 10 * time.Second

// sysClock reports wall time in the configured application timezone.
type sysClock struct{ loc *time.Location }

func (c sysClock) Now() time.Time {
	if c.loc == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.loc)
}

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB
	Redis  *redis.Client

	Publisher *rabbitpub.Publisher
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		zlog.Info().
			Str("db_driver", cfg.DBDriver).
			Str("db_user", u.User.Username()).
			Str("db_host", u.Host).
			Str("db_db", u.Path).
			Msg("db config loaded")
	}

	db, err := config.NewDB(cfg.DBDriver, cfg.DatabaseURL, cfg.DBOptions())
	if err != nil {
		zlog.Fatal().Err(err).Msg("db init failed")
	}
	defer db.Close()

	if cfg.DBMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := postgres.Migrate(ctx, db)
		cancel()
		if err != nil {
			zlog.Fatal().Err(err).Msg("db migrate failed")
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = config.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis init failed")
		}
		defer rdb.Close()
	} else {
		zlog.Warn().Msg("REDIS_ADDR empty: credential endpoints use only the per-IP limit")
	}

	app := NewApp(cfg, db, rdb)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("tz", cfg.Timezone).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	case <-ctx.Done():
		zlog.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func NewApp(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	// 1) Infrastructure
	events := postgres.New(db)
	attendees := postgres.NewAttendeeRepo(db)
	users := postgres.NewUserRepo(db)

	var rabbit *rabbitpub.Publisher
	var pub contracts.Publisher = contracts.NoopPublisher{}

	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	clock := sysClock{loc: cfg.Location}

	// 2) Application
	eventSvc := event.New(events, clock, pub)
	attSvc := attendance.New(attendees, events, clock, pub)
	authSvc := auth.NewService(
		users,
		security.NewBcryptHasher(cfg.BcryptCost),
		security.NewJWTSigner(cfg.AuthSecret, cfg.AuthIssuer),
		cfg.AuthTokenTTL,
	)

	// 3) Transport
	paging := handlers.Paging{Default: cfg.PageLimitDefault, Max: cfg.PageLimitMax}
	h := router.Handlers{
		Events:     handlers.NewEventsHandler(eventSvc, paging),
		Attendance: handlers.NewAttendanceHandler(attSvc, eventSvc, paging),
		Auth:       handlers.NewAuthHandler(authSvc),
		Health:     handlers.NewHealthHandler(events),
	}

	// 4) Router
	httpHandler := router.New(h, authmw.NewAuth(authSvc), cfg, rdb)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Redis:     rdb,
		Publisher: rabbit,
	}
}
