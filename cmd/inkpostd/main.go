package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	authredis "github.com/inkpost/inkpost/internal/adapter/auth/redis"
	natsclient "github.com/inkpost/inkpost/internal/adapter/events/nats"
	"github.com/inkpost/inkpost/internal/adapter/mailer/smtp"
	"github.com/inkpost/inkpost/internal/adapter/repository/postgres"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/pkg/logger"
	"github.com/inkpost/inkpost/internal/pkg/tracing"
	"github.com/inkpost/inkpost/internal/port"
	"github.com/inkpost/inkpost/internal/service"
	transport "github.com/inkpost/inkpost/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Init(parseLevel(cfg.LogLevel))

	shutdownTracing, err := tracing.Init(ctx, "inkpost", cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = redisClient.Close() }()

	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	txManager := postgres.NewTxManager(pool)
	resolver := authredis.NewResolver(redisClient, userRepo)

	var publisher port.Publisher
	if cfg.NATSURL != "" {
		nc, err := natsclient.NewClient(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer nc.Close()
		publisher = nc
	}

	var mailer port.Mailer
	if cfg.SMTPHost != "" {
		mailer = smtp.New(cfg)
	}

	posts := service.NewPostService(postRepo, commentRepo, userRepo, txManager, publisher)
	comments := service.NewCommentService(commentRepo, postRepo, userRepo, publisher, mailer)

	handler := transport.NewRouter(posts, comments, resolver, transport.RouterConfig{
		AllowedOrigins: strings.Split(cfg.AppURL, ","),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
