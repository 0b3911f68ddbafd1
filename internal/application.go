package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/pool"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/transport/tcp"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/rest"
)

// RunApp - runs the application until SIGINT/SIGTERM or a fatal server error.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo := repository.NewNopSessionRepository()

	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		sessionRepo = repository.NewSessionRepository(redisStorage.Connection)
	}

	matchmaker := usecase.NewMatchmaker(logger, pool.New(), tictactoe.NewRules(), sessionRepo, usecase.SessionOptions{
		MoveTimeout:         conf.Session.MoveTimeout,
		RequeueOnDisconnect: conf.Session.RequeueOnDisconnect(),
	})
	defer func() {
		// running sessions wind down once the context is cancelled
		stop()
		matchmaker.Close()
	}()

	tcpServer := tcp.New(logger, matchmaker, conf.Session.IngressBuffer)

	ln, err := tcpServer.Listen(conf.TCPAddr)
	if err != nil {
		return err
	}

	// run TCP server
	tcpErrCh := make(chan error, 1)
	go func() {
		if tcpErr := tcpServer.Serve(ctx, ln); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPEnabled() {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewHandlers(matchmaker, tcpServer)); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	select {
	case err = <-tcpErrCh:
		return fmt.Errorf("TCP server error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
