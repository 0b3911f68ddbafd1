package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

type lobby interface {
	Join(ctx context.Context, client entity.Client)
}

type Server struct {
	logger     *slog.Logger
	lobby      lobby
	bufferSize int

	accepted atomic.Int64
}

func New(logger *slog.Logger, lobby lobby, bufferSize int) *Server {
	return &Server{
		logger:     logger.With("component", "tcp"),
		lobby:      lobby,
		bufferSize: bufferSize,
	}
}

// Listen - binds addr. A bind failure is fatal to startup.
func (that *Server) Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return ln, nil
}

// Start - binds addr and serves it until ctx is cancelled.
func (that *Server) Start(ctx context.Context, addr string) error {
	ln, err := that.Listen(addr)
	if err != nil {
		return err
	}

	return that.Serve(ctx, ln)
}

// Serve - accepts connections on ln and hands each one to the lobby. Returns nil once ctx is cancelled.
func (that *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := that.logger.With("method", "Serve")
	log.Info("listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info("listener closed")
				return nil
			}

			return fmt.Errorf("accept: %w", err)
		}

		that.accepted.Add(1)

		go that.handle(ctx, conn)
	}
}

func (that *Server) handle(ctx context.Context, conn net.Conn) {
	connection := NewConnection(conn, that.bufferSize)

	that.logger.Info("client connected", "client_id", connection.ID(), "remote_addr", conn.RemoteAddr().String())

	that.lobby.Join(ctx, connection.Client())
}

// Connections - number of connections accepted since start.
func (that *Server) Connections() int64 {
	return that.accepted.Load()
}
