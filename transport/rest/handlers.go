package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	StatsHandler(w http.ResponseWriter, _ *http.Request)
}

type lobbyStats interface {
	Stats() usecase.Stats
}

type connCounter interface {
	Connections() int64
}

type statsResponse struct {
	usecase.Stats
	Connections int64 `json:"connections"`
}

type handlers struct {
	lobby lobbyStats
	conns connCounter
}

func NewHandlers(lobby lobbyStats, conns connCounter) Handlers {
	return &handlers{
		lobby: lobby,
		conns: conns,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// StatsHandler - reports the waiting pool and session counters.
func (that *handlers) StatsHandler(w http.ResponseWriter, _ *http.Request) {
	response := statsResponse{
		Stats:       that.lobby.Stats(),
		Connections: that.conns.Connections(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
