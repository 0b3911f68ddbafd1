package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

type fixedStats usecase.Stats

func (that fixedStats) Stats() usecase.Stats {
	return usecase.Stats(that)
}

type fixedConns int64

func (that fixedConns) Connections() int64 {
	return int64(that)
}

func TestHandlers(t *testing.T) {
	mux := NewMux(NewHandlers(fixedStats{Waiting: 1, ActiveSessions: 2, TotalSessions: 5}, fixedConns(11)))

	t.Run("Ping", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]int64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]int64{
			"waiting":         1,
			"active_sessions": 2,
			"total_sessions":  5,
			"connections":     11,
		}, body)
	})

	t.Run("Wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
