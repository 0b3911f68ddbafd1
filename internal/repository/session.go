package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// sessionTTL bounds how long a snapshot outlives a session that never cleaned up after itself.
const sessionTTL = time.Hour

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository mirrors live sessions. Entries are removed when a session terminates.
type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, state *entity.SessionState) error
	GetByID(ctx context.Context, id string) (*entity.SessionState, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, state *entity.SessionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(state.ID), stateJSON, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*entity.SessionState, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	var state entity.SessionState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &state, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type nopSession struct{}

// NewNopSessionRepository - used when no registry is configured.
func NewNopSessionRepository() SessionRepository {
	return nopSession{}
}

func (nopSession) CreateOrUpdate(context.Context, *entity.SessionState) error {
	return nil
}

func (nopSession) GetByID(context.Context, string) (*entity.SessionState, error) {
	return nil, ErrSessionNotFound
}

func (nopSession) DeleteByID(context.Context, string) error {
	return nil
}
