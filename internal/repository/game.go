package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameChanged  = errors.New("game was changed by another request")
)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateByID(ctx context.Context, id string, update func(session *entity.Session) error) error
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - stores sessions in Redis; every write resets the key's ttl.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(session.ID), sessionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	session, err := getSession(ctx, that.client, gameKey(id))
	if err != nil {
		return &entity.Session{}, err
	}

	return session, nil
}

// UpdateByID - applies update to the stored session and writes it back in a transaction.
// The write is dropped with ErrGameChanged when the key was modified after it was read.
func (that *dbGame) UpdateByID(ctx context.Context, id string, update func(session *entity.Session) error) error {
	key := gameKey(id)

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		session, err := getSession(ctx, tx, key)
		if err != nil {
			return err
		}

		if err = update(session); err != nil {
			return err
		}

		sessionJSON, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, that.ttl)
			return nil
		})

		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrGameChanged
	}

	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getSession(ctx context.Context, client getter, key string) (*entity.Session, error) {
	response, err := client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &session, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
