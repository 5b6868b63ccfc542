package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/razzie/reconchess/pkg/recon"
)

const keyPrefix = "reconchess:game:"

var ErrNotFound = errors.New("game not found")

// GameRecord is a finished game as the bot saw it
type GameRecord struct {
	ID       string             `json:"id"`
	Color    string             `json:"color"`
	Opponent string             `json:"opponent,omitempty"`
	Played   time.Time          `json:"played"`
	History  *recon.GameHistory `json:"history,omitempty"`
	Belief   []recon.Turn       `json:"belief"`
}

type DB redis.Client

func NewDB(redisURL string) (*DB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	db := redis.NewClient(opt)
	if err := db.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return (*DB)(db), nil
}

func (db *DB) client() *redis.Client {
	return (*redis.Client)(db)
}

func (db *DB) SaveGame(ctx context.Context, record *GameRecord, expiration time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return db.client().Set(ctx, keyPrefix+record.ID, data, expiration).Err()
}

func (db *DB) LoadGame(ctx context.Context, id string) (*GameRecord, error) {
	data, err := db.client().Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	var record GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListGames returns the ids of every stored game
func (db *DB) ListGames(ctx context.Context) []string {
	keys, err := db.client().Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		log.Println("Redis error:", err)
		return nil
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, keyPrefix))
	}
	return ids
}

func (db *DB) Close() error {
	return db.client().Close()
}
