package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

// The test needs a running redis, e.g. REDIS_URL=redis://localhost:6379/15
func TestSaveLoadGame(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if len(redisURL) == 0 {
		t.Skip("REDIS_URL is not set")
	}
	db, err := NewDB(redisURL)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	record := &GameRecord{
		ID:     uuid.NewString(),
		Color:  "w",
		Played: time.Now().UTC().Truncate(time.Second),
		History: &recon.GameHistory{
			StartFEN: chess.StartingPosition().String(),
			Winner:   chess.White,
			Reason:   recon.Checkmate,
		},
	}
	if err := db.SaveGame(ctx, record, time.Minute); err != nil {
		t.Fatal(err)
	}
	loaded, err := db.LoadGame(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != record.ID || !loaded.Played.Equal(record.Played) || loaded.History.Winner != chess.White {
		t.Errorf("unexpected record %+v", loaded)
	}

	found := false
	for _, id := range db.ListGames(ctx) {
		found = found || id == record.ID
	}
	if !found {
		t.Errorf("game %s not listed", record.ID)
	}

	if _, err := db.LoadGame(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewDBInvalidURL(t *testing.T) {
	if _, err := NewDB("not a redis url"); err == nil {
		t.Fatal("expected error")
	}
}
