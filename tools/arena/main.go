package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/razzie/reconchess/pkg/arena"
	"github.com/razzie/reconchess/pkg/bot"
	"github.com/razzie/reconchess/pkg/recon"
	"github.com/razzie/reconchess/pkg/store"
)

func main() {
	games := flag.Int("games", 10, "number of games")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "number of games played at the same time")
	engineKind := flag.String("engine", "", "engine to use: uci or builtin")
	turnLimit := flag.Int("turns", recon.DefaultTurnLimit, "turn limit of a game")
	clock := flag.Duration("clock", recon.DefaultClock, "time available to each player")
	fen := flag.String("fen", "", "custom start position")
	redisURL := flag.String("redis", "", "redis URL to store the game records")
	flag.Parse()

	if err := run(*games, *concurrency, *engineKind, *turnLimit, *clock, *fen, *redisURL); err != nil {
		log.Fatal(err)
	}
}

func run(games, concurrency int, engineKind string, turnLimit int, clock time.Duration, fen, redisURL string) error {
	opts := []recon.GameOption{recon.WithTurnLimit(turnLimit), recon.WithClock(clock)}
	if len(fen) > 0 {
		opt, err := recon.WithFEN(fen)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newBot := func() (*bot.Bot, error) {
		return bot.Open(engineKind)
	}
	result, err := arena.Run(ctx, games, concurrency, newBot, opts...)
	if err != nil {
		return err
	}
	log.Println("result:", result)

	if len(redisURL) == 0 {
		return nil
	}
	db, err := store.NewDB(redisURL)
	if err != nil {
		return err
	}
	defer db.Close()
	for _, game := range result.Games {
		record := &store.GameRecord{
			ID:       uuid.NewString(),
			Color:    recon.FormatColor(game.BotColor),
			Opponent: "random",
			Played:   time.Now(),
			History:  game.History,
			Belief:   game.Belief,
		}
		if err := db.SaveGame(ctx, record, 0); err != nil {
			log.Println("Redis error:", err)
			continue
		}
		log.Printf("[game %d saved: %s]", game.Number, record.ID)
	}
	return nil
}
