package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/bot"
	"github.com/razzie/reconchess/pkg/connector"
	"github.com/razzie/reconchess/pkg/engine"
	"github.com/razzie/reconchess/pkg/recon"
	"github.com/razzie/reconchess/pkg/replay"
	"github.com/razzie/reconchess/pkg/store"
)

const recordExpiration = 30 * 24 * time.Hour

func main() {
	sessionURL := flag.String("url", "", "session URL of a remote game")
	local := flag.Bool("local", false, "play a local game against a random player")
	engineKind := flag.String("engine", engine.KindUCI, "engine to use: uci (needs "+engine.EnvExecutable+") or builtin")
	redisURL := flag.String("redis", "", "redis URL to store the game record")
	gifPath := flag.String("gif", "", "write the replay of the bot's belief to this GIF file")
	flag.Parse()

	if *local == (len(*sessionURL) > 0) {
		fmt.Printf("Usage: %s [-local | -url session URL] [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*engineKind, *sessionURL, *redisURL, *gifPath); err != nil {
		log.Fatal(err)
	}
}

func run(engineKind, sessionURL, redisURL, gifPath string) error {
	b, err := bot.Open(engineKind)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var history *recon.GameHistory
	if len(sessionURL) == 0 {
		history, err = playLocal(ctx, b)
	} else {
		history, err = playRemote(ctx, b, sessionURL)
	}
	if err != nil {
		return err
	}

	record := &store.GameRecord{
		ID:      uuid.NewString(),
		Color:   recon.FormatColor(b.Color()),
		Played:  time.Now(),
		History: history,
		Belief:  b.History(),
	}
	log.Printf("[game record: %s]", record.ID)

	if len(redisURL) > 0 {
		saveRecord(ctx, redisURL, record)
	}
	if len(gifPath) > 0 {
		if err := writeGIF(gifPath, history, b.History()); err != nil {
			log.Println("GIF error:", err)
		}
	}
	return nil
}

func playLocal(ctx context.Context, b *bot.Bot) (*recon.GameHistory, error) {
	game := recon.NewGame(b, recon.NewRandomPlayer(0), recon.WithNames("bot", "random"))
	return game.Play(ctx)
}

func playRemote(ctx context.Context, b *bot.Bot, sessionURL string) (*recon.GameHistory, error) {
	conn, err := connector.NewConnection(sessionURL, b)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	done := make(chan *recon.GameHistory, 1)
	go func() {
		done <- conn.Wait()
	}()

	select {
	case history := <-done:
		if history == nil {
			return nil, fmt.Errorf("connection lost before the end of the game")
		}
		return history, nil
	case <-ctx.Done():
		log.Println("[resigning]")
		conn.Resign()
		return nil, ctx.Err()
	}
}

func saveRecord(ctx context.Context, redisURL string, record *store.GameRecord) {
	db, err := store.NewDB(redisURL)
	if err != nil {
		log.Println("Redis error:", err)
		return
	}
	defer db.Close()
	if err := db.SaveGame(ctx, record, recordExpiration); err != nil {
		log.Println("Redis error:", err)
	}
}

func writeGIF(path string, history *recon.GameHistory, belief []recon.Turn) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	startFEN := history.StartFEN
	if len(startFEN) == 0 {
		startFEN = chess.StartingPosition().String()
	}
	return replay.TurnsToGIF(f, startFEN, belief)
}
