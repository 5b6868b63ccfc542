package arena

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/bot"
	"github.com/razzie/reconchess/pkg/recon"
	"golang.org/x/sync/errgroup"
)

// BotFactory creates a fresh bot with its own engine for every game
type BotFactory func() (*bot.Bot, error)

type gameInfo struct {
	number     int
	botIsWhite bool
}

type GameResult struct {
	Number   int
	BotColor chess.Color
	History  *recon.GameHistory
	Belief   []recon.Turn
}

type Result struct {
	Wins   int
	Losses int
	Draws  int
	Games  []GameResult
}

func (r *Result) String() string {
	return fmt.Sprintf("+%d -%d =%d", r.Wins, r.Losses, r.Draws)
}

func (r *Result) add(game GameResult) {
	switch game.History.Winner {
	case game.BotColor:
		r.Wins++
	case chess.NoColor:
		r.Draws++
	default:
		r.Losses++
	}
	r.Games = append(r.Games, game)
}

// Run plays the bot against a random player, alternating colors, with up to concurrency games at a time
func Run(ctx context.Context, games, concurrency int, newBot BotFactory, opts ...recon.GameOption) (*Result, error) {
	log.Println("arena started")
	defer log.Println("arena finished")

	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)

	gameInfos := make(chan gameInfo)
	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- gameInfo{number: i + 1, botIsWhite: i%2 == 0}:
			}
		}
		return nil
	})

	var mtx sync.Mutex
	result := &Result{}
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for info := range gameInfos {
				game, err := playGame(ctx, newBot, info, opts)
				if err != nil {
					return err
				}
				mtx.Lock()
				result.add(game)
				log.Printf("[game %d finished: %s by %s] %s", info.number, winnerName(game.History.Winner), game.History.Reason, result)
				mtx.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func playGame(ctx context.Context, newBot BotFactory, info gameInfo, opts []recon.GameOption) (GameResult, error) {
	b, err := newBot()
	if err != nil {
		return GameResult{}, err
	}
	defer b.Close()

	opponent := recon.NewRandomPlayer(int64(info.number))
	var game *recon.Game
	botColor := chess.White
	if info.botIsWhite {
		game = recon.NewGame(b, opponent, withNames("bot", "random", opts)...)
	} else {
		botColor = chess.Black
		game = recon.NewGame(opponent, b, withNames("random", "bot", opts)...)
	}

	history, err := game.Play(ctx)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{
		Number:   info.number,
		BotColor: botColor,
		History:  history,
		Belief:   b.History(),
	}, nil
}

func withNames(white, black string, opts []recon.GameOption) []recon.GameOption {
	return append([]recon.GameOption{recon.WithNames(white, black)}, opts...)
}

func winnerName(c chess.Color) string {
	if c == chess.NoColor {
		return "draw"
	}
	return c.Name()
}
