package bot

import (
	"log"
	"math/rand"
	"time"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/engine"
	"github.com/razzie/reconchess/pkg/recon"
)

// Bot is a recon chess player that keeps a belief board and asks an engine for moves.
// A Bot plays a single game and owns its engine until the game ends.
type Bot struct {
	engine      engine.Engine
	engineAlive bool
	rnd         *rand.Rand

	color          chess.Color
	belief         *Belief
	turn           int
	numPieces      int
	capturedNum    int
	capturedSquare chess.Square
	kingSearch     *kingSearch

	lastSense chess.Square
	history   []recon.Turn
}

type Option func(*Bot)

// WithRand makes the random choices of the bot reproducible
func WithRand(rnd *rand.Rand) Option {
	return func(b *Bot) {
		b.rnd = rnd
	}
}

func New(eng engine.Engine, opts ...Option) *Bot {
	b := &Bot{
		engine:      eng,
		engineAlive: true,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.reset(chess.White, chess.StartingPosition().Board())
	return b
}

// Open starts an engine of the given kind and returns a bot owning it.
// It fails if the engine is misconfigured.
func Open(kind string, opts ...Option) (*Bot, error) {
	eng, err := engine.New(kind)
	if err != nil {
		return nil, err
	}
	return New(eng, opts...), nil
}

func (b *Bot) reset(color chess.Color, board *chess.Board) {
	b.color = color
	b.belief = NewBelief(board)
	b.turn = 0
	b.numPieces = initialPieces
	b.capturedNum = 0
	b.capturedSquare = chess.NoSquare
	b.kingSearch = newKingSearch()
	b.lastSense = chess.NoSquare
	b.history = nil
}

func (b *Bot) HandleGameStart(color chess.Color, board *chess.Board, opponentName string) {
	log.Printf("[game start: playing %s against %s]", color.Name(), opponentName)
	b.reset(color, board)
}

func (b *Bot) HandleOpponentMoveResult(capturedMyPiece bool, captureSquare chess.Square) {
	b.capturedSquare = chess.NoSquare
	if capturedMyPiece {
		b.belief.Remove(captureSquare)
		b.capturedSquare = captureSquare
	}
}

func (b *Bot) ChooseSense(senseActions []chess.Square, moveActions []recon.Move, secondsLeft float64) chess.Square {
	req := &senseRequest{
		senseActions: append([]chess.Square(nil), senseActions...),
		moveActions:  moveActions,
		secondsLeft:  secondsLeft,
	}
	b.lastSense = chess.NoSquare
	for _, policy := range sensePolicies {
		if sq, ok := policy.choose(b, req); ok {
			b.lastSense = sq
			break
		}
	}
	return b.lastSense
}

func (b *Bot) HandleSenseResult(senseResult []recon.SenseResult) {
	opponentKing := chess.NewPiece(chess.King, b.color.Other())
	for _, res := range senseResult {
		b.belief.Set(res.Square, res.Piece)
		if res.Piece == opponentKing {
			b.kingSearch.locate(res.Square)
		} else if sq, ok := b.kingSearch.located(); ok && sq == res.Square {
			b.kingSearch.forget()
		}
	}
}

func (b *Bot) ChooseMove(moveActions []recon.Move, secondsLeft float64) *recon.Move {
	b.turn++
	return b.selectMove(moveActions)
}

func (b *Bot) HandleMoveResult(requestedMove, takenMove *recon.Move, capturedOpponentPiece bool, captureSquare chess.Square) {
	captured := chess.NoSquare
	if capturedOpponentPiece {
		b.capturedNum++
		captured = captureSquare
	}
	if takenMove != nil {
		b.belief.Apply(*takenMove, captured)
	}
	b.history = append(b.history, recon.Turn{
		Color:         b.color,
		SenseSquare:   b.lastSense,
		RequestedMove: requestedMove,
		TakenMove:     takenMove,
		CaptureSquare: captureSquare,
		FEN:           b.belief.FEN(b.color.Other()),
	})
}

func (b *Bot) HandleGameEnd(winner chess.Color, reason recon.WinReason, history *recon.GameHistory) {
	switch winner {
	case b.color:
		log.Printf("[game over: won by %s]", reason)
	case chess.NoColor:
		log.Printf("[game over: draw by %s]", reason)
	default:
		log.Printf("[game over: lost by %s]", reason)
	}
	b.Close()
}

// Close terminates the engine. Only the first call has an effect.
func (b *Bot) Close() error {
	if !b.engineAlive {
		return nil
	}
	b.engineAlive = false
	if err := b.engine.Close(); err != nil {
		log.Println("Engine error:", err)
		return err
	}
	return nil
}

// Color returns the color the bot plays in the current game
func (b *Bot) Color() chess.Color {
	return b.color
}

// Belief returns the bot's current belief board
func (b *Bot) Belief() *Belief {
	return b.belief
}

// History returns the bot's own view of every turn it played, with the belief board after each move
func (b *Bot) History() []recon.Turn {
	return b.history
}
