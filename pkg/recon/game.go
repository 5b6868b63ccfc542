package recon

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/notnil/chess"
)

const (
	DefaultClock     = 15 * time.Minute
	DefaultTurnLimit = 500
)

// Game is a local arbiter that owns the true position and drives two players through their turns.
// Requested moves are accepted only if they are legal in the true position, otherwise the turn is a pass.
// It approximates recon rules with standard chess legality and is meant for local matches and tests.
type Game struct {
	players   map[chess.Color]Player
	names     map[chess.Color]string
	clocks    map[chess.Color]time.Duration
	turnLimit int
	pos       *chess.Position
	history   *GameHistory
}

type GameOption func(*Game)

func WithClock(clock time.Duration) GameOption {
	return func(g *Game) {
		g.clocks[chess.White] = clock
		g.clocks[chess.Black] = clock
	}
}

func WithTurnLimit(turns int) GameOption {
	return func(g *Game) {
		g.turnLimit = turns
	}
}

func WithNames(white, black string) GameOption {
	return func(g *Game) {
		g.names[chess.White] = white
		g.names[chess.Black] = black
	}
}

// WithFEN starts the game from a custom position instead of the standard one
func WithFEN(fen string) (GameOption, error) {
	pos, err := positionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.pos = pos
	}, nil
}

func NewGame(white, black Player, opts ...GameOption) *Game {
	g := &Game{
		players:   map[chess.Color]Player{chess.White: white, chess.Black: black},
		names:     map[chess.Color]string{chess.White: "white", chess.Black: "black"},
		clocks:    map[chess.Color]time.Duration{chess.White: DefaultClock, chess.Black: DefaultClock},
		turnLimit: DefaultTurnLimit,
		pos:       chess.StartingPosition(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.history = &GameHistory{StartFEN: g.pos.String()}
	return g
}

// Play runs the game to completion and returns its history
func (g *Game) Play(ctx context.Context) (*GameHistory, error) {
	for _, color := range []chess.Color{chess.White, chess.Black} {
		g.players[color].HandleGameStart(color, g.pos.Board(), g.names[color.Other()])
	}

	lastCapture := chess.NoSquare
	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if turn >= g.turnLimit {
			return g.finish(chess.NoColor, TurnLimit), nil
		}

		color := g.pos.Turn()
		player := g.players[color]
		start := time.Now()
		secondsLeft := func() float64 {
			return (g.clocks[color] - time.Since(start)).Seconds()
		}

		player.HandleOpponentMoveResult(lastCapture != chess.NoSquare, lastCapture)

		legal := g.pos.ValidMoves()
		moveActions := make([]Move, 0, len(legal))
		for _, m := range legal {
			moveActions = append(moveActions, *MoveFromChess(m))
		}

		senseSquare := player.ChooseSense(AllSquares(), moveActions, secondsLeft())
		player.HandleSenseResult(g.sense(senseSquare))

		requested := player.ChooseMove(moveActions, secondsLeft())
		taken := findMove(legal, requested)
		captureSquare := g.captureSquare(taken)
		player.HandleMoveResult(requested, MoveFromChess(taken), captureSquare != chess.NoSquare, captureSquare)

		g.clocks[color] -= time.Since(start)
		if taken != nil {
			g.pos = g.pos.Update(taken)
		} else {
			pos, err := passTurn(g.pos)
			if err != nil {
				return nil, err
			}
			g.pos = pos
		}
		lastCapture = captureSquare

		g.history.Turns = append(g.history.Turns, Turn{
			Color:         color,
			SenseSquare:   senseSquare,
			RequestedMove: requested,
			TakenMove:     MoveFromChess(taken),
			CaptureSquare: captureSquare,
			FEN:           g.pos.String(),
		})

		if g.clocks[color] <= 0 {
			return g.finish(color.Other(), Timeout), nil
		}
		switch g.pos.Status() {
		case chess.Checkmate:
			return g.finish(color, Checkmate), nil
		case chess.Stalemate:
			return g.finish(chess.NoColor, Stalemate), nil
		}
	}
}

// Position returns the current true position
func (g *Game) Position() *chess.Position {
	return g.pos
}

func (g *Game) sense(center chess.Square) []SenseResult {
	if center < chess.A1 || center > chess.H8 {
		return nil
	}
	board := g.pos.Board()
	window := SenseWindow(center)
	results := make([]SenseResult, 0, len(window))
	for _, sq := range window {
		results = append(results, SenseResult{Square: sq, Piece: board.Piece(sq)})
	}
	return results
}

func (g *Game) captureSquare(move *chess.Move) chess.Square {
	if move == nil {
		return chess.NoSquare
	}
	if move.HasTag(chess.EnPassant) {
		if g.pos.Turn() == chess.White {
			return move.S2() - 8
		}
		return move.S2() + 8
	}
	if g.pos.Board().Piece(move.S2()) != chess.NoPiece {
		return move.S2()
	}
	return chess.NoSquare
}

func (g *Game) finish(winner chess.Color, reason WinReason) *GameHistory {
	g.history.Winner = winner
	g.history.Reason = reason
	for _, color := range []chess.Color{chess.White, chess.Black} {
		g.players[color].HandleGameEnd(winner, reason, g.history)
	}
	return g.history
}

func findMove(legal []*chess.Move, requested *Move) *chess.Move {
	if requested == nil {
		return nil
	}
	for _, m := range legal {
		if m.S1() == requested.From && m.S2() == requested.To && m.Promo() == requested.Promo {
			return m
		}
	}
	return nil
}

func positionFromFEN(fen string) (*chess.Position, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, err
	}
	return pos, nil
}

// passTurn hands the move to the other side without changing the board
func passTurn(pos *chess.Position) (*chess.Position, error) {
	fen, err := flipTurn(pos.String())
	if err != nil {
		return nil, err
	}
	return positionFromFEN(fen)
}

// flipTurn swaps the side to move in a FEN and clears its en passant square
func flipTurn(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return "", fmt.Errorf("invalid FEN: %q", fen)
	}
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		moveCount, err := strconv.Atoi(fields[5])
		if err != nil {
			return "", fmt.Errorf("invalid move count in FEN %q: %w", fen, err)
		}
		fields[1] = "w"
		fields[5] = strconv.Itoa(moveCount + 1)
	}
	fields[3] = "-"
	return strings.Join(fields, " "), nil
}
