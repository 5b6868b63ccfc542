package recon

import (
	"context"
	"testing"

	"github.com/notnil/chess"
)

// recordingPlayer plays randomly and checks what the arbiter tells it
type recordingPlayer struct {
	*RandomPlayer
	t           *testing.T
	game        *Game
	color       chess.Color
	turns       int
	senses      int
	ended       int
	illegalMove *Move
}

func (p *recordingPlayer) HandleGameStart(color chess.Color, board *chess.Board, opponentName string) {
	p.color = color
}

func (p *recordingPlayer) ChooseSense(senseActions []chess.Square, moveActions []Move, secondsLeft float64) chess.Square {
	if len(senseActions) != 64 {
		p.t.Errorf("expected 64 sense actions, got %d", len(senseActions))
	}
	if p.game.Position().Turn() != p.color {
		p.t.Errorf("sense requested out of turn")
	}
	return p.RandomPlayer.ChooseSense(senseActions, moveActions, secondsLeft)
}

func (p *recordingPlayer) HandleSenseResult(senseResult []SenseResult) {
	p.senses++
	board := p.game.Position().Board()
	for _, res := range senseResult {
		if board.Piece(res.Square) != res.Piece {
			p.t.Errorf("sense result at %s does not match the true board", res.Square)
		}
	}
}

func (p *recordingPlayer) ChooseMove(moveActions []Move, secondsLeft float64) *Move {
	p.turns++
	if p.illegalMove != nil {
		return p.illegalMove
	}
	return p.RandomPlayer.ChooseMove(moveActions, secondsLeft)
}

func (p *recordingPlayer) HandleMoveResult(requestedMove, takenMove *Move, captured bool, captureSquare chess.Square) {
	if p.illegalMove != nil && takenMove != nil {
		p.t.Errorf("illegal move %s was taken", requestedMove)
	}
	if captured != (captureSquare != chess.NoSquare) {
		p.t.Errorf("capture flag does not match capture square %d", captureSquare)
	}
}

func (p *recordingPlayer) HandleGameEnd(winner chess.Color, reason WinReason, history *GameHistory) {
	p.ended++
}

func TestGameRandomPlayers(t *testing.T) {
	white := &recordingPlayer{RandomPlayer: NewRandomPlayer(1), t: t}
	black := &recordingPlayer{RandomPlayer: NewRandomPlayer(2), t: t}
	game := NewGame(white, black, WithTurnLimit(200))
	white.game, black.game = game, game

	history, err := game.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if white.ended != 1 || black.ended != 1 {
		t.Errorf("game end not reported exactly once")
	}
	if len(history.Turns) != white.turns+black.turns || white.senses != white.turns {
		t.Errorf("unexpected turn count %d (white %d, black %d)", len(history.Turns), white.turns, black.turns)
	}
	if history.Reason == NoReason {
		t.Errorf("missing win reason")
	}
	if last := history.Turns[len(history.Turns)-1]; last.FEN != game.Position().String() {
		t.Errorf("last recorded FEN %s does not match the position %s", last.FEN, game.Position())
	}
}

func TestGameIllegalMoveIsPass(t *testing.T) {
	white := &recordingPlayer{RandomPlayer: NewRandomPlayer(1), t: t, illegalMove: &Move{From: chess.E1, To: chess.E8}}
	black := &recordingPlayer{RandomPlayer: NewRandomPlayer(2), t: t, illegalMove: &Move{From: chess.E8, To: chess.E1}}
	game := NewGame(white, black, WithTurnLimit(10))
	white.game, black.game = game, game

	history, err := game.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if history.Reason != TurnLimit || history.Winner != chess.NoColor {
		t.Errorf("expected draw by turn limit, got %s", history.Reason)
	}
	if game.Position().Board().String() != chess.StartingPosition().Board().String() {
		t.Errorf("board changed although every turn was a pass")
	}
}

func TestGameCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	game := NewGame(NewRandomPlayer(1), NewRandomPlayer(2))
	if _, err := game.Play(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestPassTurn(t *testing.T) {
	pos, err := passTurn(chess.StartingPosition())
	if err != nil {
		t.Fatal(err)
	}
	if fen := pos.String(); fen != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1" {
		t.Errorf("unexpected FEN %s", fen)
	}
	pos, err = passTurn(pos)
	if err != nil {
		t.Fatal(err)
	}
	if fen := pos.String(); fen != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2" {
		t.Errorf("unexpected FEN %s", fen)
	}
}

func TestFlipTurnInvalidMoveCount(t *testing.T) {
	for _, fen := range []string{
		"4k3/8/8/8/8/8/8/4K3 b - - 0 x",
		"4k3/8/8/8/8/8/8/4K3 b - -",
	} {
		if _, err := flipTurn(fen); err == nil {
			t.Errorf("expected error for %q", fen)
		}
	}
	if fen, err := flipTurn("4k3/8/8/8/8/8/8/4K3 w - e3 0 7"); err != nil || fen != "4k3/8/8/8/8/8/8/4K3 b - - 0 7" {
		t.Errorf("unexpected result %q, %v", fen, err)
	}
}
