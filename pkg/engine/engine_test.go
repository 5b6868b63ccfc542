package engine

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/notnil/chess"
)

func TestNewFromEnvMissingVariable(t *testing.T) {
	t.Setenv(EnvExecutable, "")
	if _, err := NewFromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewFromEnvMissingExecutable(t *testing.T) {
	t.Setenv(EnvExecutable, filepath.Join(t.TempDir(), "stockfish"))
	if _, err := NewFromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("leela"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestBuiltinBestMove(t *testing.T) {
	eng := NewBuiltin(4)
	defer eng.Close()

	pos := chess.StartingPosition()
	move, err := eng.BestMove(pos, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	valid := false
	for _, m := range pos.ValidMoves() {
		if m.S1() == move.S1() && m.S2() == move.S2() {
			valid = true
		}
	}
	if !valid {
		t.Errorf("engine returned illegal move %s", move)
	}
}

func TestBuiltinClosed(t *testing.T) {
	eng := NewBuiltin(4)
	eng.Close()
	eng.Close()
	if _, err := eng.BestMove(chess.StartingPosition(), 100*time.Millisecond); !errors.Is(err, ErrTerminated) {
		t.Fatalf("expected ErrTerminated, got %v", err)
	}
}
