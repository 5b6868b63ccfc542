package bot

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

func TestBeliefApply(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     string
		capture  chess.Square
		expected string
	}{
		{"quiet", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "e2e4", chess.NoSquare, "4k3/8/8/8/4P3/8/8/4K3"},
		{"capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", chess.D5, "4k3/8/8/3P4/8/8/8/4K3"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1", "e5d6", chess.D5, "4k3/8/3P4/8/8/8/8/4K3"},
		{"diagonal onto stale empty square", "4k3/8/8/8/3nP3/8/8/4K3 w - - 0 1", "e4d5", chess.D5, "4k3/8/8/3P4/3n4/8/8/4K3"},
		{"diagonal without capture", "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1", "e5d6", chess.NoSquare, "4k3/8/3P4/3p4/8/8/8/4K3"},
		{"promotion", "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8n", chess.NoSquare, "1N2k3/8/8/8/8/8/8/4K3"},
		{"king side castle", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", chess.NoSquare, "4k3/8/8/8/8/8/8/5RK1"},
		{"queen side castle", "r3k3/8/8/8/8/8/8/4K3 b q - 0 1", "e8c8", chess.NoSquare, "2kr4/8/8/8/8/8/8/4K3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBelief(boardFromFEN(t, tt.fen))
			move, err := recon.ParseMove(tt.move)
			if err != nil {
				t.Fatal(err)
			}
			b.Apply(move, tt.capture)
			if board := chess.NewBoard(b.pieces).String(); board != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, board)
			}
		})
	}
}

func TestBeliefAttackers(t *testing.T) {
	b := NewBelief(boardFromFEN(t, "4k3/8/8/2N5/8/1B2R3/3P4/Q3K3 w - - 0 1"))
	tests := []struct {
		target   chess.Square
		color    chess.Color
		expected []chess.Square
	}{
		{chess.E8, chess.White, []chess.Square{chess.E3}},
		{chess.E3, chess.White, []chess.Square{chess.D2}},
		{chess.D7, chess.White, []chess.Square{chess.C5}},
		{chess.A8, chess.White, []chess.Square{chess.A1}},
		{chess.F7, chess.White, []chess.Square{chess.B3}},
		{chess.D1, chess.White, []chess.Square{chess.A1, chess.E1, chess.B3}},
		{chess.D7, chess.Black, []chess.Square{chess.E8}},
		{chess.H5, chess.White, nil},
	}
	for _, tt := range tests {
		attackers := b.Attackers(tt.color, tt.target)
		if len(attackers) != len(tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.target, tt.expected, attackers)
			continue
		}
		for i := range attackers {
			if attackers[i] != tt.expected[i] {
				t.Errorf("%s: expected %v, got %v", tt.target, tt.expected, attackers)
			}
		}
	}
}

func TestBeliefPosition(t *testing.T) {
	b := NewBelief(chess.StartingPosition().Board())
	if fen := b.FEN(chess.Black); fen != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1" {
		t.Errorf("unexpected FEN %s", fen)
	}

	b.Apply(recon.Move{From: chess.H1, To: chess.H3}, chess.NoSquare)
	b.Remove(chess.A8)
	pos, err := b.Position(chess.White)
	if err != nil {
		t.Fatal(err)
	}
	if fen := pos.String(); fen != "1nbqkbnr/pppppppp/8/8/8/7R/PPPPPPPP/RNBQKBN1 w Qk - 0 1" {
		t.Errorf("unexpected FEN %s", fen)
	}
}

func TestBeliefKingSquare(t *testing.T) {
	b := NewBelief(chess.StartingPosition().Board())
	if sq := b.KingSquare(chess.Black); sq != chess.E8 {
		t.Errorf("expected e8, got %s", sq)
	}
	b.Remove(chess.E8)
	if sq := b.KingSquare(chess.Black); sq != chess.NoSquare {
		t.Errorf("expected no king, got %s", sq)
	}
}

func TestBeliefCastleRightsStayLost(t *testing.T) {
	b := NewBelief(boardFromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))
	b.Apply(recon.Move{From: chess.E1, To: chess.E2}, chess.NoSquare)
	b.Apply(recon.Move{From: chess.E2, To: chess.E1}, chess.NoSquare)
	b.Remove(chess.H8)
	b.Set(chess.H8, chess.BlackRook)
	if fen := b.FEN(chess.White); fen != "r3k2r/8/8/8/8/8/8/R3K2R w q - 0 1" {
		t.Errorf("unexpected FEN %s", fen)
	}
}
