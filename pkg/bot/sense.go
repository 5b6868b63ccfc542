package bot

import (
	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

// openingSenses are sensed on the first two turns to spot the opponent's development
var openingSenses = []chess.Square{chess.B5, chess.G5}

const (
	initialPieces   = 16
	endgamePieces   = 6
	endgameCaptures = 9
)

type senseRequest struct {
	senseActions []chess.Square
	moveActions  []recon.Move
	secondsLeft  float64
}

// sensePolicy reports false when it has no opinion and the next policy should decide
type sensePolicy struct {
	name   string
	choose func(*Bot, *senseRequest) (chess.Square, bool)
}

var sensePolicies = []sensePolicy{
	{"opening", (*Bot).senseOpening},
	{"capture", (*Bot).senseCapture},
	{"endgame", (*Bot).senseEndgame},
	{"default", (*Bot).senseDefault},
}

func (b *Bot) senseOpening(*senseRequest) (chess.Square, bool) {
	if b.turn < len(openingSenses) {
		return openingSenses[b.turn], true
	}
	return chess.NoSquare, false
}

// senseCapture looks at the square where one of our pieces was just taken
func (b *Bot) senseCapture(*senseRequest) (chess.Square, bool) {
	if b.capturedSquare == chess.NoSquare {
		return chess.NoSquare, false
	}
	b.numPieces--
	return b.capturedSquare, true
}

func (b *Bot) inEndgame() bool {
	return b.numPieces <= endgamePieces || b.capturedNum >= endgameCaptures
}

// senseEndgame hunts for the opponent king
func (b *Bot) senseEndgame(*senseRequest) (chess.Square, bool) {
	if !b.inEndgame() {
		return chess.NoSquare, false
	}
	if sq, ok := b.kingSearch.located(); ok {
		return sq, true
	}
	sq, ok := b.kingSearch.pop()
	if !ok {
		return chess.NoSquare, false
	}
	if b.belief.Piece(sq) == chess.NewPiece(chess.King, b.color.Other()) {
		b.kingSearch.locate(sq)
	}
	return sq, true
}

// senseDefault checks the destination of the move we are about to make if it may be a capture,
// otherwise it picks a random square not occupied by our own pieces
func (b *Bot) senseDefault(req *senseRequest) (chess.Square, bool) {
	if move := b.selectMove(req.moveActions); move != nil && b.belief.Piece(move.To) != chess.NoPiece {
		return move.To, true
	}

	candidates := make([]chess.Square, 0, len(req.senseActions))
	for _, sq := range req.senseActions {
		if !b.belief.Has(b.color, sq) {
			candidates = append(candidates, sq)
		}
	}
	if len(candidates) == 0 {
		candidates = req.senseActions
	}
	if len(candidates) == 0 {
		return chess.NoSquare, false
	}
	return candidates[b.rnd.Intn(len(candidates))], true
}
