package bot

import (
	"fmt"
	"log"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

// Belief is the bot's private model of the board. It is patched from sense results and move
// outcomes and may drift from the true position between updates.
type Belief struct {
	pieces map[chess.Square]chess.Piece
	rights chess.CastleRights
}

func NewBelief(board *chess.Board) *Belief {
	b := &Belief{
		pieces: make(map[chess.Square]chess.Piece),
		rights: chess.CastleRights("KQkq"),
	}
	if board != nil {
		for sq, p := range board.SquareMap() {
			b.pieces[sq] = p
		}
	}
	b.pruneRights()
	return b
}

func (b *Belief) Piece(sq chess.Square) chess.Piece {
	return b.pieces[sq]
}

// Has reports whether sq holds a piece of the given color
func (b *Belief) Has(color chess.Color, sq chess.Square) bool {
	p, ok := b.pieces[sq]
	return ok && p.Color() == color
}

func (b *Belief) Set(sq chess.Square, p chess.Piece) {
	if p == chess.NoPiece {
		b.Remove(sq)
		return
	}
	b.pieces[sq] = p
	b.pruneRights()
}

func (b *Belief) Remove(sq chess.Square) {
	delete(b.pieces, sq)
	b.pruneRights()
}

// Count returns the number of pieces of the given color
func (b *Belief) Count(color chess.Color) (n int) {
	for _, p := range b.pieces {
		if p.Color() == color {
			n++
		}
	}
	return
}

// Apply plays a move on the belief board. captureSquare is the square the framework reported
// a capture on, or chess.NoSquare. The piece there is removed before the move is made, which
// also covers en passant.
func (b *Belief) Apply(m recon.Move, captureSquare chess.Square) {
	if captureSquare != chess.NoSquare {
		b.Remove(captureSquare)
	}
	p, ok := b.pieces[m.From]
	if !ok {
		return
	}
	pos, err := b.Position(p.Color())
	if err != nil {
		log.Printf("[belief: cannot apply %s] %v", m, err)
		return
	}
	move, err := chess.UCINotation{}.Decode(pos, m.String())
	if err != nil {
		log.Printf("[belief: cannot apply %s] %v", m, err)
		return
	}
	next := pos.Update(move)
	b.pieces = next.Board().SquareMap()
	b.rights = next.CastleRights()
}

// KingSquare returns the lowest square believed to hold the king of the given color
func (b *Belief) KingSquare(color chess.Color) chess.Square {
	king := chess.NewPiece(chess.King, color)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if b.pieces[sq] == king {
			return sq
		}
	}
	return chess.NoSquare
}

// Attackers returns the squares of the pieces of the given color that attack sq, in ascending order
func (b *Belief) Attackers(color chess.Color, sq chess.Square) []chess.Square {
	own, occupied := b.bitboards(color)
	target := uint8(sq)

	attackers := dragontoothmg.CalculateRookMoveBitboard(target, occupied) & (own.Rooks | own.Queens)
	attackers |= dragontoothmg.CalculateBishopMoveBitboard(target, occupied) & (own.Bishops | own.Queens)
	attackers |= knightMasks[sq] & own.Knights
	attackers |= kingMasks[sq] & own.Kings
	attackers |= pawnAttackerMask(sq, color) & own.Pawns

	var squares []chess.Square
	for ; attackers != 0; attackers &= attackers - 1 {
		squares = append(squares, chess.Square(bits.TrailingZeros64(attackers)))
	}
	return squares
}

func (b *Belief) bitboards(color chess.Color) (own dragontoothmg.Bitboards, occupied uint64) {
	for sq, p := range b.pieces {
		bit := uint64(1) << uint(sq)
		occupied |= bit
		if p.Color() != color {
			continue
		}
		own.All |= bit
		switch p.Type() {
		case chess.Pawn:
			own.Pawns |= bit
		case chess.Knight:
			own.Knights |= bit
		case chess.Bishop:
			own.Bishops |= bit
		case chess.Rook:
			own.Rooks |= bit
		case chess.Queen:
			own.Queens |= bit
		case chess.King:
			own.Kings |= bit
		}
	}
	return
}

// FEN encodes the belief board with the given side to move and no move history
func (b *Belief) FEN(turn chess.Color) string {
	return fmt.Sprintf("%s %s %s - 0 1", chess.NewBoard(b.pieces).String(), turn.String(), b.castleRights())
}

// Position builds a position from the belief board with the given side to move and no move history
func (b *Belief) Position(turn chess.Color) (*chess.Position, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(b.FEN(turn))); err != nil {
		return nil, err
	}
	return pos, nil
}

var castles = []struct {
	letter string
	color  chess.Color
	side   chess.Side
	king   chess.Square
	rook   chess.Square
}{
	{"K", chess.White, chess.KingSide, chess.E1, chess.H1},
	{"Q", chess.White, chess.QueenSide, chess.E1, chess.A1},
	{"k", chess.Black, chess.KingSide, chess.E8, chess.H8},
	{"q", chess.Black, chess.QueenSide, chess.E8, chess.A8},
}

// castleRights returns the rights not yet lost whose king and rook are still believed to be
// on their home squares
func (b *Belief) castleRights() string {
	var rights string
	for _, c := range castles {
		if b.rights.CanCastle(c.color, c.side) &&
			b.pieces[c.king] == chess.NewPiece(chess.King, c.color) &&
			b.pieces[c.rook] == chess.NewPiece(chess.Rook, c.color) {
			rights += c.letter
		}
	}
	if len(rights) == 0 {
		return "-"
	}
	return rights
}

// pruneRights drops a castling right for good once its king or rook has left the home square
func (b *Belief) pruneRights() {
	b.rights = chess.CastleRights(b.castleRights())
}

var knightMasks, kingMasks [64]uint64

func init() {
	knightSteps := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		knightMasks[sq] = stepMask(sq, knightSteps)
		kingMasks[sq] = stepMask(sq, kingSteps)
	}
}

func stepMask(sq int, steps [][2]int) (mask uint64) {
	file, rank := sq%8, sq/8
	for _, step := range steps {
		f, r := file+step[0], rank+step[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			mask |= uint64(1) << uint(r*8+f)
		}
	}
	return
}

// pawnAttackerMask returns the squares from which a pawn of the given color attacks sq
func pawnAttackerMask(sq chess.Square, color chess.Color) uint64 {
	dir := -1
	if color == chess.Black {
		dir = 1
	}
	return stepMask(int(sq), [][2]int{{-1, dir}, {1, dir}})
}
