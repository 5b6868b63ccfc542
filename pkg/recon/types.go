package recon

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Move is a move request or a move outcome. A nil *Move means pass.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// MoveFromChess converts a move decoded by the chess package
func MoveFromChess(m *chess.Move) *Move {
	if m == nil {
		return nil
	}
	return &Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

// String returns the move in UCI notation (like e7e8q)
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != chess.NoPieceType {
		s += m.Promo.String()
	}
	return s
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	move, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = move
	return nil
}

// ParseMove parses a move in UCI notation
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch strings.ToLower(s[4:]) {
		case "q":
			m.Promo = chess.Queen
		case "r":
			m.Promo = chess.Rook
		case "b":
			m.Promo = chess.Bishop
		case "n":
			m.Promo = chess.Knight
		default:
			return Move{}, fmt.Errorf("invalid promotion: %q", s)
		}
	}
	return m, nil
}

// ParseSquare parses a square in algebraic notation (like e4)
func ParseSquare(s string) (chess.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return chess.Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}

// FormatSquare is the inverse of ParseSquare, returning an empty string for chess.NoSquare
func FormatSquare(sq chess.Square) string {
	if sq < chess.A1 || sq > chess.H8 {
		return ""
	}
	return sq.String()
}

var fenPieces = map[byte]chess.Piece{
	'K': chess.WhiteKing,
	'Q': chess.WhiteQueen,
	'R': chess.WhiteRook,
	'B': chess.WhiteBishop,
	'N': chess.WhiteKnight,
	'P': chess.WhitePawn,
	'k': chess.BlackKing,
	'q': chess.BlackQueen,
	'r': chess.BlackRook,
	'b': chess.BlackBishop,
	'n': chess.BlackKnight,
	'p': chess.BlackPawn,
}

// PieceFromFEN parses a single FEN piece letter. An empty string means no piece.
func PieceFromFEN(s string) (chess.Piece, error) {
	if len(s) == 0 {
		return chess.NoPiece, nil
	}
	if p, ok := fenPieces[s[0]]; ok && len(s) == 1 {
		return p, nil
	}
	return chess.NoPiece, fmt.Errorf("invalid piece: %q", s)
}

// PieceToFEN returns the FEN letter of a piece, or an empty string for chess.NoPiece
func PieceToFEN(p chess.Piece) string {
	for letter, piece := range fenPieces {
		if piece == p {
			return string(letter)
		}
	}
	return ""
}

// SenseResult is the true content of one sensed square
type SenseResult struct {
	Square chess.Square
	Piece  chess.Piece
}

// SenseWindow returns the 3x3 block of squares centered on sq, clipped to the board
func SenseWindow(sq chess.Square) []chess.Square {
	file, rank := int(sq)%8, int(sq)/8
	squares := make([]chess.Square, 0, 9)
	for r := rank + 1; r >= rank-1; r-- {
		for f := file - 1; f <= file+1; f++ {
			if f < 0 || f > 7 || r < 0 || r > 7 {
				continue
			}
			squares = append(squares, chess.Square(r*8+f))
		}
	}
	return squares
}

// AllSquares returns every square of the board, all of which are valid sense actions
func AllSquares() []chess.Square {
	squares := make([]chess.Square, 0, 64)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		squares = append(squares, sq)
	}
	return squares
}

type WinReason int

const (
	NoReason WinReason = iota
	KingCapture
	Timeout
	Resign
	TurnLimit
	Checkmate
	Stalemate
)

var winReasonNames = []string{"", "king capture", "timeout", "resign", "turn limit", "checkmate", "stalemate"}

func (r WinReason) String() string {
	if r < 0 || int(r) >= len(winReasonNames) {
		return "unknown"
	}
	return winReasonNames[r]
}

// Turn records what happened during one player's turn
type Turn struct {
	Color         chess.Color
	SenseSquare   chess.Square
	RequestedMove *Move
	TakenMove     *Move
	CaptureSquare chess.Square
	FEN           string
}

// GameHistory is the full record of a finished game as seen by the arbiter
type GameHistory struct {
	StartFEN string
	Turns    []Turn
	Winner   chess.Color
	Reason   WinReason
}
