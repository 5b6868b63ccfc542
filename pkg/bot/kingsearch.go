package bot

import "github.com/notnil/chess"

// kingSearchSquares are the squares where the opponent king tends to hide late in the game.
// They are searched from the back of the list.
var kingSearchSquares = []chess.Square{
	chess.D7, chess.B7,
	chess.G7, chess.D5,
	chess.G5, chess.B5,
	chess.B3, chess.D3,
	chess.G3, chess.B2,
	chess.D2, chess.G2,
}

type kingSearch struct {
	queue []chess.Square
	found chess.Square
}

func newKingSearch() *kingSearch {
	return &kingSearch{
		queue: append([]chess.Square(nil), kingSearchSquares...),
		found: chess.NoSquare,
	}
}

// pop removes the next candidate square. It reports false once the queue is exhausted.
func (ks *kingSearch) pop() (chess.Square, bool) {
	if len(ks.queue) == 0 {
		return chess.NoSquare, false
	}
	sq := ks.queue[len(ks.queue)-1]
	ks.queue = ks.queue[:len(ks.queue)-1]
	return sq, true
}

func (ks *kingSearch) locate(sq chess.Square) {
	ks.found = sq
}

func (ks *kingSearch) forget() {
	ks.found = chess.NoSquare
}

func (ks *kingSearch) located() (chess.Square, bool) {
	return ks.found, ks.found != chess.NoSquare
}

func (ks *kingSearch) remaining() int {
	return len(ks.queue)
}

