package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/notnil/chess"
	blunder "github.com/razzie/blunder/engine"
)

const DefaultMaxDepth = 20

var initTables sync.Once

// Builtin is an in-process engine that needs no external executable
type Builtin struct {
	search   blunder.Search
	maxDepth uint8
	closed   bool
}

func NewBuiltin(maxDepth uint8) *Builtin {
	initTables.Do(func() {
		blunder.InitBitboards()
		blunder.InitTables()
		blunder.InitZobrist()
		blunder.InitEvalBitboards()
		blunder.InitSearchTables()
	})
	b := &Builtin{maxDepth: maxDepth}
	b.search.TT.Resize(blunder.DefaultTTSize, blunder.SearchEntrySize)
	return b
}

func (b *Builtin) BestMove(pos *chess.Position, limit time.Duration) (move *chess.Move, err error) {
	if b.closed {
		return nil, ErrTerminated
	}
	defer func() {
		if r := recover(); r != nil {
			move, err = nil, fmt.Errorf("%w: %v", ErrEngine, r)
		}
	}()

	timeLeft, increment, movesToGo, maxNodeCount := blunder.InfiniteTime, blunder.NoValue, int16(blunder.NoValue), uint64(math.MaxUint64)
	b.search.Timer.Setup(
		timeLeft,
		increment,
		limit.Milliseconds(),
		movesToGo,
		b.maxDepth,
		maxNodeCount,
	)
	b.search.Setup(pos.String())
	best := b.search.Search().String()

	move, err = chess.UCINotation{}.Decode(pos, best)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return move, nil
}

func (b *Builtin) Close() error {
	b.closed = true
	return nil
}
