package recon

import (
	"math/rand"
	"time"

	"github.com/notnil/chess"
)

// RandomPlayer senses and moves uniformly at random
type RandomPlayer struct {
	rnd *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomPlayer{rnd: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) HandleGameStart(chess.Color, *chess.Board, string) {}

func (p *RandomPlayer) HandleOpponentMoveResult(bool, chess.Square) {}

func (p *RandomPlayer) ChooseSense(senseActions []chess.Square, _ []Move, _ float64) chess.Square {
	return senseActions[p.rnd.Intn(len(senseActions))]
}

func (p *RandomPlayer) HandleSenseResult([]SenseResult) {}

func (p *RandomPlayer) ChooseMove(moveActions []Move, _ float64) *Move {
	i := p.rnd.Intn(len(moveActions) + 1)
	if i == len(moveActions) {
		return nil
	}
	return &moveActions[i]
}

func (p *RandomPlayer) HandleMoveResult(_, _ *Move, _ bool, _ chess.Square) {}

func (p *RandomPlayer) HandleGameEnd(chess.Color, WinReason, *GameHistory) {}
