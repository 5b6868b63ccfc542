package recon

import (
	"github.com/notnil/chess"
)

// Player is implemented by anything that can take part in a game.
// The callbacks of a turn are invoked in this order:
// HandleOpponentMoveResult, ChooseSense, HandleSenseResult, ChooseMove, HandleMoveResult
type Player interface {
	HandleGameStart(color chess.Color, board *chess.Board, opponentName string)
	HandleOpponentMoveResult(capturedMyPiece bool, captureSquare chess.Square)
	ChooseSense(senseActions []chess.Square, moveActions []Move, secondsLeft float64) chess.Square
	HandleSenseResult(senseResult []SenseResult)
	ChooseMove(moveActions []Move, secondsLeft float64) *Move
	HandleMoveResult(requestedMove, takenMove *Move, capturedOpponentPiece bool, captureSquare chess.Square)
	HandleGameEnd(winner chess.Color, reason WinReason, history *GameHistory)
}
