package bot

import (
	"log"
	"time"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

// MoveTime is the time the engine gets for each move
const MoveTime = 500 * time.Millisecond

// selectMove picks a move without advancing the turn counter. A nil move means pass.
func (b *Bot) selectMove(moveActions []recon.Move) *recon.Move {
	if move := b.kingCapture(); move != nil {
		return move
	}

	pos, err := b.belief.Position(b.color)
	if err == nil {
		var move *chess.Move
		move, err = b.engine.BestMove(pos, MoveTime)
		if err == nil {
			return recon.MoveFromChess(move)
		}
	}
	log.Printf("[engine bad state at %q] %v", b.belief.FEN(b.color), err)
	return b.randomMove(moveActions)
}

// kingCapture returns a move taking the opponent king if any of our pieces attacks it
func (b *Bot) kingCapture() *recon.Move {
	kingSq := b.belief.KingSquare(b.color.Other())
	if kingSq == chess.NoSquare {
		return nil
	}
	attackers := b.belief.Attackers(b.color, kingSq)
	if len(attackers) == 0 {
		return nil
	}
	move := &recon.Move{From: attackers[0], To: kingSq}
	if b.belief.Piece(move.From).Type() == chess.Pawn && (kingSq.Rank() == chess.Rank1 || kingSq.Rank() == chess.Rank8) {
		move.Promo = chess.Queen
	}
	return move
}

// randomMove picks uniformly among the legal moves and passing
func (b *Bot) randomMove(moveActions []recon.Move) *recon.Move {
	i := b.rnd.Intn(len(moveActions) + 1)
	if i == len(moveActions) {
		return nil
	}
	move := moveActions[i]
	return &move
}
