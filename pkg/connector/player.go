package connector

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/recon"
)

// Player exposes a recon.Player to the game server as RPC methods (Player.ChooseMove etc.)
type Player struct {
	conn   *Connection
	player recon.Player
}

func (p *Player) HandleGameStart(msg *GameStart, unused *bool) error {
	color, err := recon.ParseColor(msg.Color)
	if err != nil {
		return err
	}
	if color == chess.NoColor {
		return fmt.Errorf("missing color")
	}
	board := chess.StartingPosition().Board()
	if len(msg.FEN) > 0 {
		pos := &chess.Position{}
		if err := pos.UnmarshalText([]byte(msg.FEN)); err != nil {
			return err
		}
		board = pos.Board()
	}
	p.player.HandleGameStart(color, board, msg.Opponent)
	return nil
}

func (p *Player) HandleOpponentMoveResult(msg *OpponentMoveResult, unused *bool) error {
	sq, err := recon.ParseOptionalSquare(msg.Square)
	if err != nil {
		return err
	}
	p.player.HandleOpponentMoveResult(msg.Captured, sq)
	return nil
}

func (p *Player) ChooseSense(req *SenseRequest, square *string) error {
	senseActions := make([]chess.Square, 0, len(req.SenseActions))
	for _, s := range req.SenseActions {
		sq, err := recon.ParseSquare(s)
		if err != nil {
			return err
		}
		senseActions = append(senseActions, sq)
	}
	if len(senseActions) == 0 {
		senseActions = recon.AllSquares()
	}
	*square = recon.FormatSquare(p.player.ChooseSense(senseActions, req.MoveActions, req.SecondsLeft))
	return nil
}

func (p *Player) HandleSenseResult(result []SensedSquare, unused *bool) error {
	senseResult := make([]recon.SenseResult, 0, len(result))
	for _, res := range result {
		sq, err := recon.ParseSquare(res.Square)
		if err != nil {
			return err
		}
		piece, err := recon.PieceFromFEN(res.Piece)
		if err != nil {
			return err
		}
		senseResult = append(senseResult, recon.SenseResult{Square: sq, Piece: piece})
	}
	p.player.HandleSenseResult(senseResult)
	return nil
}

// ChooseMove replies with the move in UCI notation or an empty string to pass
func (p *Player) ChooseMove(req *MoveRequest, move *string) error {
	*move = ""
	if m := p.player.ChooseMove(req.MoveActions, req.SecondsLeft); m != nil {
		*move = m.String()
	}
	return nil
}

func (p *Player) HandleMoveResult(msg *MoveResult, unused *bool) error {
	sq, err := recon.ParseOptionalSquare(msg.Square)
	if err != nil {
		return err
	}
	p.player.HandleMoveResult(msg.Requested, msg.Taken, msg.Captured, sq)
	return nil
}

func (p *Player) HandleGameEnd(msg *GameEnd, unused *bool) error {
	winner, err := recon.ParseColor(msg.Winner)
	if err != nil {
		return err
	}
	history := msg.History
	if history == nil {
		history = &recon.GameHistory{}
	}
	history.Winner = winner
	history.Reason = msg.Reason
	p.player.HandleGameEnd(winner, msg.Reason, history)
	if p.conn != nil {
		p.conn.finish(history)
	}
	return nil
}
