package connector

import (
	"github.com/razzie/reconchess/pkg/recon"
)

// Squares and pieces travel as text: "e4" for squares, FEN letters for pieces,
// UCI notation for moves and empty strings for none.

type GameStart struct {
	Color    string `json:"color"`
	FEN      string `json:"fen"`
	Opponent string `json:"opponent"`
}

type OpponentMoveResult struct {
	Captured bool   `json:"captured"`
	Square   string `json:"square,omitempty"`
}

type SenseRequest struct {
	SenseActions []string     `json:"sense_actions"`
	MoveActions  []recon.Move `json:"move_actions"`
	SecondsLeft  float64      `json:"seconds_left"`
}

type SensedSquare struct {
	Square string `json:"square"`
	Piece  string `json:"piece,omitempty"`
}

type MoveRequest struct {
	MoveActions []recon.Move `json:"move_actions"`
	SecondsLeft float64      `json:"seconds_left"`
}

type MoveResult struct {
	Requested *recon.Move `json:"requested,omitempty"`
	Taken     *recon.Move `json:"taken,omitempty"`
	Captured  bool        `json:"captured"`
	Square    string      `json:"square,omitempty"`
}

type GameEnd struct {
	Winner  string             `json:"winner,omitempty"`
	Reason  recon.WinReason    `json:"reason"`
	History *recon.GameHistory `json:"history,omitempty"`
}
