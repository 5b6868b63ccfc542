package recon

import (
	"encoding/json"
	"fmt"

	"github.com/notnil/chess"
)

type jsonTurn struct {
	Color     string `json:"color"`
	Sense     string `json:"sense,omitempty"`
	Requested *Move  `json:"requested,omitempty"`
	Taken     *Move  `json:"taken,omitempty"`
	Capture   string `json:"capture,omitempty"`
	FEN       string `json:"fen"`
}

type jsonHistory struct {
	StartFEN string    `json:"start"`
	Turns    []Turn    `json:"turns"`
	Winner   string    `json:"winner,omitempty"`
	Reason   WinReason `json:"reason"`
}

func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTurn{
		Color:     FormatColor(t.Color),
		Sense:     FormatSquare(t.SenseSquare),
		Requested: t.RequestedMove,
		Taken:     t.TakenMove,
		Capture:   FormatSquare(t.CaptureSquare),
		FEN:       t.FEN,
	})
}

func (t *Turn) UnmarshalJSON(data []byte) (err error) {
	var jt jsonTurn
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	*t = Turn{
		RequestedMove: jt.Requested,
		TakenMove:     jt.Taken,
		FEN:           jt.FEN,
	}
	if t.Color, err = ParseColor(jt.Color); err != nil {
		return err
	}
	if t.SenseSquare, err = ParseOptionalSquare(jt.Sense); err != nil {
		return err
	}
	t.CaptureSquare, err = ParseOptionalSquare(jt.Capture)
	return
}

func (h GameHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHistory{
		StartFEN: h.StartFEN,
		Turns:    h.Turns,
		Winner:   FormatColor(h.Winner),
		Reason:   h.Reason,
	})
}

func (h *GameHistory) UnmarshalJSON(data []byte) (err error) {
	var jh jsonHistory
	if err := json.Unmarshal(data, &jh); err != nil {
		return err
	}
	*h = GameHistory{StartFEN: jh.StartFEN, Turns: jh.Turns, Reason: jh.Reason}
	h.Winner, err = ParseColor(jh.Winner)
	return
}

// FormatColor returns "w", "b" or an empty string for chess.NoColor
func FormatColor(c chess.Color) string {
	switch c {
	case chess.White:
		return "w"
	case chess.Black:
		return "b"
	default:
		return ""
	}
}

// ParseColor is the inverse of FormatColor
func ParseColor(s string) (chess.Color, error) {
	switch s {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	case "":
		return chess.NoColor, nil
	default:
		return chess.NoColor, fmt.Errorf("invalid color: %q", s)
	}
}

// ParseOptionalSquare is like ParseSquare but maps an empty string to chess.NoSquare
func ParseOptionalSquare(s string) (chess.Square, error) {
	if len(s) == 0 {
		return chess.NoSquare, nil
	}
	return ParseSquare(s)
}
