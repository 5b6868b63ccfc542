package replay

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/razzie/chessimage"
	"github.com/razzie/reconchess/pkg/recon"
)

const (
	boardSize  = 512
	frameDelay = 100
)

var palette = getPalette()

// TurnsToGIF renders the start position and the board after every turn as an animated GIF.
// It works for both the arbiter's history and the bot's belief log.
func TurnsToGIF(w io.Writer, startFEN string, turns []recon.Turn) error {
	renderers := make([]*chessimage.Renderer, 0, len(turns)+1)

	r, err := prepareTurnRenderer(startFEN, nil)
	if err != nil {
		return err
	}
	renderers = append(renderers, r)

	for _, turn := range turns {
		r, err := prepareTurnRenderer(turn.FEN, turn.TakenMove)
		if err != nil {
			return err
		}
		renderers = append(renderers, r)
	}

	anim := &gif.GIF{}
	for _, r := range renderers {
		img, err := r.Render(chessimage.Options{
			PieceRatio: 1,
			BoardSize:  boardSize,
		})
		if err != nil {
			return err
		}
		bounds := img.Bounds()
		palettedImage := image.NewPaletted(bounds, palette)
		draw.Draw(palettedImage, bounds, img, image.Point{}, draw.Over)
		anim.Image = append(anim.Image, palettedImage)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	return gif.EncodeAll(w, anim)
}

func prepareTurnRenderer(fen string, move *recon.Move) (*chessimage.Renderer, error) {
	r, err := chessimage.NewRendererFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if move != nil {
		from, _ := chessimage.TileFromAN(move.From.String())
		to, _ := chessimage.TileFromAN(move.To.String())
		r.SetLastMove(chessimage.LastMove{
			From: from,
			To:   to,
		})
	}
	return r, nil
}

func rgb(r, g, b uint8) color.Color {
	return &color.RGBA{R: r, G: g, B: b, A: 255}
}

func mix(c1, c2 color.Color) color.Color {
	r1, g1, b1, _ := c1.RGBA()
	r2, g2, b2, _ := c2.RGBA()
	return &color.RGBA{
		R: uint8((r1 + r2) / 2 >> 8),
		G: uint8((g1 + g2) / 2 >> 8),
		B: uint8((b1 + b2) / 2 >> 8),
		A: 255,
	}
}

func getPalette() []color.Color {
	lightSq := rgb(240, 217, 181)
	darkSq := rgb(181, 136, 99)
	lightSqHigh := rgb(247, 193, 99)
	darkSqHigh := rgb(215, 149, 54)

	pieceColors := []color.Color{color.White, color.Black, &color.Gray{Y: 128}}
	sqColors := []color.Color{lightSq, darkSq, lightSqHigh, darkSqHigh}

	var palette []color.Color
	palette = append(palette, pieceColors...)
	palette = append(palette, sqColors...)
	for _, pieceColor := range pieceColors {
		for _, sqColor := range sqColors {
			palette = append(palette, mix(pieceColor, sqColor))
		}
	}
	return palette
}
