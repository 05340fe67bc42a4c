package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
)

// MoveHighlight marks a played move on the rendered board: origin, final
// landing, intermediate landings and the captured squares.
type MoveHighlight struct {
	From     board.Square
	To       board.Square
	Path     []board.Square
	Captured []board.Square
}

// NewMoveHighlight builds the highlight for an applied move.
func NewMoveHighlight(m rules.Move) *MoveHighlight {
	h := &MoveHighlight{From: m.From, To: m.To, Captured: m.Captured()}
	for i, j := range m.Jumps {
		if i < len(m.Jumps)-1 {
			h.Path = append(h.Path, j.To)
		}
	}
	return h
}

type RenderOptions struct {
	Highlight   *MoveHighlight
	Selected    *board.Square
	Flip        bool
	ShowNumbers bool
}

type BoardRenderer interface {
	RenderPNG(ctx context.Context, b board.Board, opts RenderOptions) ([]byte, error)
}

type svgBoardRenderer struct {
	squareSize int
}

// NewSVGBoardRenderer renders boards of roughly boardPx pixels on a side,
// with SVG piece sprites rasterized per square.
func NewSVGBoardRenderer(boardPx int) BoardRenderer {
	sq := boardPx / board.Size
	if sq < 24 {
		sq = 24
	}
	return &svgBoardRenderer{squareSize: sq}
}

var (
	frameColor      = color.RGBA{84, 58, 44, 255}
	lightSquare     = color.RGBA{233, 207, 163, 255}
	darkSquare      = color.RGBA{187, 136, 96, 255}
	selectedOverlay = color.NRGBA{R: 255, G: 228, B: 120, A: 140}
	fromOverlay     = color.NRGBA{R: 255, G: 228, B: 120, A: 100}
	toOverlay       = color.NRGBA{R: 112, G: 205, B: 144, A: 150}
	capturedOverlay = color.NRGBA{R: 214, G: 85, B: 80, A: 150}
	landingDot      = color.NRGBA{R: 112, G: 205, B: 144, A: 200}
	numberColor     = color.NRGBA{R: 60, G: 42, B: 33, A: 255}
)

func (r *svgBoardRenderer) RenderPNG(ctx context.Context, b board.Board, opts RenderOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	margin := r.squareSize / 3
	boardPx := r.squareSize * board.Size
	total := boardPx + margin*2
	origin := image.Point{X: margin, Y: margin}

	img := image.NewRGBA(image.Rect(0, 0, total, total))
	imagedraw.Draw(img, img.Bounds(), image.NewUniform(frameColor), image.Point{}, imagedraw.Src)

	r.drawSquares(img, origin, opts.Flip)
	if err := r.drawPieces(img, b, origin, opts.Flip); err != nil {
		return nil, err
	}
	r.drawHighlights(img, origin, opts)
	if opts.ShowNumbers {
		r.drawNumbers(img, origin, opts.Flip)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// cellRect maps a board square to its pixel rectangle. Flip rotates the view
// so the dark side sits at the bottom.
func (r *svgBoardRenderer) cellRect(sq board.Square, origin image.Point, flip bool) image.Rectangle {
	row, col := sq.Row, sq.Col
	if flip {
		row = board.Size - 1 - row
		col = board.Size - 1 - col
	}
	x := origin.X + col*r.squareSize
	y := origin.Y + row*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

func (r *svgBoardRenderer) drawSquares(img *image.RGBA, origin image.Point, flip bool) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square{Row: row, Col: col}
			clr := lightSquare
			if sq.Playable() {
				clr = darkSquare
			}
			imagedraw.Draw(img, r.cellRect(sq, origin, flip), image.NewUniform(clr), image.Point{}, imagedraw.Src)
		}
	}
}

func (r *svgBoardRenderer) drawPieces(img *image.RGBA, b board.Board, origin image.Point, flip bool) error {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square{Row: row, Col: col}
			p := b.At(sq)
			if p.Empty() {
				continue
			}
			sprite, err := renderPieceImage(p, r.squareSize)
			if err != nil {
				return err
			}
			imagedraw.Draw(img, r.cellRect(sq, origin, flip), sprite, image.Point{}, imagedraw.Over)
		}
	}
	return nil
}

func (r *svgBoardRenderer) drawHighlights(img *image.RGBA, origin image.Point, opts RenderOptions) {
	if h := opts.Highlight; h != nil {
		drawSquareOverlay(img, r.cellRect(h.From, origin, opts.Flip), fromOverlay)
		for _, c := range h.Captured {
			drawSquareOverlay(img, r.cellRect(c, origin, opts.Flip), capturedOverlay)
		}
		for _, p := range h.Path {
			rect := r.cellRect(p, origin, opts.Flip)
			center := image.Pt((rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2)
			drawDisc(img, center, r.squareSize/8, landingDot)
		}
		drawSquareOverlay(img, r.cellRect(h.To, origin, opts.Flip), toOverlay)
	}
	if opts.Selected != nil {
		drawSquareOverlay(img, r.cellRect(*opts.Selected, origin, opts.Flip), selectedOverlay)
	}
}

func (r *svgBoardRenderer) drawNumbers(img *image.RGBA, origin image.Point, flip bool) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(numberColor),
		Face: basicfont.Face7x13,
	}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square{Row: row, Col: col}
			n := board.SquareNumber(sq)
			if n == 0 {
				continue
			}
			rect := r.cellRect(sq, origin, flip)
			drawer.Dot = fixed.P(rect.Min.X+3, rect.Min.Y+ascent+2)
			drawer.DrawString(strconv.Itoa(n))
		}
	}
}

func drawSquareOverlay(img *image.RGBA, rect image.Rectangle, clr color.Color) {
	if img == nil {
		return
	}
	imagedraw.Draw(img, rect, image.NewUniform(clr), image.Point{}, imagedraw.Over)
}

func drawDisc(img *image.RGBA, center image.Point, radius int, clr color.Color) {
	if radius <= 0 {
		blendPixel(img, center.X, center.Y, clr)
		return
	}
	rSquared := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y > rSquared {
				continue
			}
			blendPixel(img, center.X+x, center.Y+y, clr)
		}
	}
}

func blendPixel(img *image.RGBA, x, y int, clr color.Color) {
	if img == nil {
		return
	}
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}

	sr, sg, sb, sa := clr.RGBA()
	srcA := float64(sa) / 65535.0
	if srcA <= 0 {
		return
	}
	srcR := float64(sr) / 65535.0
	srcG := float64(sg) / 65535.0
	srcB := float64(sb) / 65535.0

	dst := img.RGBAAt(x, y)
	dstA := float64(dst.A) / 255.0

	var dstR, dstG, dstB float64
	if dstA > 0 {
		inv := 1.0 / dstA
		dstR = float64(dst.R) / 255.0 * inv
		dstG = float64(dst.G) / 255.0 * inv
		dstB = float64(dst.B) / 255.0 * inv
	}

	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		img.SetRGBA(x, y, color.RGBA{})
		return
	}

	outR := (srcR*srcA + dstR*dstA*(1-srcA)) / outA
	outG := (srcG*srcA + dstG*dstA*(1-srcA)) / outA
	outB := (srcB*srcA + dstB*dstA*(1-srcA)) / outA

	img.SetRGBA(x, y, color.RGBA{
		R: floatToUint8(outR * outA * 255.0),
		G: floatToUint8(outG * outA * 255.0),
		B: floatToUint8(outB * outA * 255.0),
		A: floatToUint8(outA * 255.0),
	})
}

func floatToUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
