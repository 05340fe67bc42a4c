package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/park285/makhos/internal/board"
	"github.com/park285/makhos/internal/rules"
	svcgame "github.com/park285/makhos/internal/service/game"
)

// Renders a position string to a PNG without spinning up a session. Handy for
// checking sprite assets and catalog-free output in CI.
func main() {
	position := flag.String("position", "", `position string, e.g. "W:W21,22,K5:B9,10" (default: initial setup)`)
	out := flag.String("out", "board.png", "output PNG path")
	size := flag.Int("size", 720, "board edge length in pixels")
	flip := flag.Bool("flip", false, "render from dark's point of view")
	numbers := flag.Bool("numbers", true, "draw square numbers 1-32")
	selectRef := flag.String("select", "", `square to highlight, number or "row,col"`)
	flag.Parse()

	var b board.Board
	if *position == "" {
		g, err := rules.New(rules.DefaultVariant())
		if err != nil {
			log.Fatalf("init position: %v", err)
		}
		b = g.Board()
	} else {
		parsed, _, err := board.ParsePosition(*position)
		if err != nil {
			log.Fatalf("bad position: %v", err)
		}
		b = parsed
	}

	opts := svcgame.RenderOptions{Flip: *flip, ShowNumbers: *numbers}
	if *selectRef != "" {
		sq, err := board.ParseSquareRef(*selectRef)
		if err != nil {
			log.Fatalf("bad select square: %v", err)
		}
		opts.Selected = &sq
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := svcgame.NewSVGBoardRenderer(*size).RenderPNG(ctx, b, opts)
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(data))
}
