package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/park285/makhos/internal/adapter/gamepresenter"
	"github.com/park285/makhos/internal/config"
	"github.com/park285/makhos/internal/gamebuilder"
	"github.com/park285/makhos/internal/obslog"
	svcgame "github.com/park285/makhos/internal/service/game"
	"github.com/park285/makhos/pkg/gamedto"
)

func main() {
	variant := flag.String("variant", "", "rule preset: makhos or traditional")
	position := flag.String("position", "", `starting position, e.g. "W:W21,22:B9,10"`)
	lightName := flag.String("light", "", "light player name")
	darkName := flag.String("dark", "", "dark player name")
	noColor := flag.Bool("no-color", false, "plain ASCII board instead of ANSI colors")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer obslog.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *variant != "" {
		cfg.DefaultVariant = *variant
	}
	if *noColor || cfg.NoColor {
		color.NoColor = true
	}

	deps, err := gamebuilder.New(cfg, obslog.L())
	if err != nil {
		log.Fatalf("component init failed: %v", err)
	}
	defer deps.Close()

	ctx := context.Background()
	state, err := deps.Service.CreateSession(ctx, svcgame.NewSessionRequest{
		Variant:     cfg.DefaultVariant,
		Position:    *position,
		LightPlayer: *lightName,
		DarkPlayer:  *darkName,
	})
	if err != nil {
		log.Fatalf("session create failed: %v", err)
	}

	f := deps.Formatter
	dto := gamepresenter.ToDTOState(state)
	fmt.Println(f.Start(dto))
	printBoard(f, dto)
	fmt.Println(f.TurnLine(dto))
	fmt.Println(deps.Catalog.Line("cli.prompt", nil))

	repl(ctx, deps, cfg, state.SessionID)
}

func repl(ctx context.Context, deps *gamebuilder.Deps, cfg *config.AppConfig, sessionID string) {
	svc := deps.Service
	f := deps.Formatter
	scanner := bufio.NewScanner(os.Stdin)

loop:
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch strings.ToLower(parts[0]) {
		case "quit", "exit":
			break loop

		case "help", "?":
			fmt.Println(f.Help())

		case "board":
			state, err := svc.State(ctx, sessionID)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			dto := gamepresenter.ToDTOState(state)
			printBoard(f, dto)
			fmt.Println(f.TurnLine(dto))

		case "status":
			state, err := svc.State(ctx, sessionID)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			fmt.Println(f.Status(gamepresenter.ToDTOState(state)))

		case "moves":
			if len(parts) > 1 {
				res, err := svc.LegalMovesAt(ctx, sessionID, parts[1])
				if err != nil {
					fmt.Println(f.ErrorMessage(err))
					continue
				}
				fmt.Println(f.MovesAt(gamepresenter.ToDTOSquareMoves(res)))
				continue
			}
			moves, err := svc.LegalMoves(ctx, sessionID)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			fmt.Println(f.Moves(gamepresenter.ToDTOMoves(moves)))

		case "save":
			path := "board.png"
			if len(parts) > 1 {
				path = parts[1]
			}
			data, err := svc.RenderBoard(ctx, sessionID, svcgame.RenderOptions{ShowNumbers: cfg.BoardNumbers})
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				fmt.Println("⚠️", err)
				continue
			}
			fmt.Println(deps.Catalog.Line("cli.saved", map[string]any{"Path": path}))

		case "resign":
			state, err := svc.State(ctx, sessionID)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			side := state.Turn.String()
			after, err := svc.Resign(ctx, sessionID, side)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			fmt.Println(f.Resign(gamepresenter.ToDTOState(after), side))
			break loop

		default:
			summary, err := svc.SubmitMove(ctx, sessionID, input)
			if err != nil {
				fmt.Println(f.ErrorMessage(err))
				continue
			}
			dto := gamepresenter.ToDTOMoveSummary(summary)
			printBoard(f, dto.State)
			fmt.Println(f.MoveResult(dto))
			if dto.State.Outcome.Status != "in_progress" {
				break loop
			}
		}
	}

	if err := svc.EndSession(ctx, sessionID); err != nil {
		obslog.L().Warn("session cleanup failed", zap.Error(err))
	}
	fmt.Println(deps.Catalog.Line("cli.bye", nil))
}

func printBoard(f *gamepresenter.Formatter, state *gamedto.SessionState) {
	if color.NoColor {
		fmt.Println(f.Board(state))
		return
	}
	fmt.Print(drawBoard(state))
}

// drawBoard paints the position with ANSI backgrounds, playable squares green
// so pieces stand out the way they do on the physical board.
func drawBoard(state *gamedto.SessionState) string {
	if state == nil {
		return ""
	}
	var (
		darkSquare  = color.New(color.BgGreen)
		lightSquare = color.New(color.BgHiWhite)
		lightPiece  = color.New(color.BgGreen, color.FgHiWhite, color.Bold)
		darkPiece   = color.New(color.BgGreen, color.FgBlack, color.Bold)
	)

	var sb strings.Builder
	for row := 0; row < len(state.Board); row++ {
		sb.WriteString(fmt.Sprintf(" %d ", row))
		for col := 0; col < len(state.Board[row]); col++ {
			cell := state.Board[row][col]
			switch {
			case cell == "" && (row+col)%2 == 1:
				sb.WriteString(darkSquare.Sprint("   "))
			case cell == "":
				sb.WriteString(lightSquare.Sprint("   "))
			case strings.HasPrefix(cell, "light"):
				sb.WriteString(lightPiece.Sprintf(" %s ", pieceGlyph(cell)))
			default:
				sb.WriteString(darkPiece.Sprintf(" %s ", pieceGlyph(cell)))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for col := 0; col < 8; col++ {
		sb.WriteString(fmt.Sprintf(" %d ", col))
	}
	sb.WriteString("\n")
	return sb.String()
}

func pieceGlyph(cell string) string {
	switch cell {
	case "light-man":
		return "w"
	case "light-king":
		return "W"
	case "dark-man":
		return "b"
	case "dark-king":
		return "B"
	default:
		return " "
	}
}
