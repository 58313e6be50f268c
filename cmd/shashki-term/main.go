// Command shashki-term is a two-player hotseat game in the terminal.
//
//	r c        click a square (select a piece, then click a target)
//	r c r c    move from the first square to the second
//	undo       take back the last move
//	reset      start over
//	quit       leave
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benbeisheim/shashki-backend/internal/config"
	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/benbeisheim/shashki-backend/internal/msgcat"
	"github.com/benbeisheim/shashki-backend/internal/obslog"
	"github.com/benbeisheim/shashki-backend/internal/termview"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	catalog, err := msgcat.New(cfg.MessagesLang, cfg.MessagesDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	game := model.NewGame("terminal", model.NewMemoryHistory(cfg.HistoryLimit))
	errText := color.New(color.FgRed).SprintFunc()

	show := func(frame model.Frame, last *model.MoveResult) {
		frame.Message = catalog.Describe(frame, last)
		fmt.Println()
		if err := termview.Render(os.Stdout, frame); err != nil {
			obslog.L().Error("render_failed", zap.Error(err))
		}
	}
	show(game.Frame(), nil)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "q", "exit":
			return
		case "undo", "u":
			undone, frame, err := game.Undo(ctx)
			if err != nil {
				fmt.Println(errText(err))
				continue
			}
			if !undone {
				fmt.Println(errText("nothing to undo"))
			}
			show(frame, nil)
			continue
		case "reset":
			frame, err := game.Reset(ctx)
			if err != nil {
				fmt.Println(errText(err))
				continue
			}
			show(frame, nil)
			continue
		}

		squares, err := parseSquares(fields)
		if err != nil {
			fmt.Println(errText(err))
			continue
		}
		switch len(squares) {
		case 1:
			res, frame, err := game.Click(ctx, squares[0])
			if err != nil {
				fmt.Println(errText(err))
				continue
			}
			show(frame, res.Result)
		case 2:
			res, frame, err := game.Play(ctx, squares[0], squares[1])
			if err != nil {
				fmt.Println(errText(err))
				continue
			}
			show(frame, &res)
		}
	}
}

// parseSquares reads "r c" or "r c r c".
func parseSquares(fields []string) ([]model.Square, error) {
	if len(fields) != 2 && len(fields) != 4 {
		return nil, fmt.Errorf("expected \"row col\" or \"row col row col\"")
	}
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", f)
		}
		nums[i] = n
	}
	var out []model.Square
	for i := 0; i < len(nums); i += 2 {
		out = append(out, model.Square{Row: nums[i], Col: nums[i+1]})
	}
	return out, nil
}
