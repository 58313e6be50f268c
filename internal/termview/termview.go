// Package termview draws a game frame for a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/shashki-backend/internal/model"
	"github.com/fatih/color"
)

var (
	whitePiece  = color.New(color.FgHiWhite, color.Bold)
	blackPiece  = color.New(color.FgRed, color.Bold)
	selected    = color.New(color.BgYellow, color.FgBlack)
	simpleMark  = color.New(color.FgGreen)
	captureMark = color.New(color.FgHiRed, color.Bold)
	status      = color.New(color.FgCyan)
)

// Cell glyphs. Kings are upper case.
const (
	glyphWhite   = "w"
	glyphBlack   = "b"
	glyphLight   = " "
	glyphDark    = "."
	glyphMove    = "*"
	glyphCapture = "x"
)

// Render writes the board of f with its row and column indices, the
// selection and move targets highlighted, followed by a status block.
func Render(w io.Writer, f model.Frame) error {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < model.BoardSize; col++ {
		fmt.Fprintf(&sb, " %d ", col)
	}
	sb.WriteString("\n")

	for row := 0; row < model.BoardSize; row++ {
		fmt.Fprintf(&sb, " %d ", row)
		for col := 0; col < model.BoardSize; col++ {
			sb.WriteString(cell(f, model.Square{Row: row, Col: col}))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n captures  white %d  black %d\n", f.Tally.White, f.Tally.Black)
	fmt.Fprintf(&sb, " pieces    white %d  black %d\n", f.Pieces.White, f.Pieces.Black)
	if f.Message != "" {
		sb.WriteString(" " + status.Sprint(f.Message) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(f model.Frame, sq model.Square) string {
	text := glyphLight
	if sq.IsDark() {
		text = glyphDark
	}
	var c *color.Color

	if p := f.Board.At(sq); p != nil {
		text = PieceGlyph(p)
		c = whitePiece
		if p.Color == model.PlayerColorBlack {
			c = blackPiece
		}
	} else if target, capture := f.IsTarget(sq); target {
		text, c = glyphMove, simpleMark
		if capture {
			text, c = glyphCapture, captureMark
		}
	}

	out := " " + text + " "
	if f.Selection != nil && *f.Selection == sq {
		return selected.Sprint("[" + text + "]")
	}
	if c != nil {
		return c.Sprint(out)
	}
	return out
}

// PieceGlyph is the one-letter symbol of p.
func PieceGlyph(p *model.Piece) string {
	g := glyphWhite
	if p.Color == model.PlayerColorBlack {
		g = glyphBlack
	}
	if p.King {
		return strings.ToUpper(g)
	}
	return g
}
