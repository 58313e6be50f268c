package msgcat

import (
	"strings"

	"github.com/benbeisheim/shashki-backend/internal/model"
)

// PlayerName renders the display name of a side.
func (c *Catalog) PlayerName(color model.PlayerColor) string {
	if s, err := c.Render("player."+string(color), nil); err == nil {
		return s
	}
	return string(color)
}

// Describe builds the status line for frame. last is the move that led to
// it, nil after a selection, undo or reset.
func (c *Catalog) Describe(frame model.Frame, last *model.MoveResult) string {
	if winner, ok := frame.Outcome.Winner(); ok {
		return c.render("status.winner", map[string]any{"Winner": c.PlayerName(winner)})
	}

	var parts []string
	if last != nil && last.Captured > 0 {
		if last.Captured > 1 {
			parts = append(parts, c.render("status.chain_capture", map[string]any{"Count": last.Captured}))
		} else {
			parts = append(parts, c.render("status.capture", nil))
		}
	}
	if last != nil && last.Promoted {
		parts = append(parts, c.render("status.promoted", nil))
	}
	switch {
	case frame.InChainCapture:
		parts = append(parts, c.render("status.chain_continue", nil))
	case frame.MustCapture:
		parts = append(parts, c.render("status.must_capture", nil))
	}
	if len(parts) == 0 {
		parts = append(parts, c.render("status.turn", map[string]any{"Player": c.PlayerName(frame.CurrentPlayer)}))
	}
	return strings.Join(parts, " ")
}

func (c *Catalog) render(key string, data any) string {
	s, err := c.Render(key, data)
	if err != nil {
		return key
	}
	return s
}
