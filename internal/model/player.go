package model

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

// ForwardRow is the row delta of a forward step. White starts at the bottom.
func (c PlayerColor) ForwardRow() int {
	if c == PlayerColorWhite {
		return -1
	}
	return 1
}

// PromotionRow is the far rank where a simple piece becomes a dama.
func (c PlayerColor) PromotionRow() int {
	if c == PlayerColorWhite {
		return 0
	}
	return BoardSize - 1
}

func (c PlayerColor) Valid() bool {
	return c == PlayerColorWhite || c == PlayerColorBlack
}

// CaptureTally counts pieces captured BY each side.
type CaptureTally struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (t *CaptureTally) add(c PlayerColor, n int) {
	if c == PlayerColorWhite {
		t.White += n
	} else {
		t.Black += n
	}
}

func (t CaptureTally) Of(c PlayerColor) int {
	if c == PlayerColorWhite {
		return t.White
	}
	return t.Black
}
