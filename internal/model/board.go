package model

import "fmt"

const BoardSize = 8

// rows filled with pieces for each side at the start
const startingRows = 3

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// IsDark reports whether the square is a playable one.
func (s Square) IsDark() bool {
	return (s.Row+s.Col)%2 == 1
}

func (s Square) step(d direction, n int) Square {
	return Square{Row: s.Row + d.row*n, Col: s.Col + d.col*n}
}

func (s Square) String() string {
	return fmt.Sprintf("%d,%d", s.Row, s.Col)
}

type Piece struct {
	Color PlayerColor `json:"color"`
	King  bool        `json:"king"`
}

// Board is the 8x8 grid; a nil cell is empty.
type Board [BoardSize][BoardSize]*Piece

func NewBoard() Board {
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sq := Square{Row: row, Col: col}
			if !sq.IsDark() {
				continue
			}
			switch {
			case row < startingRows:
				b[row][col] = &Piece{Color: PlayerColorBlack}
			case row >= BoardSize-startingRows:
				b[row][col] = &Piece{Color: PlayerColorWhite}
			}
		}
	}
	return b
}

func (b *Board) At(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p *Piece) {
	b[sq.Row][sq.Col] = p
}

func (b *Board) isEmpty(sq Square) bool {
	return sq.OnBoard() && b[sq.Row][sq.Col] == nil
}

// Clone returns a deep copy; no piece is shared with the receiver.
func (b *Board) Clone() Board {
	var out Board
	for row := range b {
		for col, p := range b[row] {
			if p != nil {
				cp := *p
				out[row][col] = &cp
			}
		}
	}
	return out
}

func (b *Board) Count(c PlayerColor) int {
	n := 0
	for row := range b {
		for _, p := range b[row] {
			if p != nil && p.Color == c {
				n++
			}
		}
	}
	return n
}

// PiecesOf lists the squares holding pieces of c in row-major order.
func (b *Board) PiecesOf(c PlayerColor) []Square {
	var out []Square
	for row := range b {
		for col, p := range b[row] {
			if p != nil && p.Color == c {
				out = append(out, Square{Row: row, Col: col})
			}
		}
	}
	return out
}
