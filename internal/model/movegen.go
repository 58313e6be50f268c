package model

type direction struct {
	row int
	col int
}

var (
	allDirections = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	whiteForward  = []direction{{-1, -1}, {-1, 1}}
	blackForward  = []direction{{1, -1}, {1, 1}}
)

// directionsFor returns the diagonals a piece may move and capture along.
// A dama uses all four, a simple piece only its two forward ones.
func directionsFor(p Piece) []direction {
	if p.King {
		return allDirections
	}
	if p.Color == PlayerColorWhite {
		return whiteForward
	}
	return blackForward
}

// LegalMoves returns the capture moves of the piece on sq when it has any,
// and its simple moves otherwise. An empty square yields no moves.
// It does not know about captures available to other pieces; see
// GameState.MovesFrom for the mandatory-capture aware variant.
func LegalMoves(b *Board, sq Square) []Move {
	if b.At(sq) == nil {
		return nil
	}
	if captures := CaptureMoves(b, sq); len(captures) > 0 {
		return captures
	}
	return SimpleMoves(b, sq)
}

func SimpleMoves(b *Board, sq Square) []Move {
	p := b.At(sq)
	if p == nil {
		return nil
	}
	var moves []Move
	for _, d := range directionsFor(*p) {
		if !p.King {
			if to := sq.step(d, 1); b.isEmpty(to) {
				moves = append(moves, Move{To: to})
			}
			continue
		}
		for n := 1; ; n++ {
			to := sq.step(d, n)
			if !b.isEmpty(to) {
				break
			}
			moves = append(moves, Move{To: to})
		}
	}
	return moves
}

// CaptureMoves runs the chain search for the piece on sq. Every returned
// move is the terminal landing of a chain that cannot be extended; each
// first jump is followed to its own maximal depth, so chains of different
// lengths may be offered side by side.
func CaptureMoves(b *Board, sq Square) []Move {
	p := b.At(sq)
	if p == nil {
		return nil
	}
	return searchCaptures(b, sq, *p, nil)
}

type hop struct {
	enemy   Square
	landing Square
}

func searchCaptures(b *Board, from Square, p Piece, captured []Square) []Move {
	var moves []Move
	for _, d := range directionsFor(p) {
		for _, h := range hopsAlong(b, from, p, d) {
			chain := make([]Square, 0, len(captured)+1)
			chain = append(chain, captured...)
			chain = append(chain, h.enemy)

			// each branch gets its own board; captured pieces are lifted at
			// once, so a dama may pass over or land on their squares later
			// in the chain and can never take them twice
			scratch := b.Clone()
			for _, sq := range chain {
				scratch.Set(sq, nil)
			}
			scratch.Set(from, nil)
			moved := p
			scratch.Set(h.landing, &moved)

			further := searchCaptures(&scratch, h.landing, p, chain)
			if len(further) > 0 {
				moves = append(moves, further...)
				continue
			}
			moves = append(moves, Move{To: h.landing, Captured: chain})
		}
	}
	return moves
}

// hopsAlong lists single captures from `from` in direction d.
func hopsAlong(b *Board, from Square, p Piece, d direction) []hop {
	if !p.King {
		enemy := from.step(d, 1)
		landing := from.step(d, 2)
		if isCapturable(b, enemy, p.Color) && b.isEmpty(landing) {
			return []hop{{enemy: enemy, landing: landing}}
		}
		return nil
	}

	n := 1
	for b.isEmpty(from.step(d, n)) {
		n++
	}
	enemy := from.step(d, n)
	if !isCapturable(b, enemy, p.Color) {
		return nil
	}
	var hops []hop
	for m := n + 1; b.isEmpty(from.step(d, m)); m++ {
		hops = append(hops, hop{enemy: enemy, landing: from.step(d, m)})
	}
	return hops
}

func isCapturable(b *Board, sq Square, mover PlayerColor) bool {
	p := b.At(sq)
	return p != nil && p.Color != mover
}

// CapturesFor scans every piece of c and returns all capture moves found.
func CapturesFor(b *Board, c PlayerColor) []PieceMove {
	var out []PieceMove
	for _, sq := range b.PiecesOf(c) {
		for _, m := range CaptureMoves(b, sq) {
			out = append(out, PieceMove{From: sq, Move: m})
		}
	}
	return out
}

// AnyCaptureAvailable reports whether c is under mandatory capture.
func AnyCaptureAvailable(b *Board, c PlayerColor) bool {
	for _, sq := range b.PiecesOf(c) {
		if len(CaptureMoves(b, sq)) > 0 {
			return true
		}
	}
	return false
}
