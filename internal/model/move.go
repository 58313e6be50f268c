package model

// Move is one legal destination of a piece. Captured lists the removed
// enemy squares in chain order and is empty for a simple move.
type Move struct {
	To       Square   `json:"to"`
	Captured []Square `json:"captured"`
}

func (m Move) IsCapture() bool {
	return len(m.Captured) > 0
}

func (m Move) Equal(o Move) bool {
	if m.To != o.To || len(m.Captured) != len(o.Captured) {
		return false
	}
	for i := range m.Captured {
		if m.Captured[i] != o.Captured[i] {
			return false
		}
	}
	return true
}

// PieceMove ties a move to the square it starts from.
type PieceMove struct {
	From Square `json:"from"`
	Move Move   `json:"move"`
}

// MoveResult describes what an applied move did.
type MoveResult struct {
	From           Square      `json:"from"`
	Move           Move        `json:"move"`
	Mover          PlayerColor `json:"mover"`
	Captured       int         `json:"captured"`
	Promoted       bool        `json:"promoted"`
	ChainContinues bool        `json:"chainContinues"`
	TurnPassed     bool        `json:"turnPassed"`
	Outcome        Outcome     `json:"outcome"`
}

// MoveRequest is a move by coordinates, as sent by clients.
type MoveRequest struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func containsMove(moves []Move, m Move) bool {
	for _, lm := range moves {
		if lm.Equal(m) {
			return true
		}
	}
	return false
}

// moveTo picks the first move landing on sq.
func moveTo(moves []Move, sq Square) (Move, bool) {
	for _, m := range moves {
		if m.To == sq {
			return m, true
		}
	}
	return Move{}, false
}
