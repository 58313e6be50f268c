package model

type ClickAction string

const (
	ClickSelect   ClickAction = "select"
	ClickMove     ClickAction = "move"
	ClickDeselect ClickAction = "deselect"
	ClickIgnore   ClickAction = "ignore"
)

type ClickResult struct {
	Action ClickAction `json:"action"`
	Result *MoveResult `json:"result,omitempty"`
}

// Click is the square-click entry point of a front end. With a selection,
// clicking one of its destinations plays that move. During a chain capture
// only the active piece and its destinations react. Otherwise clicking an
// own piece selects it and anything else deselects.
func (s *GameState) Click(sq Square) (ClickResult, error) {
	if !sq.OnBoard() {
		return ClickResult{}, errOffBoard
	}
	if s.Outcome != OutcomeNone {
		return ClickResult{Action: ClickIgnore}, nil
	}

	if s.Selection != nil {
		if m, ok := moveTo(s.LegalMoves, sq); ok {
			res, err := s.ApplyMove(*s.Selection, m)
			if err != nil {
				return ClickResult{}, err
			}
			return ClickResult{Action: ClickMove, Result: &res}, nil
		}
		if s.InChainCapture && *s.Selection != sq {
			return ClickResult{Action: ClickIgnore}, nil
		}
	}

	if p := s.Board.At(sq); p != nil && p.Color == s.CurrentPlayer {
		s.Select(sq)
		return ClickResult{Action: ClickSelect}, nil
	}
	s.Deselect()
	return ClickResult{Action: ClickDeselect}, nil
}

// Play applies the first legal move of the piece on from that lands on to.
func (s *GameState) Play(from, to Square) (MoveResult, error) {
	if !from.OnBoard() || !to.OnBoard() {
		return MoveResult{}, errOffBoard
	}
	m, ok := moveTo(s.MovesFrom(from), to)
	if !ok {
		m = Move{To: to}
	}
	return s.ApplyMove(from, m)
}
