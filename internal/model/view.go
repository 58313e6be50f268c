package model

import "time"

// PieceCount is the number of pieces each side has left.
type PieceCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Frame is everything a front end needs to draw the game.
type Frame struct {
	Board          Board        `json:"board"`
	CurrentPlayer  PlayerColor  `json:"currentPlayer"`
	Selection      *Square      `json:"selection"`
	SimpleTargets  []Square     `json:"simpleTargets"`
	CaptureTargets []Square     `json:"captureTargets"`
	LegalMoves     []Move       `json:"legalMoves"`
	MustCapture    bool         `json:"mustCapture"`
	InChainCapture bool         `json:"inChainCapture"`
	Tally          CaptureTally `json:"tally"`
	Pieces         PieceCount   `json:"pieces"`
	Outcome        Outcome      `json:"outcome"`
	Message        string       `json:"message,omitempty"`

	// set by Game
	Plies     int       `json:"plies"`
	StartedAt time.Time `json:"startedAt"`
}

func (s *GameState) Frame() Frame {
	f := Frame{
		Board:          s.Board.Clone(),
		CurrentPlayer:  s.CurrentPlayer,
		SimpleTargets:  []Square{},
		CaptureTargets: []Square{},
		LegalMoves:     append([]Move{}, s.LegalMoves...),
		MustCapture:    s.MustCapture,
		InChainCapture: s.InChainCapture,
		Tally:          s.Tally,
		Pieces: PieceCount{
			White: s.Board.Count(PlayerColorWhite),
			Black: s.Board.Count(PlayerColorBlack),
		},
		Outcome: s.Outcome,
	}
	if s.Selection != nil {
		sel := *s.Selection
		f.Selection = &sel
	}
	for _, m := range s.LegalMoves {
		if m.IsCapture() {
			f.CaptureTargets = append(f.CaptureTargets, m.To)
		} else {
			f.SimpleTargets = append(f.SimpleTargets, m.To)
		}
	}
	return f
}

// IsTarget reports whether sq is a highlighted destination and of which kind.
func (f Frame) IsTarget(sq Square) (target, capture bool) {
	for _, t := range f.CaptureTargets {
		if t == sq {
			return true, true
		}
	}
	for _, t := range f.SimpleTargets {
		if t == sq {
			return true, false
		}
	}
	return false, false
}
