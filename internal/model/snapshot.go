package model

// Snapshot is an independent copy of the state needed to undo a move.
// It shares no pieces with the live board and marshals to JSON.
type Snapshot struct {
	Board          Board        `json:"board"`
	CurrentPlayer  PlayerColor  `json:"currentPlayer"`
	Tally          CaptureTally `json:"tally"`
	MustCapture    bool         `json:"mustCapture"`
	InChainCapture bool         `json:"inChainCapture"`
	// ChainPiece is the piece that must keep capturing, set only mid-chain.
	ChainPiece *Square `json:"chainPiece,omitempty"`
}

func (s *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		Board:          s.Board.Clone(),
		CurrentPlayer:  s.CurrentPlayer,
		Tally:          s.Tally,
		MustCapture:    s.MustCapture,
		InChainCapture: s.InChainCapture,
	}
	if s.InChainCapture && s.Selection != nil {
		sq := *s.Selection
		snap.ChainPiece = &sq
	}
	return snap
}

// Restore replaces the state with snap. The selection is dropped unless
// the snapshot was taken mid-chain.
func (s *GameState) Restore(snap Snapshot) {
	*s = GameState{
		Board:          snap.Board.Clone(),
		CurrentPlayer:  snap.CurrentPlayer,
		Tally:          snap.Tally,
		MustCapture:    snap.MustCapture,
		InChainCapture: snap.InChainCapture,
	}
	if snap.InChainCapture && snap.ChainPiece != nil {
		s.Select(*snap.ChainPiece)
		return
	}
	s.Outcome = s.CheckTerminal()
}
