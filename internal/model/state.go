package model

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWhiteWins Outcome = "white_wins"
	OutcomeBlackWins Outcome = "black_wins"
)

func (o Outcome) Winner() (PlayerColor, bool) {
	switch o {
	case OutcomeWhiteWins:
		return PlayerColorWhite, true
	case OutcomeBlackWins:
		return PlayerColorBlack, true
	}
	return "", false
}

func winOf(c PlayerColor) Outcome {
	if c == PlayerColorWhite {
		return OutcomeWhiteWins
	}
	return OutcomeBlackWins
}

// GameState is the state of a single game. It is not safe for concurrent
// use; callers serialize access.
type GameState struct {
	Board          Board        `json:"board"`
	CurrentPlayer  PlayerColor  `json:"currentPlayer"`
	Selection      *Square      `json:"selection"`
	LegalMoves     []Move       `json:"legalMoves"`
	MustCapture    bool         `json:"mustCapture"`
	InChainCapture bool         `json:"inChainCapture"`
	Tally          CaptureTally `json:"tally"`
	Outcome        Outcome      `json:"outcome"`
}

func NewGameState() GameState {
	return NewGameStateFrom(NewBoard(), PlayerColorWhite)
}

// NewGameStateFrom starts a game from an arbitrary position with toMove to play.
func NewGameStateFrom(b Board, toMove PlayerColor) GameState {
	s := GameState{
		Board:         b,
		CurrentPlayer: toMove,
	}
	s.MustCapture = AnyCaptureAvailable(&s.Board, toMove)
	s.Outcome = s.CheckTerminal()
	return s
}

func (s *GameState) Reset() {
	*s = NewGameState()
}

// MovesFrom is the move generator under the mandatory-capture rule: while
// the side to move must capture, or is in the middle of a chain, only
// capture moves are returned.
func (s *GameState) MovesFrom(sq Square) []Move {
	p := s.Board.At(sq)
	if p == nil {
		return nil
	}
	captures := CaptureMoves(&s.Board, sq)
	if len(captures) > 0 || s.MustCapture || s.InChainCapture {
		return captures
	}
	return SimpleMoves(&s.Board, sq)
}

func (s *GameState) validate(from Square, move Move) error {
	if s.Outcome != OutcomeNone {
		return errGameOver
	}
	if !from.OnBoard() || !move.To.OnBoard() {
		return errOffBoard
	}
	p := s.Board.At(from)
	if p == nil {
		return errNoPiece
	}
	if p.Color != s.CurrentPlayer {
		return errNotYourTurn
	}
	if s.InChainCapture && s.Selection != nil && *s.Selection != from {
		return errChainCapture
	}
	if containsMove(s.MovesFrom(from), move) {
		return nil
	}
	if !move.IsCapture() && (s.MustCapture || s.InChainCapture) {
		return errMustCapture
	}
	return errNotDestination
}

// ApplyMove plays move for the piece on from. The move must be one of
// MovesFrom(from); anything else is rejected before any mutation.
func (s *GameState) ApplyMove(from Square, move Move) (MoveResult, error) {
	if err := s.validate(from, move); err != nil {
		return MoveResult{}, err
	}

	piece := s.Board.At(from)
	mover := piece.Color
	// a dama chain may end on its own starting square or on a square it
	// captured earlier in the chain, so the piece is placed last
	s.Board.Set(from, nil)
	for _, sq := range move.Captured {
		s.Board.Set(sq, nil)
	}
	s.Board.Set(move.To, piece)
	s.Tally.add(mover, len(move.Captured))

	res := MoveResult{
		From:     from,
		Move:     move,
		Mover:    mover,
		Captured: len(move.Captured),
		Promoted: promote(piece, move.To),
	}

	if move.IsCapture() {
		if further := CaptureMoves(&s.Board, move.To); len(further) > 0 {
			to := move.To
			s.Selection = &to
			s.LegalMoves = further
			s.InChainCapture = true
			s.MustCapture = true
			res.ChainContinues = true
			return res, nil
		}
	}

	s.passTurn()
	res.TurnPassed = true
	res.Outcome = s.Outcome
	return res, nil
}

func (s *GameState) passTurn() {
	s.CurrentPlayer = s.CurrentPlayer.Opponent()
	s.InChainCapture = false
	s.Selection = nil
	s.LegalMoves = nil
	s.MustCapture = AnyCaptureAvailable(&s.Board, s.CurrentPlayer)
	s.Outcome = s.CheckTerminal()
}

// promote crowns p when it stands on its far rank. A dama stays a dama.
func promote(p *Piece, at Square) bool {
	if p.King || at.Row != p.Color.PromotionRow() {
		return false
	}
	p.King = true
	return true
}

// CheckTerminal decides the game: a side with no pieces loses, and so does
// the side to move when none of its pieces has a move.
func (s *GameState) CheckTerminal() Outcome {
	for _, c := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		if s.Board.Count(c) == 0 {
			return winOf(c.Opponent())
		}
	}
	if s.countMoves(s.CurrentPlayer) == 0 {
		return winOf(s.CurrentPlayer.Opponent())
	}
	return OutcomeNone
}

func (s *GameState) countMoves(c PlayerColor) int {
	n := 0
	for _, sq := range s.Board.PiecesOf(c) {
		n += len(SimpleMoves(&s.Board, sq)) + len(CaptureMoves(&s.Board, sq))
	}
	return n
}

// Select makes sq the active square and computes its moves.
func (s *GameState) Select(sq Square) {
	sel := sq
	s.Selection = &sel
	s.LegalMoves = s.MovesFrom(sq)
}

// Deselect clears the selection. It is refused during a chain capture.
func (s *GameState) Deselect() bool {
	if s.InChainCapture {
		return false
	}
	s.Selection = nil
	s.LegalMoves = nil
	return true
}
