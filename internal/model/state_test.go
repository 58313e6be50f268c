package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewGameState(t *testing.T) {
	s := NewGameState()
	if s.CurrentPlayer != PlayerColorWhite {
		t.Fatalf("white moves first, got %s", s.CurrentPlayer)
	}
	if s.MustCapture || s.InChainCapture || s.Selection != nil || s.Outcome != OutcomeNone {
		t.Fatalf("unexpected initial flags: %+v", s)
	}
	if s.Tally != (CaptureTally{}) {
		t.Fatalf("tally should start at zero: %+v", s.Tally)
	}
}

func TestOpeningMovePassesTurn(t *testing.T) {
	s := NewGameState()
	res, err := s.Play(Square{5, 2}, Square{4, 1})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.TurnPassed || res.Captured != 0 || res.Mover != PlayerColorWhite {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Board.At(Square{5, 2}) != nil || s.Board.At(Square{4, 1}) == nil {
		t.Fatalf("piece did not move")
	}
	if s.CurrentPlayer != PlayerColorBlack {
		t.Fatalf("turn should pass to black")
	}
}

func TestBlackCapturesWhite(t *testing.T) {
	b := emptyBoard()
	put(&b, 2, 1, PlayerColorBlack, false)
	put(&b, 3, 2, PlayerColorWhite, false)
	put(&b, 7, 6, PlayerColorWhite, false)
	s := NewGameStateFrom(b, PlayerColorBlack)
	if !s.MustCapture {
		t.Fatalf("black should be under mandatory capture")
	}

	res, err := s.Play(Square{2, 1}, Square{4, 3})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.Captured != 1 || !res.TurnPassed {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Board.At(Square{3, 2}) != nil {
		t.Fatalf("captured piece still on the board")
	}
	if s.Tally.Black != 1 || s.Tally.White != 0 {
		t.Fatalf("tally: %+v", s.Tally)
	}
	if s.CurrentPlayer != PlayerColorWhite || s.Outcome != OutcomeNone {
		t.Fatalf("white should be to move in a live game: %+v", s)
	}
}

func TestMandatoryCaptureRejectsSimpleMove(t *testing.T) {
	b := emptyBoard()
	put(&b, 5, 2, PlayerColorWhite, false)
	put(&b, 4, 3, PlayerColorBlack, false)
	put(&b, 6, 7, PlayerColorWhite, false)
	s := NewGameStateFrom(b, PlayerColorWhite)

	if got := s.MovesFrom(Square{6, 7}); len(got) != 0 {
		t.Fatalf("pieces without a capture get no moves under mandatory capture: %v", got)
	}
	before := s.Snapshot()
	_, err := s.Play(Square{6, 7}, Square{5, 6})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Fatalf("rejected move changed the state")
	}
}

func TestRejectedMoves(t *testing.T) {
	tests := []struct {
		name     string
		from, to Square
	}{
		{"off board", Square{5, 2}, Square{-1, 0}},
		{"empty square", Square{4, 1}, Square{3, 2}},
		{"opponent piece", Square{2, 1}, Square{3, 2}},
		{"backward", Square{5, 2}, Square{6, 1}},
		{"too far", Square{5, 2}, Square{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGameState()
			before := s.Snapshot()
			_, err := s.Play(tt.from, tt.to)
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("expected ErrIllegalMove, got %v", err)
			}
			if !reflect.DeepEqual(before, s.Snapshot()) {
				t.Fatalf("state changed after rejected move")
			}
		})
	}
}

func TestApplyMoveRejectsForgedCaptureList(t *testing.T) {
	b := emptyBoard()
	put(&b, 2, 1, PlayerColorBlack, false)
	put(&b, 3, 2, PlayerColorWhite, false)
	put(&b, 7, 6, PlayerColorWhite, false)
	s := NewGameStateFrom(b, PlayerColorBlack)

	forged := Move{To: Square{4, 3}, Captured: []Square{{3, 2}, {7, 6}}}
	if _, err := s.ApplyMove(Square{2, 1}, forged); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if s.Board.At(Square{7, 6}) == nil {
		t.Fatalf("forged capture removed a piece")
	}
}

func TestChainCaptureAppliesAsOneMove(t *testing.T) {
	b := emptyBoard()
	put(&b, 6, 1, PlayerColorWhite, false)
	put(&b, 5, 2, PlayerColorBlack, false)
	put(&b, 3, 4, PlayerColorBlack, false)
	put(&b, 0, 7, PlayerColorBlack, false)
	s := NewGameStateFrom(b, PlayerColorWhite)

	res, err := s.Play(Square{6, 1}, Square{2, 5})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.Captured != 2 || s.Tally.White != 2 {
		t.Fatalf("expected two captures, got %+v tally %+v", res, s.Tally)
	}
	if s.Board.At(Square{5, 2}) != nil || s.Board.At(Square{3, 4}) != nil {
		t.Fatalf("chain victims still on the board")
	}
	if s.CurrentPlayer != PlayerColorBlack || s.InChainCapture {
		t.Fatalf("turn should pass after a complete chain")
	}
}

// promotionChain sets up a white man that crowns by capturing and can then
// keep capturing as a dama.
func promotionChain() GameState {
	b := emptyBoard()
	put(&b, 2, 1, PlayerColorWhite, false)
	put(&b, 1, 2, PlayerColorBlack, false)
	put(&b, 1, 4, PlayerColorBlack, false)
	put(&b, 3, 0, PlayerColorBlack, false)
	put(&b, 6, 5, PlayerColorWhite, false)
	return NewGameStateFrom(b, PlayerColorWhite)
}

func TestPromotionOnCaptureContinuesAsDama(t *testing.T) {
	s := promotionChain()

	res, err := s.Play(Square{2, 1}, Square{0, 3})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.Promoted || !res.ChainContinues || res.TurnPassed {
		t.Fatalf("unexpected result %+v", res)
	}
	if p := s.Board.At(Square{0, 3}); p == nil || !p.King {
		t.Fatalf("piece on the far rank should be a dama")
	}
	if !s.InChainCapture || !s.MustCapture || s.Selection == nil || *s.Selection != (Square{0, 3}) {
		t.Fatalf("chain state not set: %+v", s)
	}
	if s.CurrentPlayer != PlayerColorWhite {
		t.Fatalf("turn must not pass during a chain")
	}

	if _, err := s.Play(Square{6, 5}, Square{5, 4}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("another piece moved during a chain: %v", err)
	}
	if s.Deselect() {
		t.Fatalf("deselect must be refused during a chain")
	}

	res, err = s.Play(Square{0, 3}, Square{3, 6})
	if err != nil {
		t.Fatalf("continue chain: %v", err)
	}
	if res.Promoted {
		t.Fatalf("a dama cannot be promoted again")
	}
	if !res.TurnPassed || s.InChainCapture || s.Tally.White != 2 {
		t.Fatalf("chain should be over: %+v %+v", res, s)
	}
	if s.CurrentPlayer != PlayerColorBlack {
		t.Fatalf("black should be to move")
	}
}

func TestPromotionOnSimpleMove(t *testing.T) {
	b := emptyBoard()
	put(&b, 1, 2, PlayerColorWhite, false)
	put(&b, 4, 7, PlayerColorBlack, false)
	s := NewGameStateFrom(b, PlayerColorWhite)

	res, err := s.Play(Square{1, 2}, Square{0, 1})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.Promoted || !s.Board.At(Square{0, 1}).King {
		t.Fatalf("expected promotion: %+v", res)
	}
	if promote(s.Board.At(Square{0, 1}), Square{0, 1}) {
		t.Fatalf("promote must be idempotent")
	}
}

func TestTerminalDetection(t *testing.T) {
	t.Run("last piece captured", func(t *testing.T) {
		b := emptyBoard()
		put(&b, 2, 1, PlayerColorBlack, false)
		put(&b, 3, 2, PlayerColorWhite, false)
		s := NewGameStateFrom(b, PlayerColorBlack)
		res, err := s.Play(Square{2, 1}, Square{4, 3})
		if err != nil {
			t.Fatalf("Play: %v", err)
		}
		if res.Outcome != OutcomeBlackWins || s.Outcome != OutcomeBlackWins {
			t.Fatalf("expected black to win, got %q", s.Outcome)
		}
		if _, err := s.Play(Square{4, 3}, Square{5, 4}); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("moves after the end must be rejected, got %v", err)
		}
	})

	t.Run("side to move is blocked", func(t *testing.T) {
		b := emptyBoard()
		put(&b, 1, 0, PlayerColorWhite, false)
		put(&b, 0, 1, PlayerColorBlack, false)
		s := NewGameStateFrom(b, PlayerColorWhite)
		if s.Outcome != OutcomeBlackWins {
			t.Fatalf("blocked white should lose, got %q", s.Outcome)
		}
		if winner, ok := s.Outcome.Winner(); !ok || winner != PlayerColorBlack {
			t.Fatalf("Winner: %v %v", winner, ok)
		}
	})

	t.Run("live position", func(t *testing.T) {
		s := NewGameState()
		if s.CheckTerminal() != OutcomeNone {
			t.Fatalf("start position is not terminal")
		}
	})
}

func TestKingChainEndingOnOrigin(t *testing.T) {
	// four enemies around a dama: the loop brings it home
	b := emptyBoard()
	put(&b, 4, 3, PlayerColorWhite, true)
	put(&b, 3, 2, PlayerColorBlack, false)
	put(&b, 1, 2, PlayerColorBlack, false)
	put(&b, 1, 4, PlayerColorBlack, false)
	put(&b, 3, 4, PlayerColorBlack, false)
	put(&b, 7, 0, PlayerColorBlack, false)
	s := NewGameStateFrom(b, PlayerColorWhite)

	for _, m := range s.MovesFrom(Square{4, 3}) {
		if m.To != (Square{4, 3}) {
			continue
		}
		if _, err := s.ApplyMove(Square{4, 3}, m); err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if p := s.Board.At(Square{4, 3}); p == nil || p.Color != PlayerColorWhite {
			t.Fatalf("dama vanished after returning to its square")
		}
		return
	}
	t.Fatalf("expected a chain that returns to (4,3), got %v", s.MovesFrom(Square{4, 3}))
}

func TestKingChainLandingOnCapturedSquare(t *testing.T) {
	b := emptyBoard()
	put(&b, 7, 0, PlayerColorWhite, true)
	for _, sq := range []Square{{6, 1}, {4, 1}, {2, 1}, {2, 3}, {4, 3}} {
		put(&b, sq.Row, sq.Col, PlayerColorBlack, false)
	}
	s := NewGameStateFrom(b, PlayerColorWhite)
	blackBefore := s.Board.Count(PlayerColorBlack)

	var move Move
	found := false
	for _, m := range s.MovesFrom(Square{7, 0}) {
		if m.To == (Square{6, 1}) && len(m.Captured) == 5 {
			move, found = m, true
			break
		}
	}
	if !found {
		t.Fatalf("expected a five-piece chain ending on (6,1), got %v", s.MovesFrom(Square{7, 0}))
	}

	res, err := s.ApplyMove(Square{7, 0}, move)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if p := s.Board.At(Square{6, 1}); p == nil || p.Color != PlayerColorWhite || !p.King {
		t.Fatalf("dama missing from its landing square: %+v", p)
	}
	if got := blackBefore - s.Board.Count(PlayerColorBlack); got != len(move.Captured) {
		t.Fatalf("black lost %d pieces, want %d", got, len(move.Captured))
	}
	if s.Board.Count(PlayerColorWhite) != 1 {
		t.Fatalf("white count changed: %d", s.Board.Count(PlayerColorWhite))
	}
	if s.Tally.White != 5 {
		t.Fatalf("tally: %+v", s.Tally)
	}
	if res.Outcome != OutcomeWhiteWins || s.Outcome != OutcomeWhiteWins {
		t.Fatalf("outcome: %q", s.Outcome)
	}
}
