package model

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is wrapped by every rejected move or click. A rejected
// request leaves the game untouched.
var ErrIllegalMove = errors.New("illegal move")

var (
	errOffBoard       = illegal("square is off the board")
	errNoPiece        = illegal("no piece at from square")
	errNotYourTurn    = illegal("not your turn")
	errMustCapture    = illegal("capture is mandatory")
	errChainCapture   = illegal("chain capture in progress, continue with the same piece")
	errNotDestination = illegal("not a legal destination")
	errGameOver       = illegal("game is over")
)

func illegal(reason string) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, reason)
}
