package engine

import "github.com/pkg/errors"

var (
	ErrNoPieceAtSource   = errors.New("no piece at source square")
	ErrOwnPieceCapture   = errors.New("cannot capture own piece")
	ErrIllegalGeometry   = errors.New("piece cannot move there")
	ErrBlocked           = errors.New("piece in the way")
	ErrLeavesKingInCheck = errors.New("move leaves king in check")
	ErrInvalidPromotion  = errors.New("invalid promotion piece")
	ErrOffBoard          = errors.New("square off board")
	ErrNoKing            = errors.New("king missing")
)
