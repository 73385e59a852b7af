package engine

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// LegalOnBoard checks geometry, occupancy and obstruction for moving the
// piece on from to to. It does not consider whether the mover's king is left
// in check; see CheckSafe.
func (b *Board) LegalOnBoard(from, to Square) error {
	if !from.OnBoard() || !to.OnBoard() {
		return errors.Wrapf(ErrOffBoard, "%s to %s", from, to)
	}
	p := b.PieceAt(from)
	if p == nil {
		return errors.Wrapf(ErrNoPieceAtSource, "%s", from)
	}
	target := b.PieceAt(to)
	if target != nil && target.Color == p.Color {
		return errors.Wrapf(ErrOwnPieceCapture, "%s %s at %s", target.Color, target.Type, to)
	}

	if p.Type == Pawn {
		return b.legalPawnMove(p, to, target != nil)
	}
	if !slices.Contains(PossibleMoves(p, false), to) {
		return errors.Wrapf(ErrIllegalGeometry, "%s %s from %s to %s", p.Color, p.Type, from, to)
	}
	if p.Type.Sliding() && b.IsBlocked(from, to) {
		return errors.Wrapf(ErrBlocked, "%s %s from %s to %s", p.Color, p.Type, from, to)
	}
	return nil
}

func (b *Board) legalPawnMove(p *Piece, to Square, capturing bool) error {
	if !slices.Contains(PossibleMoves(p, capturing), to) {
		return errors.Wrapf(ErrIllegalGeometry, "%s pawn from %s to %s", p.Color, p.Square, to)
	}
	if !capturing && b.IsBlocked(p.Square, to) {
		return errors.Wrapf(ErrBlocked, "%s pawn from %s to %s", p.Color, p.Square, to)
	}
	return nil
}

func (b *Board) boardLegal(from, to Square) bool {
	return b.LegalOnBoard(from, to) == nil
}
