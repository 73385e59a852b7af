package engine

import "github.com/pkg/errors"

// PromotionChooser picks the piece a pawn of color becomes on reaching at.
type PromotionChooser func(color Color, at Square) PieceType

// PromoteTo returns a chooser that always answers t.
func PromoteTo(t PieceType) PromotionChooser {
	return func(Color, Square) PieceType { return t }
}

// Move commits from->to on the board and returns the captured piece, if any.
// The move must be board-legal and check-safe. A pawn reaching its promotion
// rank is replaced by the piece choose returns (a queen when choose is nil).
// On error the board is unchanged.
func (b *Board) Move(from, to Square, choose PromotionChooser) (*Piece, error) {
	p := b.PieceAt(from)
	if p == nil {
		return nil, errors.Wrapf(ErrNoPieceAtSource, "%s", from)
	}
	if err := b.LegalOnBoard(from, to); err != nil {
		return nil, err
	}
	if !b.CheckSafe(from, to) {
		return nil, errors.Wrapf(ErrLeavesKingInCheck, "%s %s from %s to %s", p.Color, p.Type, from, to)
	}

	var promotion PieceType
	if p.Type == Pawn && to.Rank == p.Color.PromotionRank() {
		promotion = Queen
		if choose != nil {
			promotion = choose(p.Color, to)
		}
		if !promotion.Promotable() {
			return nil, errors.Wrapf(ErrInvalidPromotion, "%q", promotion)
		}
	}

	captured := b.apply(from, to)
	if promotion != "" {
		promoted := NewPiece(promotion, p.Color, to)
		promoted.HasMoved = true
		b.set(to, promoted)
	}
	return captured, nil
}
