package engine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Board is an 8x8 grid of optional pieces indexed [rank][file].
type Board struct {
	grid [8][8]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewGame returns the standard starting arrangement. Black occupies ranks 0
// and 1, white occupies ranks 6 and 7.
func NewGame() *Board {
	b := NewBoard()
	for file, t := range backRank {
		b.set(Sq(0, file), NewPiece(t, Black, Sq(0, file)))
		b.set(Sq(7, file), NewPiece(t, White, Sq(7, file)))
		b.set(Sq(1, file), NewPiece(Pawn, Black, Sq(1, file)))
		b.set(Sq(6, file), NewPiece(Pawn, White, Sq(6, file)))
	}
	return b
}

// FromPieces builds a board from an arbitrary set-up. Pieces are copied.
func FromPieces(pieces []Piece) (*Board, error) {
	b := NewBoard()
	for i := range pieces {
		p := pieces[i]
		if !p.Square.OnBoard() {
			return nil, errors.Wrapf(ErrOffBoard, "piece %d at %s", i, p.Square)
		}
		if !p.Type.Valid() || !p.Color.Valid() {
			return nil, errors.Errorf("piece %d: unknown %s %s", i, p.Color, p.Type)
		}
		if !b.IsEmpty(p.Square) {
			return nil, errors.Errorf("piece %d: square %s already occupied", i, p.Square)
		}
		b.set(p.Square, p.clone())
	}
	return b, nil
}

// PieceAt returns the occupant of sq, or nil when sq is empty or off board.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return b.grid[sq.Rank][sq.File]
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == nil
}

// Place puts p on sq, overwriting any occupant, and updates p's square.
func (b *Board) Place(sq Square, p *Piece) error {
	if !sq.OnBoard() {
		return errors.Wrapf(ErrOffBoard, "place at %s", sq)
	}
	p.Square = sq
	b.set(sq, p)
	return nil
}

// Remove clears sq and returns the piece that was there.
func (b *Board) Remove(sq Square) *Piece {
	p := b.PieceAt(sq)
	if p != nil {
		b.set(sq, nil)
	}
	return p
}

func (b *Board) set(sq Square, p *Piece) {
	b.grid[sq.Rank][sq.File] = p
}

// Snapshot returns a deep copy; no piece is shared with b.
func (b *Board) Snapshot() *Board {
	cp := &Board{}
	for r := range b.grid {
		for f, p := range b.grid[r] {
			if p != nil {
				cp.grid[r][f] = p.clone()
			}
		}
	}
	return cp
}

func (b *Board) each(fn func(sq Square, p *Piece)) {
	for r := range b.grid {
		for f, p := range b.grid[r] {
			fn(Sq(r, f), p)
		}
	}
}

// Pieces lists every piece of color in rank-major order.
func (b *Board) Pieces(color Color) []*Piece {
	var pieces []*Piece
	b.each(func(_ Square, p *Piece) {
		if p != nil && p.Color == color {
			pieces = append(pieces, p)
		}
	})
	return pieces
}

func (b *Board) KingSquare(color Color) (Square, bool) {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p.Square, true
		}
	}
	return Square{}, false
}

func (b *Board) View(sq Square) (PieceView, bool) {
	p := b.PieceAt(sq)
	if p == nil {
		return PieceView{}, false
	}
	return p.View(), true
}

// Views lists every occupant in rank-major order.
func (b *Board) Views() []PieceView {
	views := make([]PieceView, 0, 32)
	b.each(func(_ Square, p *Piece) {
		if p != nil {
			views = append(views, p.View())
		}
	})
	return views
}

// Validate reports every broken board invariant.
func (b *Board) Validate() error {
	var result *multierror.Error
	kings := make(map[Color]int, 2)
	b.each(func(sq Square, p *Piece) {
		if p == nil {
			return
		}
		if p.Square != sq {
			result = multierror.Append(result, fmt.Errorf("%s %s at %s records square %s", p.Color, p.Type, sq, p.Square))
		}
		if p.Type == King {
			kings[p.Color]++
		}
		if p.Type == Pawn && sq.Rank == p.Color.PromotionRank() {
			result = multierror.Append(result, fmt.Errorf("%s pawn on promotion rank at %s", p.Color, sq))
		}
	})
	for _, c := range []Color{White, Black} {
		switch n := kings[c]; {
		case n == 0:
			result = multierror.Append(result, errors.Wrapf(ErrNoKing, "%s", c))
		case n > 1:
			result = multierror.Append(result, fmt.Errorf("%s has %d kings", c, n))
		}
	}
	return result.ErrorOrNil()
}
