package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func place(t *testing.T, b *Board, typ PieceType, color Color, rank, file int) *Piece {
	t.Helper()
	p := NewPiece(typ, color, Sq(rank, file))
	require.NoError(t, b.Place(p.Square, p))
	return p
}

func mustMove(t *testing.T, b *Board, from, to Square) {
	t.Helper()
	_, err := b.Move(from, to, nil)
	require.NoError(t, err, "move %s -> %s", from, to)
}
