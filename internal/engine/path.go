package engine

// Between lists the squares strictly between from and to along a rank, file
// or diagonal. Unaligned or adjacent squares yield nothing.
func Between(from, to Square) []Square {
	dr := to.Rank - from.Rank
	df := to.File - from.File
	if dr == 0 && df == 0 {
		return nil
	}
	if dr != 0 && df != 0 && abs(dr) != abs(df) {
		return nil
	}

	step := offset{normalize(dr), normalize(df)}
	distance := max(abs(dr), abs(df)) - 1
	if distance <= 0 {
		return nil
	}
	squares := make([]Square, 0, distance)
	sq := from
	for i := 0; i < distance; i++ {
		sq = sq.offset(step)
		squares = append(squares, sq)
	}
	return squares
}

// IsBlocked reports whether any square strictly between from and to is occupied.
func (b *Board) IsBlocked(from, to Square) bool {
	for _, sq := range Between(from, to) {
		if !b.IsEmpty(sq) {
			return true
		}
	}
	return false
}
