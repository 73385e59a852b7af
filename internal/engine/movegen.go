package engine

// PossibleMoves returns the on-board destinations p's geometry allows,
// ignoring occupancy, obstruction and check. For pawns capturing selects the
// diagonal capture relation instead of the forward quiet relation; other
// pieces ignore it.
func PossibleMoves(p *Piece, capturing bool) []Square {
	switch {
	case p.Type == Pawn && capturing:
		return pawnCaptures(p)
	case p.Type == Pawn:
		return pawnAdvances(p)
	case p.Type.Sliding():
		return slides(p)
	default:
		return stepsFrom(p.Square, p.Type.steps())
	}
}

func slides(p *Piece) []Square {
	moves := make([]Square, 0, 28)
	for _, dir := range p.Type.directions() {
		for i := 1; i < 8; i++ {
			sq := p.Square.offset(offset{dir.dr * i, dir.df * i})
			if !sq.OnBoard() {
				break
			}
			moves = append(moves, sq)
		}
	}
	return moves
}

func stepsFrom(from Square, steps []offset) []Square {
	moves := make([]Square, 0, len(steps))
	for _, step := range steps {
		if sq := from.offset(step); sq.OnBoard() {
			moves = append(moves, sq)
		}
	}
	return moves
}

func pawnAdvances(p *Piece) []Square {
	fwd := p.Color.Forward()
	steps := []offset{{fwd, 0}}
	if !p.HasMoved {
		steps = append(steps, offset{2 * fwd, 0})
	}
	return stepsFrom(p.Square, steps)
}

func pawnCaptures(p *Piece) []Square {
	fwd := p.Color.Forward()
	return stepsFrom(p.Square, []offset{{fwd, 1}, {fwd, -1}})
}
