package engine

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// GameResult is the outcome of Evaluate. Color names the side in check or
// checkmated and is empty for ongoing and stalemate results.
type GameResult struct {
	Status Status `json:"status"`
	Color  Color  `json:"color,omitempty"`
}

func (r GameResult) Over() bool {
	return r.Status == StatusCheckmate || r.Status == StatusStalemate
}

// Move is a (from, to) pair.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// InCheck reports whether any opposing piece has a board-legal move onto
// color's king. A board without that king is never in check.
func (b *Board) InCheck(color Color) bool {
	king, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	for _, p := range b.Pieces(color.Opponent()) {
		if b.boardLegal(p.Square, king) {
			return true
		}
	}
	return false
}

// CheckSafe plays from->to on a snapshot and reports whether the mover's king
// is safe afterwards. The receiver is never modified.
func (b *Board) CheckSafe(from, to Square) bool {
	p := b.PieceAt(from)
	if p == nil {
		return false
	}
	sim := b.Snapshot()
	sim.apply(from, to)
	return !sim.InCheck(p.Color)
}

// apply moves the occupant of from onto to, capturing by overwrite.
func (b *Board) apply(from, to Square) *Piece {
	p := b.Remove(from)
	captured := b.PieceAt(to)
	p.Square = to
	p.HasMoved = true
	b.set(to, p)
	return captured
}

func candidates(p *Piece) []Square {
	if p.Type == Pawn {
		return append(PossibleMoves(p, false), PossibleMoves(p, true)...)
	}
	return PossibleMoves(p, false)
}

// LegalMovesFrom lists the board-legal, check-safe moves of the piece on from.
func (b *Board) LegalMovesFrom(from Square) []Move {
	p := b.PieceAt(from)
	if p == nil {
		return nil
	}
	var moves []Move
	for _, to := range candidates(p) {
		if b.boardLegal(from, to) && b.CheckSafe(from, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// LegalMoves lists every board-legal, check-safe move of color.
func (b *Board) LegalMoves(color Color) []Move {
	var moves []Move
	for _, p := range b.Pieces(color) {
		moves = append(moves, b.LegalMovesFrom(p.Square)...)
	}
	return moves
}

func (b *Board) hasEscape(color Color) bool {
	for _, p := range b.Pieces(color) {
		for _, to := range candidates(p) {
			if b.boardLegal(p.Square, to) && b.CheckSafe(p.Square, to) {
				return true
			}
		}
	}
	return false
}

// Evaluate classifies the position for color. A side with no legal move is
// checkmated when in check and stalemated otherwise, including the case where
// it has no candidate move at all.
func (b *Board) Evaluate(color Color) GameResult {
	inCheck := b.InCheck(color)
	escape := b.hasEscape(color)
	switch {
	case inCheck && !escape:
		return GameResult{Status: StatusCheckmate, Color: color}
	case !escape:
		return GameResult{Status: StatusStalemate}
	case inCheck:
		return GameResult{Status: StatusCheck, Color: color}
	default:
		return GameResult{Status: StatusOngoing}
	}
}
