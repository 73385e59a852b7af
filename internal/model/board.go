package model

import "github.com/NavyAnt24/Chess/internal/engine"

// BoardState is the JSON view of the live board, indexed [rank][file].
type BoardState struct {
	Board             [][]*engine.PieceView `json:"board"`
	BlackKingPosition *engine.Square        `json:"blackKingPosition"`
	WhiteKingPosition *engine.Square        `json:"whiteKingPosition"`
}

func newBoardState(b *engine.Board) *BoardState {
	board := &BoardState{}
	for i := 0; i < 8; i++ {
		board.Board = append(board.Board, make([]*engine.PieceView, 8))
	}
	for _, v := range b.Views() {
		v := v
		board.Board[v.Square.Rank][v.Square.File] = &v
	}
	if sq, ok := b.KingSquare(engine.Black); ok {
		board.BlackKingPosition = &sq
	}
	if sq, ok := b.KingSquare(engine.White); ok {
		board.WhiteKingPosition = &sq
	}
	return board
}
