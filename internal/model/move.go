package model

import "github.com/NavyAnt24/Chess/internal/engine"

// WSMove is a move request as sent by clients. Promotion is optional and
// defaults to a queen.
type WSMove struct {
	From      engine.Square    `json:"from"`
	To        engine.Square    `json:"to"`
	Promotion engine.PieceType `json:"promotion,omitempty"`
}

type Ply struct {
	Piece         engine.PieceView  `json:"piece"`
	From          engine.Square     `json:"from"`
	To            engine.Square     `json:"to"`
	CapturedPiece *engine.PieceView `json:"capturedPiece"`
	Promotion     engine.PieceType  `json:"promotion,omitempty"`
}

// Move pairs white's ply with black's reply.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}
