package engine

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// Forward is the rank delta of a pawn advance.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PromotionRank is the far rank a pawn of this color promotes on.
func (c Color) PromotionRank() int {
	if c == White {
		return 0
	}
	return 7
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (t PieceType) Valid() bool {
	switch t {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// Promotable reports whether a pawn may be replaced by a piece of this type.
func (t PieceType) Promotable() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Sliding pieces move any distance along their directions and can be obstructed.
func (t PieceType) Sliding() bool {
	return t == Rook || t == Bishop || t == Queen
}

var (
	rookDirs   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	knightSteps = []offset{{1, 2}, {-1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}}
	kingSteps   = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func (t PieceType) directions() []offset {
	switch t {
	case Rook:
		return rookDirs
	case Bishop:
		return bishopDirs
	case Queen:
		return queenDirs
	}
	return nil
}

func (t PieceType) steps() []offset {
	switch t {
	case Knight:
		return knightSteps
	case King:
		return kingSteps
	}
	return nil
}

// Piece is a board occupant. HasMoved gates a pawn's two-square advance and
// is copied with the piece on every snapshot.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Square   Square    `json:"square"`
	HasMoved bool      `json:"hasMoved"`
}

func NewPiece(t PieceType, c Color, sq Square) *Piece {
	return &Piece{Type: t, Color: c, Square: sq}
}

func (p *Piece) clone() *Piece {
	cp := *p
	return &cp
}

func (p *Piece) View() PieceView {
	return PieceView{Type: p.Type, Color: p.Color, Square: p.Square}
}

// PieceView is the read-only projection of a piece handed to renderers.
type PieceView struct {
	Type   PieceType `json:"type"`
	Color  Color     `json:"color"`
	Square Square    `json:"square"`
}
