package engine

import "fmt"

// Square is a (rank, file) coordinate. Rank 0 is black's back rank, file 0 is the a-file.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// OnBoard reports whether both coordinates are in [0,7].
func (s Square) OnBoard() bool {
	return s.Rank >= 0 && s.Rank < 8 && s.File >= 0 && s.File < 8
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
}

func (s Square) offset(o offset) Square {
	return Square{Rank: s.Rank + o.dr, File: s.File + o.df}
}

type offset struct {
	dr, df int
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
