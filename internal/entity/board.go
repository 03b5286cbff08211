package entity

const (
	MarkX   = "X"
	MarkO   = "O"
	MarkTie = "-"

	EmptyCell = ""

	BoardSize = 3
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major, top-to-bottom.
type Board [9]string

// Result - returns the winning mark, MarkTie when the board is full with no
// winner, or an empty string while the game is still open.
func (that *Board) Result() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range that {
		if cell == EmptyCell {
			return ""
		}
	}

	return MarkTie
}

// Encode - renders the board as nine characters, left-to-right and
// top-to-bottom: 0 for an empty cell, 1 for X, 2 for O.
func (that *Board) Encode() string {
	out := make([]byte, 0, len(that))

	for _, cell := range that {
		switch cell {
		case MarkX:
			out = append(out, '1')
		case MarkO:
			out = append(out, '2')
		default:
			out = append(out, '0')
		}
	}

	return string(out)
}

// CellIndex - maps (x, y) coordinates to the flat board index.
func CellIndex(x, y int) int {
	return y*BoardSize + x
}
