// Package battle models a tactical battlefield: an 11x9 hex board, the unit
// stacks fighting on it and the commanders that cast spells for each side.
package battle

const (
	BoardWidth  = 11
	BoardHeight = 9
	BoardSize   = BoardWidth * BoardHeight
)

// IsValidCell reports whether cell lies on the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// CellIndex converts a column and row into a cell, or -1 off the board.
func CellIndex(x, y int) int {
	if x < 0 || y < 0 || x >= BoardWidth || y >= BoardHeight {
		return -1
	}
	return y*BoardWidth + x
}

// CellPoint converts a cell into its column and row.
func CellPoint(cell int) (int, int) {
	return cell % BoardWidth, cell / BoardWidth
}

// Odd rows are shifted half a cell to the right.
var (
	evenRowOffsets = [6][2]int{{-1, 0}, {1, 0}, {-1, -1}, {0, -1}, {-1, 1}, {0, 1}}
	oddRowOffsets  = [6][2]int{{-1, 0}, {1, 0}, {0, -1}, {1, -1}, {0, 1}, {1, 1}}
)

// Around returns the on-board neighbours of cell in a fixed order.
func Around(cell int) []int {
	if !IsValidCell(cell) {
		return nil
	}
	x, y := CellPoint(cell)
	offsets := evenRowOffsets
	if y%2 == 1 {
		offsets = oddRowOffsets
	}
	out := make([]int, 0, 6)
	for _, o := range offsets {
		if n := CellIndex(x+o[0], y+o[1]); n >= 0 {
			out = append(out, n)
		}
	}
	return out
}

// IsNeighbour reports whether two cells share an edge.
func IsNeighbour(a, b int) bool {
	return HexDistance(a, b) == 1
}

// HexDistance returns the number of hex steps between two cells.
func HexDistance(a, b int) int {
	aq, ar := axial(a)
	bq, br := axial(b)
	dq, dr := aq-bq, ar-br
	return max(abs(dq), abs(dr), abs(dq+dr))
}

func axial(cell int) (q, r int) {
	x, y := CellPoint(cell)
	return x - (y-(y&1))/2, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
