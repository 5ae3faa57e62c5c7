package model

// Mark is the value held by a board cell
type Mark string

const (
	MarkEmpty Mark = ""
	MarkO     Mark = "O"
	MarkX     Mark = "X"
)

// BoardSize is the number of rows (and columns) on the board
const BoardSize = 3

// CellCount is the number of cells on the board
const CellCount = BoardSize * BoardSize

// Board is a 3x3 grid stored row-major: index = row*3 + col.
// Boards are arrays, so assigning one copies it.
type Board [CellCount]Mark

// WinningLines are the rows, columns and diagonals checked for a win, in check order
var WinningLines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// columns
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diagonals
	{0, 4, 8}, {2, 4, 6},
}

// Index converts a row and column to a cell index
func Index(row, col int) int {
	return row*BoardSize + col
}

// IsValidIndex returns true if the index addresses a cell on the board
func IsValidIndex(index int) bool {
	return index >= 0 && index < CellCount
}

// IsEmpty returns true if the cell at index holds no mark
func (b Board) IsEmpty(index int) bool {
	return IsValidIndex(index) && b[index] == MarkEmpty
}

// With returns a copy of the board with the cell at index set to mark
func (b Board) With(index int, mark Mark) Board {
	b[index] = mark
	return b
}

// IsFull returns true if every cell holds a mark
func (b Board) IsFull() bool {
	return b.EmptyCount() == 0
}

// EmptyCount returns the number of empty cells
func (b Board) EmptyCount() int {
	count := 0
	for _, m := range b {
		if m == MarkEmpty {
			count++
		}
	}
	return count
}

// Row returns the marks in the given row
func (b Board) Row(row int) []Mark {
	if row < 0 || row >= BoardSize {
		return nil
	}
	result := make([]Mark, BoardSize)
	copy(result, b[row*BoardSize:(row+1)*BoardSize])
	return result
}

// EvaluateWinner returns the mark that fills any winning line, or MarkEmpty.
// Lines are checked in WinningLines order and the first match wins.
// A full board with no line is reported as no winner; draws are not signalled.
func EvaluateWinner(b Board) Mark {
	for _, line := range WinningLines {
		first := b[line[0]]
		if first != MarkEmpty && first == b[line[1]] && first == b[line[2]] {
			return first
		}
	}
	return MarkEmpty
}
