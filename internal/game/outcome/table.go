package outcome

import "github.com/cory-johannsen/rps/internal/game/moveset"

// Cell is one entry of the help table, read from the user's point of view.
type Cell string

const (
	CellDraw Cell = "Draw"
	CellWin  Cell = "Win"
	CellLose Cell = "Lose"
)

// Table computes the help matrix for ms. Row i is the computer's move and
// column j is the user's move.
//
// Postcondition: len(result) == ms.Len(); every row has ms.Len() cells;
// result[i][j] mirrors Resolve(ms.Len(), i, j) with SecondWins as CellWin.
func Table(ms moveset.MoveSet) [][]Cell {
	n := ms.Len()
	rows := make([][]Cell, n)
	for i := range rows {
		row := make([]Cell, n)
		for j := range row {
			row[j] = CellFor(Resolve(n, i, j))
		}
		rows[i] = row
	}
	return rows
}

// CellFor maps a computer-vs-user Result onto the user's point of view.
func CellFor(r Result) Cell {
	switch r {
	case SecondWins:
		return CellWin
	case FirstWins:
		return CellLose
	default:
		return CellDraw
	}
}
