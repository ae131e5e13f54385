// Package outcome decides rounds by circular dominance over an odd move set.
//
// Each move beats the n/2 moves listed before it (mod n) and loses to the n/2
// listed after it, so every pair of distinct moves has a strict winner.
package outcome

import "fmt"

// Result is the outcome of one move against another.
type Result int

const (
	// Draw means both sides chose the same move.
	Draw Result = iota
	// FirstWins means the first (reference) move beats the second.
	FirstWins
	// SecondWins means the second move beats the first.
	SecondWins
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Draw:
		return "Draw"
	case FirstWins:
		return "FirstWins"
	case SecondWins:
		return "SecondWins"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Opposite swaps FirstWins and SecondWins. Draw is its own opposite.
func (r Result) Opposite() Result {
	switch r {
	case FirstWins:
		return SecondWins
	case SecondWins:
		return FirstWins
	default:
		return r
	}
}

// Resolve decides a against b in a move set of n moves.
//
// Precondition: n >= 3 and odd; 0 <= a < n; 0 <= b < n. Panics otherwise.
// Postcondition: Returns Draw iff a == b; otherwise SecondWins iff
// (b-a) mod n <= n/2. Resolve(n, a, b) == Resolve(n, b, a).Opposite().
func Resolve(n, a, b int) Result {
	if n < 3 || n%2 == 0 {
		panic(fmt.Sprintf("outcome: Resolve called with invalid move count %d", n))
	}
	if a < 0 || a >= n || b < 0 || b >= n {
		panic(fmt.Sprintf("outcome: Resolve indices (%d, %d) out of range [0, %d)", a, b, n))
	}
	if a == b {
		return Draw
	}
	d := ((b-a)%n + n) % n
	if d <= n/2 {
		return SecondWins
	}
	return FirstWins
}
