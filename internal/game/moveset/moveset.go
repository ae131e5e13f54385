// Package moveset validates and holds the ordered list of moves for a round.
package moveset

import (
	"errors"
	"fmt"
)

// MinSize is the smallest playable move set.
const MinSize = 3

var (
	// ErrInvalidSize is returned when a move list is shorter than MinSize or even.
	ErrInvalidSize = errors.New("moves must be an odd number of options and >= 3")
	// ErrDuplicateMove is returned when a move list contains a repeated name.
	ErrDuplicateMove = errors.New("moves must be non-repeating")
)

// MoveSet is an immutable, validated, ordered list of unique move names.
// Order defines circular adjacency for outcome resolution.
//
// Invariant: Len() is odd and >= MinSize; no two names are equal.
type MoveSet struct {
	moves []string
}

// Validate checks moves against the size rule and then the uniqueness rule.
// The size rule takes precedence when both are violated.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidSize or ErrDuplicateMove.
// moves is never modified.
func Validate(moves []string) error {
	if n := len(moves); n < MinSize || n%2 == 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	seen := make(map[string]struct{}, len(moves))
	for _, m := range moves {
		if _, ok := seen[m]; ok {
			return fmt.Errorf("%w: %q repeated", ErrDuplicateMove, m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// New validates moves and returns a MoveSet holding a private copy of them.
//
// Postcondition: Returns a valid MoveSet or a non-nil error from Validate.
func New(moves []string) (MoveSet, error) {
	if err := Validate(moves); err != nil {
		return MoveSet{}, err
	}
	cp := make([]string, len(moves))
	copy(cp, moves)
	return MoveSet{moves: cp}, nil
}

// Len returns the number of moves.
func (s MoveSet) Len() int { return len(s.moves) }

// Move returns the name at index i.
//
// Precondition: 0 <= i < Len().
func (s MoveSet) Move(i int) string {
	if i < 0 || i >= len(s.moves) {
		panic(fmt.Sprintf("moveset: index %d out of range [0, %d)", i, len(s.moves)))
	}
	return s.moves[i]
}

// Contains reports whether i is a valid index into the set.
func (s MoveSet) Contains(i int) bool {
	return i >= 0 && i < len(s.moves)
}

// Moves returns a copy of the move names in order.
func (s MoveSet) Moves() []string {
	cp := make([]string, len(s.moves))
	copy(cp, s.moves)
	return cp
}
