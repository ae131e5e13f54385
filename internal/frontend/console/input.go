package console

import (
	"strconv"
	"strings"
)

// ChoiceKind classifies a line of menu input.
type ChoiceKind int

const (
	ChoiceInvalid ChoiceKind = iota
	ChoiceExit
	ChoiceHelp
	ChoiceMove
)

// Choice is a parsed menu selection.
type Choice struct {
	Kind ChoiceKind
	// Index is the zero-based move index when Kind == ChoiceMove.
	Index int
}

// ParseChoice interprets one line of menu input for a menu of n moves.
// "0" exits, "?" asks for help, and "1".."n" select a move.
//
// Postcondition: Kind == ChoiceMove implies 0 <= Index < n.
func ParseChoice(line string, n int) Choice {
	line = strings.TrimSpace(line)
	switch line {
	case "0":
		return Choice{Kind: ChoiceExit}
	case "?":
		return Choice{Kind: ChoiceHelp}
	case "":
		return Choice{Kind: ChoiceInvalid}
	}
	k, err := strconv.Atoi(line)
	if err != nil || k < 1 || k > n {
		return Choice{Kind: ChoiceInvalid}
	}
	return Choice{Kind: ChoiceMove, Index: k - 1}
}
