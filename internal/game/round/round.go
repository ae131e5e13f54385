// Package round orchestrates one provably-fair round: validate the moves,
// commit the computer's move, accept the user's move, resolve, and reveal.
package round

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rps/internal/game/commitment"
	"github.com/cory-johannsen/rps/internal/game/moveset"
	"github.com/cory-johannsen/rps/internal/game/outcome"
)

var (
	// ErrInvalidUserMove is returned by Play for an index outside [0, N).
	// The round stays in AwaitingUserMove and may be retried.
	ErrInvalidUserMove = errors.New("invalid user move")
	// ErrInvalidState is returned when an operation is called out of order.
	ErrInvalidState = errors.New("operation not valid in current round state")
)

// State is a position in the round state machine.
type State int

const (
	Init State = iota
	MovesValidated
	Committed
	AwaitingUserMove
	Resolved
	Revealed
	Failed
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case MovesValidated:
		return "moves_validated"
	case Committed:
		return "committed"
	case AwaitingUserMove:
		return "awaiting_user_move"
	case Resolved:
		return "resolved"
	case Revealed:
		return "revealed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Revealed || s == Failed
}

// Outcome is everything the caller may display once the round is revealed.
type Outcome struct {
	// Result is computer (first) versus user (second).
	Result        outcome.Result
	UserIndex     int
	UserMove      string
	ComputerIndex int
	ComputerMove  string
	Reveal        commitment.Reveal
}

// UserWon reports whether the user's move beat the computer's.
func (o Outcome) UserWon() bool { return o.Result == outcome.SecondWins }

// Round is a single game between the computer and the user. A Round owns its
// commitment engine; it is not safe for concurrent use.
type Round struct {
	id     string
	logger *zap.Logger
	state  State
	err    error

	moves  moveset.MoveSet
	engine *commitment.Engine

	userIndex int
	result    outcome.Result
}

// New returns a Round in the Init state.
//
// Postcondition: State() == Init. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Round {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Round{
		id:     id,
		logger: logger.With(zap.String("round_id", id)),
		state:  Init,
	}
}

// Begin creates a Round and starts it with moves and entropy.
//
// Postcondition: Returns a Round in Committed, or nil and the Start error.
func Begin(moves []string, entropy io.Reader, logger *zap.Logger) (*Round, error) {
	r := New(logger)
	if err := r.Start(moves, entropy); err != nil {
		return nil, err
	}
	return r, nil
}

// Start validates moves and commits the computer's move.
//
// Precondition: State() == Init.
// Postcondition: On success State() == Committed and Commitment() is non-empty.
// On validation or entropy failure State() == Failed, no engine exists, and the
// error wraps moveset.ErrInvalidSize, moveset.ErrDuplicateMove, or
// commitment.ErrRandomSourceUnavailable.
func (r *Round) Start(moves []string, entropy io.Reader) error {
	if r.state != Init {
		return r.stateError("start")
	}

	ms, err := moveset.New(moves)
	if err != nil {
		return r.fail(fmt.Errorf("validating moves: %w", err))
	}
	r.moves = ms
	r.transition(MovesValidated)

	engine, err := commitment.New(ms, entropy)
	if err != nil {
		return r.fail(fmt.Errorf("committing computer move: %w", err))
	}
	r.engine = engine
	r.transition(Committed, zap.String("commitment", engine.Commitment()))
	return nil
}

// ID returns the round's unique identifier.
func (r *Round) ID() string { return r.id }

// State returns the current state.
func (r *Round) State() State { return r.state }

// Err returns the error that moved the round to Failed, or nil.
func (r *Round) Err() error { return r.err }

// Moves returns a copy of the validated move names, or nil before validation.
func (r *Round) Moves() []string {
	if r.moves.Len() == 0 {
		return nil
	}
	return r.moves.Moves()
}

// MoveSet returns the validated move set.
func (r *Round) MoveSet() moveset.MoveSet { return r.moves }

// Commitment returns the published commitment, or "" before Committed.
func (r *Round) Commitment() string {
	if r.engine == nil {
		return ""
	}
	return r.engine.Commitment()
}

// AwaitMove marks the round as waiting for the user's selection.
//
// Precondition: State() is Committed or AwaitingUserMove.
func (r *Round) AwaitMove() error {
	switch r.state {
	case Committed:
		r.transition(AwaitingUserMove)
		return nil
	case AwaitingUserMove:
		return nil
	default:
		return r.stateError("await move")
	}
}

// Play locks in the user's move and resolves the round.
//
// Precondition: State() is Committed or AwaitingUserMove.
// Postcondition: For 0 <= userIndex < N, State() == Resolved and the result is
// outcome.Resolve(N, computer, user). Otherwise ErrInvalidUserMove is returned,
// State() == AwaitingUserMove, and the commitment is unchanged.
func (r *Round) Play(userIndex int) (outcome.Result, error) {
	if err := r.AwaitMove(); err != nil {
		return outcome.Draw, err
	}
	if !r.moves.Contains(userIndex) {
		r.logger.Debug("rejected user move", zap.Int("user_index", userIndex))
		return outcome.Draw, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidUserMove, userIndex, r.moves.Len())
	}
	r.userIndex = userIndex
	r.result = outcome.Resolve(r.moves.Len(), r.engine.MoveIndex(), userIndex)
	r.transition(Resolved, zap.Int("user_index", userIndex), zap.Stringer("result", r.result))
	return r.result, nil
}

// Reveal discloses the key and the computer's move and ends the round.
//
// Precondition: State() == Resolved.
// Postcondition: State() == Revealed; Outcome.Reveal verifies against Commitment().
func (r *Round) Reveal() (Outcome, error) {
	if r.state != Resolved {
		return Outcome{}, r.stateError("reveal")
	}
	rev := r.engine.Reveal()
	r.transition(Revealed, zap.String("key", rev.KeyHex()), zap.String("computer_move", rev.Move))
	return Outcome{
		Result:        r.result,
		UserIndex:     r.userIndex,
		UserMove:      r.moves.Move(r.userIndex),
		ComputerIndex: rev.MoveIndex,
		ComputerMove:  rev.Move,
		Reveal:        rev,
	}, nil
}

func (r *Round) transition(to State, fields ...zap.Field) {
	from := r.state
	r.state = to
	r.logger.Debug("round transition",
		append([]zap.Field{zap.Stringer("from", from), zap.Stringer("state", to)}, fields...)...,
	)
}

func (r *Round) fail(err error) error {
	r.err = err
	r.transition(Failed, zap.Error(err))
	return err
}

func (r *Round) stateError(op string) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidState, op, r.state)
}
