package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/rps/internal/game/round"
)

// Status is how a session ended.
type Status int

const (
	// StatusPending means the session has not finished.
	StatusPending Status = iota
	// StatusCompleted means the round was resolved and revealed.
	StatusCompleted
	// StatusExited means the user chose exit, or input ended, before moving.
	StatusExited
	// StatusInterrupted means Stop or context cancellation ended the session.
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusExited:
		return "exited"
	case StatusInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Session drives one committed round over a line-based terminal.
// The session owns the round; nothing else may call into it while Run is active.
type Session struct {
	round  *round.Round
	in     io.Reader
	out    io.Writer
	render *Renderer
	logger *zap.Logger

	quit     chan struct{}
	quitOnce sync.Once

	mu      sync.Mutex
	status  Status
	outcome round.Outcome
}

// NewSession binds a committed round to a terminal.
//
// Precondition: rnd must be in round.Committed; in, out and render must be non-nil.
// Postcondition: Returns a Session ready for Run. A nil logger is replaced with a no-op logger.
func NewSession(rnd *round.Round, in io.Reader, out io.Writer, render *Renderer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		round:  rnd,
		in:     in,
		out:    out,
		render: render,
		logger: logger.With(zap.String("round_id", rnd.ID())),
		quit:   make(chan struct{}),
	}
}

// Run publishes the commitment, then loops on the menu until the user plays a
// move, exits, input ends, ctx is cancelled, or Stop is called. Invalid input
// and help requests re-prompt against the same commitment.
//
// Postcondition: Status() != StatusPending when Run returns nil.
func (s *Session) Run(ctx context.Context) error {
	moves := s.round.Moves()
	s.println(s.render.Commitment(s.round.Commitment()))
	s.print(s.render.Menu(moves))
	if err := s.round.AwaitMove(); err != nil {
		return fmt.Errorf("awaiting user move: %w", err)
	}

	lines, readErr := readLines(s.in)
	for {
		s.print(s.render.Prompt())

		var line string
		select {
		case <-ctx.Done():
			return s.interrupt("context cancelled")
		case <-s.quit:
			return s.interrupt("stopped")
		case err := <-readErr:
			s.println("")
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			s.logger.Info("input closed before a move was played")
			s.println(s.render.Goodbye())
			s.finish(StatusExited)
			return nil
		case line = <-lines:
		}

		choice := ParseChoice(line, len(moves))
		switch choice.Kind {
		case ChoiceExit:
			s.logger.Info("user exited before playing")
			s.println(s.render.Goodbye())
			s.finish(StatusExited)
			return nil
		case ChoiceHelp:
			s.print(s.render.Help(s.round.MoveSet()))
		case ChoiceMove:
			done, err := s.play(choice.Index)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		default:
			s.println(s.render.Invalid(len(moves)))
			s.print(s.render.Menu(moves))
		}
	}
}

func (s *Session) play(index int) (bool, error) {
	result, err := s.round.Play(index)
	if errors.Is(err, round.ErrInvalidUserMove) {
		s.println(s.render.Invalid(len(s.round.Moves())))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("playing move: %w", err)
	}
	out, err := s.round.Reveal()
	if err != nil {
		return false, fmt.Errorf("revealing round: %w", err)
	}
	s.mu.Lock()
	s.outcome = out
	s.mu.Unlock()
	s.finish(StatusCompleted)
	s.logger.Info("round complete",
		zap.String("user_move", out.UserMove),
		zap.String("computer_move", out.ComputerMove),
		zap.Stringer("result", result),
	)
	s.print(s.render.Outcome(out))
	return true, nil
}

// Start runs the session as a server.Service.
func (s *Session) Start() error {
	return s.Run(context.Background())
}

// Stop ends a running session without revealing the round. It is safe to call
// more than once and from any goroutine.
func (s *Session) Stop() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Status reports how the session ended.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Outcome returns the revealed round outcome when Status() == StatusCompleted.
func (s *Session) Outcome() (round.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.status == StatusCompleted
}

func (s *Session) finish(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *Session) interrupt(reason string) error {
	s.logger.Info("session interrupted", zap.String("reason", reason))
	s.finish(StatusInterrupted)
	return nil
}

func (s *Session) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Session) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}

// readLines feeds lines from r until EOF or a read error. The error channel
// receives nil on EOF. The reader goroutine ends with the input; a blocked
// terminal read outlives an interrupted session until the process exits.
func readLines(r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
		errs <- sc.Err()
	}()
	return lines, errs
}
