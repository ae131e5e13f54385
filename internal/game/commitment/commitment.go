// Package commitment lets the automated player bind itself to a secret move
// before the user chooses, and lets anyone verify that binding afterwards.
//
// The commitment is HMAC-SHA3-256 over the UTF-8 bytes of the chosen move's
// name, keyed by a fresh 256-bit secret and published as lowercase hex.
package commitment

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/cory-johannsen/rps/internal/game/moveset"
)

// KeySize is the secret key length in bytes.
const KeySize = 32

// ErrRandomSourceUnavailable is returned when the entropy source cannot supply
// the key or the move index. It is fatal for the round.
var ErrRandomSourceUnavailable = errors.New("secure random source unavailable")

// Reveal is the disclosed secret of a finished round.
type Reveal struct {
	Key        []byte
	MoveIndex  int
	Move       string
	Commitment string
}

// KeyHex returns the key as lowercase hex.
func (r Reveal) KeyHex() string {
	return hex.EncodeToString(r.Key)
}

// Verify reports whether the revealed key and move reproduce the commitment.
func (r Reveal) Verify() bool {
	return Verify(r.Key, r.Move, r.Commitment)
}

// Engine holds one round's secret key and move.
//
// Invariant: key, index and commitment are fixed at construction and never change.
type Engine struct {
	moves      moveset.MoveSet
	key        []byte
	index      int
	commitment string
}

// New draws a key and a move index from entropy and computes the commitment.
//
// Precondition: ms must come from moveset.New; entropy must be a
// cryptographically secure reader such as crypto/rand.Reader.
// Postcondition: Returns an Engine whose move index is uniform in [0, ms.Len()),
// or an error wrapping ErrRandomSourceUnavailable. No partial Engine is returned.
func New(ms moveset.MoveSet, entropy io.Reader) (*Engine, error) {
	if ms.Len() == 0 {
		return nil, fmt.Errorf("commitment: %w", moveset.ErrInvalidSize)
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(entropy, key); err != nil {
		return nil, fmt.Errorf("%w: reading key: %v", ErrRandomSourceUnavailable, err)
	}
	idx, err := rand.Int(entropy, big.NewInt(int64(ms.Len())))
	if err != nil {
		return nil, fmt.Errorf("%w: drawing move: %v", ErrRandomSourceUnavailable, err)
	}
	e := &Engine{
		moves: ms,
		key:   key,
		index: int(idx.Int64()),
	}
	e.commitment = Compute(e.key, ms.Move(e.index))
	return e, nil
}

// NewSecure is New backed by crypto/rand.Reader.
func NewSecure(ms moveset.MoveSet) (*Engine, error) {
	return New(ms, rand.Reader)
}

// Commitment returns the published hex digest. It is safe to show before the
// user moves.
func (e *Engine) Commitment() string {
	return e.commitment
}

// Reveal discloses the key and move. Callers must only invoke it after the
// user's move is locked in.
//
// Postcondition: The returned Key is a copy; mutating it does not affect e.
func (e *Engine) Reveal() Reveal {
	key := make([]byte, len(e.key))
	copy(key, e.key)
	return Reveal{
		Key:        key,
		MoveIndex:  e.index,
		Move:       e.moves.Move(e.index),
		Commitment: e.commitment,
	}
}

// MoveIndex returns the committed move index. The orchestrator uses it to
// resolve the round; it must not be shown to the user before Reveal.
func (e *Engine) MoveIndex() int {
	return e.index
}

// Compute returns hex(HMAC-SHA3-256(key, move)).
func Compute(key []byte, move string) string {
	return hex.EncodeToString(sum(key, move))
}

// Verify reports whether commitment equals Compute(key, move). Hex case is
// ignored; malformed hex never verifies.
func Verify(key []byte, move, commitment string) bool {
	want, err := hex.DecodeString(commitment)
	if err != nil {
		return false
	}
	return hmac.Equal(sum(key, move), want)
}

func sum(key []byte, move string) []byte {
	mac := hmac.New(sha3.New256, key)
	mac.Write([]byte(move))
	return mac.Sum(nil)
}
