package commitment_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rps/internal/game/commitment"
	"github.com/cory-johannsen/rps/internal/game/moveset"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func classic(t require.TestingT) moveset.MoveSet {
	ms, err := moveset.New([]string{"Rock", "Paper", "Scissors"})
	require.NoError(t, err)
	return ms
}

func sequentialKey() []byte {
	key := make([]byte, commitment.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// TestCompute_KnownAnswer pins HMAC-SHA3-256 output against an independent implementation.
func TestCompute_KnownAnswer(t *testing.T) {
	assert.Equal(t,
		"70b449a7f80bf8d075df1b98fe0afd39e68142b636a1fcf1c2b23c8090d5bda2",
		commitment.Compute(sequentialKey(), "Rock"))
	assert.Equal(t,
		"22283f946becb0e72e2d9399e149977139e5ccb8573e0ca6c408fb33c15486b2",
		commitment.Compute(make([]byte, 32), "Ножницы"),
		"move names are hashed as UTF-8")
}

func TestVerify(t *testing.T) {
	key := sequentialKey()
	c := commitment.Compute(key, "Rock")
	assert.True(t, commitment.Verify(key, "Rock", c))
	assert.True(t, commitment.Verify(key, "Rock", strings.ToUpper(c)))
	assert.False(t, commitment.Verify(key, "Paper", c))
	assert.False(t, commitment.Verify(make([]byte, 32), "Rock", c))
	assert.False(t, commitment.Verify(key, "Rock", "not-hex"))
	assert.False(t, commitment.Verify(key, "Rock", c[:10]))
}

func TestNew_CommitmentMatchesReveal(t *testing.T) {
	e, err := commitment.NewSecure(classic(t))
	require.NoError(t, err)

	r := e.Reveal()
	assert.Len(t, r.Key, commitment.KeySize)
	assert.Equal(t, e.MoveIndex(), r.MoveIndex)
	assert.Contains(t, []string{"Rock", "Paper", "Scissors"}, r.Move)
	assert.Equal(t, e.Commitment(), r.Commitment)
	assert.Equal(t, commitment.Compute(r.Key, r.Move), e.Commitment())
	assert.True(t, r.Verify())
	assert.Len(t, r.KeyHex(), 2*commitment.KeySize)
	assert.Len(t, e.Commitment(), 64)
}

func TestCommitment_Idempotent(t *testing.T) {
	e, err := commitment.NewSecure(classic(t))
	require.NoError(t, err)
	first := e.Commitment()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Commitment())
	}
}

func TestReveal_ReturnsCopy(t *testing.T) {
	e, err := commitment.NewSecure(classic(t))
	require.NoError(t, err)
	r := e.Reveal()
	r.Key[0] ^= 0xff
	assert.True(t, e.Reveal().Verify())
}

func TestNew_KeyFromEntropy(t *testing.T) {
	var src bytes.Buffer
	src.Write(sequentialKey())
	src.Write(bytes.Repeat([]byte{0}, 64))

	e, err := commitment.New(classic(t), &src)
	require.NoError(t, err)
	r := e.Reveal()
	assert.Equal(t, sequentialKey(), r.Key)
	assert.GreaterOrEqual(t, r.MoveIndex, 0)
	assert.Less(t, r.MoveIndex, 3)
}

func TestNew_FailingSource(t *testing.T) {
	e, err := commitment.New(classic(t), failingReader{})
	assert.Nil(t, e)
	assert.ErrorIs(t, err, commitment.ErrRandomSourceUnavailable)
}

// TestNew_ShortSource verifies a source that runs dry mid-key never yields an engine.
func TestNew_ShortSource(t *testing.T) {
	e, err := commitment.New(classic(t), bytes.NewReader(make([]byte, 10)))
	assert.Nil(t, e)
	assert.ErrorIs(t, err, commitment.ErrRandomSourceUnavailable)
}

func TestNew_ZeroMoveSet(t *testing.T) {
	_, err := commitment.NewSecure(moveset.MoveSet{})
	assert.ErrorIs(t, err, moveset.ErrInvalidSize)
}

// TestCommitment_Hiding verifies separate engines produce distinct commitments,
// including for the same move.
func TestCommitment_Hiding(t *testing.T) {
	ms := classic(t)
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		e, err := commitment.NewSecure(ms)
		require.NoError(t, err)
		_, dup := seen[e.Commitment()]
		require.False(t, dup, "commitment collision on trial %d", i)
		seen[e.Commitment()] = struct{}{}
	}
}

// TestNew_MoveIndexRoughlyUniform guards against a biased or constant move
// source: 3000 draws over 3 moves should land near 1000 each.
func TestNew_MoveIndexRoughlyUniform(t *testing.T) {
	ms := classic(t)
	counts := make([]int, ms.Len())
	for i := 0; i < 3000; i++ {
		e, err := commitment.NewSecure(ms)
		require.NoError(t, err)
		counts[e.MoveIndex()]++
	}
	for i, c := range counts {
		assert.Greater(t, c, 800, "move %d drawn %d times", i, c)
		assert.Less(t, c, 1200, "move %d drawn %d times", i, c)
	}
}

func TestPropertyVerify_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		key := rapid.SliceOfN(rapid.Byte(), commitment.KeySize, commitment.KeySize).Draw(rt, "key")
		move := rapid.String().Draw(rt, "move")
		c := commitment.Compute(key, move)
		assert.True(rt, commitment.Verify(key, move, c))
		assert.False(rt, commitment.Verify(key, move+"x", c))
	})
}
