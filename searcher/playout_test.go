package searcher

import (
	"testing"

	"scrim/engine"
	"scrim/game"

	"github.com/stretchr/testify/require"
)

func TestPlayout(t *testing.T) {
	t.Run("stopping at the horizon", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . M . b11"}, engine.WithNoOps(false, false), engine.WithRepetitionThreshold(1000))
		m := NewMCTS(WithIterations(1), WithSeed(2))

		final := m.playout(e, e.Prepare(5), 5)

		require.Equal(t, 5, final.Depth)
	})

	t.Run("stopping at the cutoff", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . M . b11"}, engine.WithNoOps(false, false), engine.WithRepetitionThreshold(1000))
		m := NewMCTS(WithIterations(1), WithSeed(2), WithCutoff(2))

		final := m.playout(e, e.Prepare(10), 10)

		require.Equal(t, 2, final.Depth)
	})

	t.Run("following the comparison policy when biased", func(t *testing.T) {
		_, e := newEngine(t, []string{"a21 b6"})
		m := NewMCTS(WithIterations(1), WithSeed(2), WithBiasProbability(1), WithBiasedActions(5))
		root := e.Prepare(1)

		final := m.playout(e, root, 1)

		joint := e.ComparisonBasedJointMove(root)
		expected := e.NextState(root, joint.Friendly, joint.Enemy)
		require.Equal(t, expected.SimTiles, final.SimTiles)
	})

	t.Run("returning terminal states untouched", func(t *testing.T) {
		_, e := newEngine(t, []string{"a21 b6"})
		m := NewMCTS(WithIterations(1))
		root := e.Prepare(0)

		require.Same(t, root, m.playout(e, root, 0))
	})

	t.Run("ending long horizons at the clamped cutoff", func(t *testing.T) {
		_, e := newEngine(t, []string{"a50 a1"},
			engine.WithNoOps(false, true),
			engine.WithRepetitionThreshold(1<<30))
		m := NewMCTS(WithIterations(1), WithSeed(4), WithCutoff(1000))
		root := e.Prepare(1000)

		require.Equal(t, maxPlayoutSteps, m.cutoff)
		var final *game.BoardState
		require.NotPanics(t, func() { final = m.playout(e, root, 1000) })
		require.Equal(t, maxPlayoutSteps, final.Depth)
	})

	t.Run("panicking on runaway playouts", func(t *testing.T) {
		_, e := newEngine(t, []string{"a50 a1"},
			engine.WithNoOps(false, true),
			engine.WithRepetitionThreshold(1<<30))
		m := NewMCTS(WithIterations(1))
		m.cutoff = 1000 // Bypasses the clamp
		root := e.Prepare(1000)

		require.Panics(t, func() { m.playout(e, root, 1000) })
	})
}

func TestPlayoutMoves(t *testing.T) {
	_, e := newEngine(t, []string{"a11 . M . b11"},
		engine.WithNoOps(false, false),
		engine.WithRepetitionThreshold(1000))
	m := NewMCTS(WithIterations(1), WithSeed(9), WithBiasedActions(0))

	final := m.playout(e, e.Prepare(3), 3)

	require.Equal(t, 3, final.Depth)
	require.Zero(t, final.FriendlySkippedMoveCount)
	require.NotEqual(t, game.NoMove, final.FriendlyMove, "Passing was not offered")
}
