package agent

import (
	"testing"

	"scrim/engine"
	"scrim/game"
	"scrim/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// newCaptureEngine sets up a capture that strictly beats waiting over one turn.
func newCaptureEngine(t *testing.T) (game.Move, *engine.ArmyEngine) {
	t.Helper()
	m := game.MustParseMap("a21 b6")
	a, b := m.GetTile(0, 0), m.GetTile(1, 0)
	e := engine.NewArmyEngine(m, []*game.Army{game.NewArmy(a)}, []*game.Army{game.NewArmy(b)}, game.Friendly, game.Enemy, 0)
	return game.Move{Source: a, Dest: b}, e
}

func TestFindMove(t *testing.T) {
	t.Run("brute force capturing the weaker army", func(t *testing.T) {
		capture, e := newCaptureEngine(t)

		moves, metric, err := NewBruteForceAgent().FindMove(e, 1)

		require.NoError(t, err)
		require.Equal(t, capture, moves.Friendly)
		require.Positive(t, metric.Iterations)
	})

	t.Run("mcts capturing the weaker army", func(t *testing.T) {
		capture, e := newCaptureEngine(t)
		mcts := searcher.NewMCTS(searcher.WithIterations(2000), searcher.WithSeed(11), searcher.WithUtilityScale(0.1))

		moves, metric, err := NewEvaluationAgent(mcts).FindMove(e, 1)

		require.NoError(t, err)
		require.Equal(t, capture, moves.Friendly)
		require.Equal(t, 2000, metric.Iterations)
	})

	t.Run("sampling only moves the tree knows", func(t *testing.T) {
		_, e := newCaptureEngine(t)
		mcts := searcher.NewMCTS(searcher.WithIterations(100), searcher.WithSeed(11))
		friendly, _ := e.Moves(e.Prepare(2))

		moves, _, err := NewSamplingAgent(mcts, 1, 4).FindMove(e, 2)

		require.NoError(t, err)
		require.Contains(t, friendly, moves.Friendly)
	})
}

func TestNewSamplingAgent(t *testing.T) {
	mcts := searcher.NewMCTS(searcher.WithIterations(1))

	require.Panics(t, func() { NewSamplingAgent(mcts, 0, 1) })
}

func TestAdjustTemperature(t *testing.T) {
	stats := []searcher.MoveStat{{Visits: 1}, {Visits: 3}}

	t.Run("keeping visit proportions at temperature one", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.25, 0.75}, adjustTemperature(stats, 1), 1e-12)
	})

	t.Run("sharpening below temperature one", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.1, 0.9}, adjustTemperature(stats, 0.5), 1e-12)
	})

	t.Run("falling back to uniform without visits", func(t *testing.T) {
		require.Equal(t, []float64{0.5, 0.5}, adjustTemperature(make([]searcher.MoveStat, 2), 1))
	})
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		require.Equal(t, 1, sample([]float64{0, 1, 0}, rng))
	}
}
