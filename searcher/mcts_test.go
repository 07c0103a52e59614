package searcher

import (
	"testing"
	"time"

	"scrim/engine"
	"scrim/game"

	"github.com/stretchr/testify/require"
)

func TestNewMCTS(t *testing.T) {
	t.Run("requiring a search budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS() })
	})

	t.Run("ignoring invalid options", func(t *testing.T) {
		m := NewMCTS(WithIterations(10), WithCutoff(-1), WithBiasProbability(2), WithUtilityScale(0))

		require.Equal(t, DefaultCutoff, m.cutoff)
		require.Equal(t, DefaultBiasProbability, m.biasProbability)
		require.Equal(t, DefaultUtilityScale, m.utilityScale)
	})
}

func TestSelectAction(t *testing.T) {
	t.Run("running exactly the iteration budget", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . . b11"})
		m := NewMCTS(WithIterations(1), WithSeed(3))

		summary := m.SelectAction(e, NewContext(e.Prepare(4), 4), 0, 250)

		require.Equal(t, 250, summary.Iterations)
		require.Equal(t, 250, m.root.visits)
		visits := 0
		for _, stat := range summary.FriendlyStats {
			visits += stat.Visits
		}
		require.Equal(t, 250, visits, "Every iteration passes through the root")
		require.Greater(t, summary.TreeSize, 1)
		require.LessOrEqual(t, len(summary.Moves), 4)
	})

	t.Run("stopping on the time budget", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . . b11"})
		m := NewMCTS(WithIterations(1), WithSeed(3))

		start := time.Now()
		summary := m.SelectAction(e, NewContext(e.Prepare(20), 20), 20*time.Millisecond, 0)

		require.Positive(t, summary.Iterations)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("searching nothing without a budget", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . . b11"})
		m := NewMCTS(WithIterations(1), WithSeed(3))
		root := e.Prepare(4)

		summary := m.SelectAction(e, NewContext(root, 4), 0, 0)

		require.Zero(t, summary.Iterations)
		require.Empty(t, summary.Moves)
		require.Same(t, root, summary.ResultState)
	})

	t.Run("finding the capture of an adjacent weaker army", func(t *testing.T) {
		m, e := newEngine(t, []string{"a21 b6"})
		mcts := NewMCTS(WithIterations(1), WithSeed(11), WithUtilityScale(0.1))

		// Waiting can still capture next turn, so only a single turn makes the capture strictly best
		summary := mcts.SelectAction(e, NewContext(e.Prepare(1), 1), 0, 2000)

		require.Equal(t, game.Move{Source: m.GetTile(0, 0), Dest: m.GetTile(1, 0)}, summary.BestMoves.Friendly)
		require.NotEmpty(t, summary.Moves)
		require.Equal(t, summary.BestMoves, summary.Moves[0])
		require.Equal(t, len(summary.Moves), summary.ResultState.Depth)
	})

	t.Run("collecting metrics", func(t *testing.T) {
		_, e := newEngine(t, []string{"a11 . . b11"})
		m := NewMCTS(WithIterations(1), WithSeed(3), WithMetrics(), WithBiasedActions(2))

		summary := m.SelectAction(e, NewContext(e.Prepare(3), 3), 0, 100)

		require.Equal(t, 100, summary.Metric.Iterations)
		require.Equal(t, 2, summary.Metric.BiasedActions)
		require.LessOrEqual(t, summary.Metric.BiasedSteps, 200)
		require.Equal(t, 100, summary.Metric.FullPlayouts, "The horizon ends every playout before the cutoff")
	})
}

func TestUtility(t *testing.T) {
	_, e := newEngine(t, []string{"a21 b6"})
	m := NewMCTS(WithIterations(1))
	a, b := e.Map.GetTile(0, 0), e.Map.GetTile(1, 0)
	root := e.Prepare(1)

	t.Run("rewarding both players zero-sum", func(t *testing.T) {
		u := m.utility(e, e.NextState(root, game.Move{Source: a, Dest: b}, game.NoMove))

		require.Positive(t, u[game.Friendly])
		require.Equal(t, -u[game.Friendly], u[game.Enemy])
		require.Less(t, u[game.Friendly], 1.0)
	})

	t.Run("scoring an untouched board at zero", func(t *testing.T) {
		u := m.utility(e, root)

		require.Equal(t, [2]float64{0, 0}, u)
	})
}

func TestSearch(t *testing.T) {
	t.Run("answering engine scans", func(t *testing.T) {
		_, e := newEngine(t, []string{"a21 b6"}, engine.WithSearcher(NewMCTS(WithIterations(200), WithSeed(5))))

		result, err := e.Scan(2, true, true)

		require.NoError(t, err)
		require.Equal(t, 200, result.Iterations)
		require.LessOrEqual(t, len(result.Moves), 2)
		require.Equal(t, result.BestResultState.ValueInt(&e.Params), result.Value)
	})
}
