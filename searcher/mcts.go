package searcher

import (
	"math"
	"time"

	"scrim/engine"
	"scrim/experiments/metrics"
	"scrim/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

var _ engine.TreeSearcher = (*MCTS)(nil)

// MCTS searches scrims with Decoupled UCT: both players select moves independently by
// UCB1 over their own statistics, and the tree branches on the resulting joint move.
type MCTS struct {
	duration        time.Duration
	iterations      int
	cutoff          int
	biasedActions   int
	biasProbability float64
	utilityScale    float64
	unvisitedValue  float64
	rng             *rand.Rand
	metrics         metrics.Collector

	root *node
	size int
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithCutoff caps playout length. Cutoffs beyond maxPlayoutSteps are clamped so that
// long horizons end at the cutoff instead of tripping the runaway guard.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = min(depth, maxPlayoutSteps)
		}
	}
}

// WithBiasedActions caps how many playout actions follow the one-ply comparison policy.
func WithBiasedActions(actions int) Option {
	return func(m *MCTS) {
		if actions >= 0 {
			m.biasedActions = actions
		}
	}
}

func WithBiasProbability(p float64) Option {
	return func(m *MCTS) {
		if p >= 0 && p <= 1 {
			m.biasProbability = p
		}
	}
}

func WithUtilityScale(scale float64) Option {
	return func(m *MCTS) {
		if scale > 0 {
			m.utilityScale = scale
		}
	}
}

// WithUnvisitedValue replaces the exploitation term of moves nobody tried yet. Without
// it untried moves are always selected first; -1e9 gives the large negative sentinel
// scheme instead.
func WithUnvisitedValue(value float64) Option {
	return func(m *MCTS) {
		m.unvisitedValue = value
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:          DefaultCutoff,
		biasedActions:   DefaultBiasedActions,
		biasProbability: DefaultBiasProbability,
		utilityScale:    DefaultUtilityScale,
		unvisitedValue:  math.Inf(1),
		metrics:         metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Simulate runs SelectAction with the searcher's own budget.
func (m *MCTS) Simulate(e *engine.ArmyEngine, ctx *Context) *Summary {
	return m.SelectAction(e, ctx, m.duration, m.iterations)
}

// Search lets an ArmyEngine delegate scans.
func (m *MCTS) Search(e *engine.ArmyEngine, root *game.BoardState, turns int) (*engine.ArmySimResult, error) {
	summary := m.Simulate(e, NewContext(root, turns))
	log.Debug().Msgf("mcts searched %d iterations over %d nodes in %s", summary.Iterations, summary.TreeSize, summary.Duration)
	return summary.ToResult(e), nil
}

// SelectAction grows a fresh tree from the context until maxTime elapses or
// maxIterations complete. A zero limit is ignored; with both zero nothing is searched.
// The engine must have been prepared for the context's horizon.
func (m *MCTS) SelectAction(e *engine.ArmyEngine, ctx *Context, maxTime time.Duration, maxIterations int) *Summary {
	start := time.Now()
	m.size = 1
	m.root = newNode(nil, ctx.State, e, ctx.Turns)

	m.metrics.Start(m.cutoff, m.biasedActions)
	iterations := 0
	for m.keepSearching(start, iterations, maxTime, maxIterations) {
		m.simulate(e, ctx.Turns)
		m.metrics.AddIteration()
		iterations++
	}

	summary := m.summarize(ctx)
	summary.Iterations = iterations
	summary.Duration = time.Since(start)
	summary.Metric = m.metrics.Complete()
	return summary
}

func (m *MCTS) keepSearching(start time.Time, iterations int, maxTime time.Duration, maxIterations int) bool {
	if maxTime <= 0 && maxIterations <= 0 {
		return false
	}
	if maxIterations > 0 && iterations >= maxIterations {
		return false
	}
	return maxTime <= 0 || time.Since(start) < maxTime
}

func (m *MCTS) simulate(e *engine.ArmyEngine, turns int) {
	leaf := m.selectThenExpand(e, turns)
	final := m.playout(e, leaf.state, turns)
	backup(leaf, m.utility(e, final))
}

// selectThenExpand descends until it reaches a terminal node or creates a new one.
func (m *MCTS) selectThenExpand(e *engine.ArmyEngine, turns int) *node {
	n := m.root
	for !n.terminal {
		child, expanded := n.SelectOrExpand(m, e, turns)
		n = child
		if expanded {
			break
		}
	}
	return n
}

// utility maps a final state to per-player rewards. The game is zero-sum.
func (m *MCTS) utility(e *engine.ArmyEngine, state *game.BoardState) [2]float64 {
	u := game.FastTanh(float64(state.ValueInt(&e.Params)), m.utilityScale)
	return [2]float64{u, -u}
}

func backup(leaf *node, utility [2]float64) {
	leaf.visits++
	for n := leaf.parent; n != nil; {
		n = n.Backup(utility)
	}
}
