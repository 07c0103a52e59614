package engine

import (
	"errors"
	"fmt"
	"time"

	"scrim/game"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeLimit    = 100 * time.Millisecond
	DefaultTimeLimitDec = 5 * time.Millisecond

	// governorInterval is how many expanded states pass between clock checks.
	governorInterval = 512
)

// ArmyEngine simulates a scrim between the friendly and enemy armies. Configuration is
// read when Scan starts and must not change during a scan.
type ArmyEngine struct {
	Map            *game.Map
	FriendlyArmies []*game.Army
	EnemyArmies    []*game.Army
	FriendlyPlayer int
	EnemyPlayer    int
	Turn           int // Global turn of the live board

	AllowFriendlyNoOp bool
	AllowEnemyNoOp    bool

	// Gradients restricting movement; zero matrices install no filter
	ForceFriendlyTowards             game.MapMatrix[int]
	ForceFriendlyTowardsOrParallelTo game.MapMatrix[int]
	ForceEnemyTowards                game.MapMatrix[int]
	ForceEnemyTowardsOrParallelTo    game.MapMatrix[int]

	FriendlyHasKillThreat bool
	EnemyHasKillThreat    bool

	RepetitionThreshold int
	TimeLimit           time.Duration
	TimeLimitDec        time.Duration
	IterationLimit      int

	LogEverything  bool
	LogPayoffDepth int

	Params   game.EvaluationParams
	Searcher TreeSearcher

	// Diagnostics of the last scan
	Iterations   int
	TimeInNash   time.Duration
	TimeInNashEq time.Duration

	friendlyFilter game.MoveFilter
	enemyFilter    game.MoveFilter
	threat         *threatTracker
	arena          *game.Arena
	start          time.Time
	timeLimit      time.Duration
	toTurn         int
}

func NewArmyEngine(m *game.Map, friendly, enemy []*game.Army, friendlyPlayer, enemyPlayer, turn int, options ...Option) *ArmyEngine {
	e := &ArmyEngine{ // Default values
		Map:                 m,
		FriendlyArmies:      friendly,
		EnemyArmies:         enemy,
		FriendlyPlayer:      friendlyPlayer,
		EnemyPlayer:         enemyPlayer,
		Turn:                turn,
		AllowFriendlyNoOp:   true,
		AllowEnemyNoOp:      true,
		RepetitionThreshold: game.DefaultRepetitionThreshold,
		TimeLimit:           DefaultTimeLimit,
		TimeLimitDec:        DefaultTimeLimitDec,
		Params:              game.DefaultEvaluationParams(),
		arena:               game.NewArena(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Prepare resets the per-scan state, installs the movement filters and returns a fresh
// root for a scan of the given number of turns.
func (e *ArmyEngine) Prepare(turns int) *game.BoardState {
	e.Iterations = 0
	e.TimeInNash = 0
	e.TimeInNashEq = 0
	e.start = time.Now()
	e.timeLimit = e.TimeLimit
	e.toTurn = turns
	e.arena.Reset()

	e.friendlyFilter = gradientFilter(e.ForceFriendlyTowards, e.ForceFriendlyTowardsOrParallelTo)
	e.enemyFilter = gradientFilter(e.ForceEnemyTowards, e.ForceEnemyTowardsOrParallelTo)
	e.threat = newThreatTracker(e)

	return game.NewRootState(e.FriendlyArmies, e.EnemyArmies, e.FriendlyPlayer, e.EnemyPlayer, e.Turn)
}

func gradientFilter(strict, parallel game.MapMatrix[int]) game.MoveFilter {
	switch {
	case !strict.IsZero():
		return game.TowardsFilter(strict, true)
	case !parallel.IsZero():
		return game.TowardsFilter(parallel, false)
	default:
		return nil
	}
}

// Scan searches turns joint moves ahead and returns the expected line of play. With
// useMCTS the configured TreeSearcher runs instead of the brute force. A result whose
// single-army line is disconnected fails with ErrPathInconsistent unless noThrow is set.
func (e *ArmyEngine) Scan(turns int, noThrow, useMCTS bool) (*ArmySimResult, error) {
	root := e.Prepare(turns)

	var result *ArmySimResult
	if useMCTS {
		if e.Searcher == nil {
			return nil, errors.New("scan with mcts: no tree searcher configured")
		}
		var err error
		if result, err = e.Searcher.Search(e, root, turns); err != nil {
			return nil, fmt.Errorf("scan with mcts: %w", err)
		}
	} else {
		e.arena.Add(root)
		leaf := e.simulateRecursiveBruteForce(root)
		result = e.NewResult(leaf, e.arena.Path(leaf))
	}

	if err := e.checkPath(result.Moves); err != nil {
		if !noThrow {
			return nil, err
		}
		log.Warn().Msgf("tolerating %v", err)
	}
	return result, nil
}

// NewResult packages the leaf reached by a search and the joint moves leading to it.
func (e *ArmyEngine) NewResult(leaf *game.BoardState, moves []game.BoardMoves) *ArmySimResult {
	return &ArmySimResult{
		BestResultState:        leaf,
		Moves:                  moves,
		NetEconomyDifferential: leaf.EconDifferential() - leaf.InitialDifferential,
		Value:                  leaf.ValueInt(&e.Params),
		Iterations:             e.Iterations,
		Duration:               time.Since(e.start),
		TimeInNash:             e.TimeInNash,
		TimeInNashEq:           e.TimeInNashEq,
	}
}

func (e *ArmyEngine) simulateRecursiveBruteForce(state *game.BoardState) *game.BoardState {
	e.Iterations++
	if e.Iterations%governorInterval == 0 {
		e.govern(state)
	}
	if e.IsTerminal(state, e.toTurn) {
		return state
	}

	friendlyMoves, enemyMoves := e.Moves(state)
	payoffs := newPayoffMatrix(friendlyMoves, enemyMoves)
	for i, friendly := range friendlyMoves {
		for j, enemy := range enemyMoves {
			child := e.nextState(state, friendly, enemy, e.arena)
			payoffs.set(i, j, e.simulateRecursiveBruteForce(child), &e.Params)
		}
	}

	if e.LogEverything && state.Depth <= e.LogPayoffDepth {
		log.Debug().Msgf("payoffs at depth %d for %s\n%s", state.Depth, state, payoffs)
	}

	friendlyIdx, enemyIdx := allIndexes(len(friendlyMoves)), allIndexes(len(enemyMoves))
	if state.Depth == 0 {
		friendlyIdx, enemyIdx = e.equilibriumMoves(payoffs, friendlyIdx, enemyIdx)
	}
	return e.GetComparisonBasedExpectedResultState(payoffs, friendlyIdx, enemyIdx)
}

// govern shrinks the horizon once the budget is spent. Deeper states cut harder so the
// remaining work shifts toward cheap shallow subtrees. The budget grows a little each
// time so the same cut does not fire again straight away.
func (e *ArmyEngine) govern(state *game.BoardState) {
	overTime := time.Since(e.start) > e.timeLimit
	overIterations := e.IterationLimit > 0 && e.Iterations > e.IterationLimit
	if !overTime && !overIterations {
		return
	}

	cut := 1
	switch {
	case state.Depth > 4:
		cut += 2
	case state.Depth > 2:
		cut++
	}
	e.toTurn = max(e.toTurn-cut, 1)
	e.timeLimit += e.TimeLimitDec
	log.Debug().Msgf("scan over budget after %d iterations at depth %d, horizon now %d", e.Iterations, state.Depth, e.toTurn)
}

// IsTerminal reports whether the state ends a line of play: the horizon is reached,
// a general fell, both sides are dead, or either side can force a repetition.
func (e *ArmyEngine) IsTerminal(state *game.BoardState, toTurn int) bool {
	return state.Depth >= toTurn ||
		(state.KillsAllFriendlyArmies && state.KillsAllEnemyArmies) ||
		state.IsCaptured() ||
		state.CanForceRepetition ||
		state.CanEnemyForceRepetition
}

// Moves generates both sides' candidate moves with the engine's filters.
func (e *ArmyEngine) Moves(state *game.BoardState) (friendly, enemy []game.Move) {
	return state.FriendlyMoves(e.friendlyFilter, e.AllowFriendlyNoOp),
		state.EnemyMoves(e.enemyFilter, e.AllowEnemyNoOp)
}

// NextState plays one joint move on a child of parent. The child lives outside the
// brute-force arena.
func (e *ArmyEngine) NextState(parent *game.BoardState, friendly, enemy game.Move) *game.BoardState {
	return e.nextState(parent, friendly, enemy, nil)
}

func (e *ArmyEngine) nextState(parent *game.BoardState, friendly, enemy game.Move, arena *game.Arena) *game.BoardState {
	child := parent.ChildBoard(arena)
	child.ApplyJointMove(friendly, enemy, e.RepetitionThreshold)
	e.checkArmyPositions(child)
	return child
}

// checkPath verifies that a lone army's consecutive moves start where, or next to
// where, its previous move ended.
func (e *ArmyEngine) checkPath(moves []game.BoardMoves) error {
	if len(e.FriendlyArmies) <= 1 {
		if err := checkSide(moves, func(m game.BoardMoves) game.Move { return m.Friendly }); err != nil {
			return fmt.Errorf("friendly %w", err)
		}
	}
	if len(e.EnemyArmies) <= 1 {
		if err := checkSide(moves, func(m game.BoardMoves) game.Move { return m.Enemy }); err != nil {
			return fmt.Errorf("enemy %w", err)
		}
	}
	return nil
}

func checkSide(moves []game.BoardMoves, side func(game.BoardMoves) game.Move) error {
	previous := game.NoMove
	for turn, joint := range moves {
		move := side(joint)
		if move.IsNoOp() {
			continue
		}
		if !previous.IsNoOp() && move.Source != previous.Dest && !game.AreAdjacent(move.Source, previous.Dest) {
			return fmt.Errorf("%w: turn %d moves %s after %s", ErrPathInconsistent, turn, move, previous)
		}
		previous = move
	}
	return nil
}

func allIndexes(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}
