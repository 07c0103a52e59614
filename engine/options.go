package engine

import (
	"time"

	"scrim/game"
)

type Option func(e *ArmyEngine)

// WithTimeLimit sets the soft budget the governor checks against.
func WithTimeLimit(limit time.Duration) Option {
	return func(e *ArmyEngine) {
		if limit > 0 {
			e.TimeLimit = limit
		}
	}
}

// WithIterationLimit makes the governor also shrink the horizon past the given number
// of expanded states.
func WithIterationLimit(limit int) Option {
	return func(e *ArmyEngine) {
		if limit > 0 {
			e.IterationLimit = limit
		}
	}
}

func WithNoOps(friendly, enemy bool) Option {
	return func(e *ArmyEngine) {
		e.AllowFriendlyNoOp = friendly
		e.AllowEnemyNoOp = enemy
	}
}

func WithKillThreat(friendly, enemy bool) Option {
	return func(e *ArmyEngine) {
		e.FriendlyHasKillThreat = friendly
		e.EnemyHasKillThreat = enemy
	}
}

func WithRepetitionThreshold(threshold int) Option {
	return func(e *ArmyEngine) {
		if threshold > 0 {
			e.RepetitionThreshold = threshold
		}
	}
}

func WithParams(params game.EvaluationParams) Option {
	return func(e *ArmyEngine) {
		e.Params = params
	}
}

// WithFriendlyGradient forces friendly armies down the gradient, or along it when
// parallel moves are allowed.
func WithFriendlyGradient(gradient game.MapMatrix[int], allowParallel bool) Option {
	return func(e *ArmyEngine) {
		if allowParallel {
			e.ForceFriendlyTowardsOrParallelTo = gradient
		} else {
			e.ForceFriendlyTowards = gradient
		}
	}
}

// WithEnemyGradient forces enemy armies down the gradient, or along it when parallel
// moves are allowed.
func WithEnemyGradient(gradient game.MapMatrix[int], allowParallel bool) Option {
	return func(e *ArmyEngine) {
		if allowParallel {
			e.ForceEnemyTowardsOrParallelTo = gradient
		} else {
			e.ForceEnemyTowards = gradient
		}
	}
}

// WithSearcher installs the tree search used by Scan when asked for MCTS.
func WithSearcher(searcher TreeSearcher) Option {
	return func(e *ArmyEngine) {
		e.Searcher = searcher
	}
}

// WithPayoffLogging logs every payoff matrix down to the given depth.
func WithPayoffLogging(depth int) Option {
	return func(e *ArmyEngine) {
		e.LogEverything = true
		e.LogPayoffDepth = depth
	}
}
