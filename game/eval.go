package game

// EvaluationParams weights the scrim scoring. Fractions are in tenths of a tile.
type EvaluationParams struct {
	FriendlyMovePenalty10Fraction   int  `yaml:"friendly_move_penalty_10_fraction"`
	EnemyMovePenalty10Fraction      int  `yaml:"enemy_move_penalty_10_fraction"`
	KillsFriendlyArmies10Fraction   int  `yaml:"kills_friendly_armies_10_fraction"`
	KillsEnemyArmies10Fraction      int  `yaml:"kills_enemy_armies_10_fraction"`
	FriendlyMoveNoOpScale10Fraction int  `yaml:"friendly_move_no_op_scale_10_fraction"`
	EnemyMoveNoOpScale10Fraction    int  `yaml:"enemy_move_no_op_scale_10_fraction"`
	AlwaysRewardDeadArmyNoOps       bool `yaml:"always_reward_dead_army_no_ops"`
}

func DefaultEvaluationParams() EvaluationParams {
	return EvaluationParams{
		FriendlyMovePenalty10Fraction:   4,
		EnemyMovePenalty10Fraction:      -4,
		KillsFriendlyArmies10Fraction:   -10,
		KillsEnemyArmies10Fraction:      10,
		FriendlyMoveNoOpScale10Fraction: 8,
		EnemyMoveNoOpScale10Fraction:    -8,
		AlwaysRewardDeadArmyNoOps:       true,
	}
}

// captureValue is split over depth so that earlier general captures score higher.
const captureValue = 100000

// ValueInt scores the state in tenths of a tile, friendly-positive. It is a pure
// function of the state's fields.
func (s *BoardState) ValueInt(p *EvaluationParams) int {
	econDiff := 10 * s.EconDifferential()

	if s.CapturesEnemy {
		econDiff += FloorDiv(captureValue, s.Depth+4)
	}
	if s.CapturedByEnemy {
		econDiff -= FloorDiv(captureValue, s.Depth+4)
	}

	econDiff -= (s.Depth - s.FriendlySkippedMoveCount) * p.FriendlyMovePenalty10Fraction
	econDiff -= (s.Depth - s.EnemySkippedMoveCount) * p.EnemyMovePenalty10Fraction

	if s.KillsAllEnemyArmies {
		econDiff += p.KillsEnemyArmies10Fraction
	}
	if !s.KillsAllEnemyArmies || p.AlwaysRewardDeadArmyNoOps {
		econDiff += s.EnemySkippedMoveCount * p.EnemyMoveNoOpScale10Fraction
	}
	if s.KillsAllFriendlyArmies {
		econDiff += p.KillsFriendlyArmies10Fraction
	}
	if !s.KillsAllFriendlyArmies || p.AlwaysRewardDeadArmyNoOps {
		econDiff += s.FriendlySkippedMoveCount * p.FriendlyMoveNoOpScale10Fraction
	}

	return econDiff
}

// FloorDiv divides rounding toward negative infinity. Go's / truncates toward zero.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FastTanh squashes x into (-1, 1) without calling math.Tanh.
func FastTanh(x, scale float64) float64 {
	v := x * scale
	if v < 0 {
		return v / (1 - v)
	}
	return v / (1 + v)
}
