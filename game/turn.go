package game

// DefaultRepetitionThreshold is the number of consecutive repeating turns after which
// a side may force a stalemate.
const DefaultRepetitionThreshold = 5

// ApplyJointMove plays one simulated turn on a freshly cloned child state. The side
// holding priority moves first; if that move takes the other general, the other side
// does not move at all.
func (s *BoardState) ApplyJointMove(friendly, enemy Move, repetitionThreshold int) {
	if PlayerHasPriorityOver(s.FriendlyPlayer, s.EnemyPlayer, s.Turn) {
		s.Execute(friendly, s.FriendlyPlayer, s.EnemyPlayer)
		if !s.CapturesEnemy {
			s.Execute(enemy, s.EnemyPlayer, s.FriendlyPlayer)
		}
	} else {
		s.Execute(enemy, s.EnemyPlayer, s.FriendlyPlayer)
		if !s.CapturedByEnemy {
			s.Execute(friendly, s.FriendlyPlayer, s.EnemyPlayer)
		}
	}

	s.KillsAllFriendlyArmies = len(s.FriendlyLivingArmies) == 0
	s.KillsAllEnemyArmies = len(s.EnemyLivingArmies) == 0
	if friendly.IsNoOp() {
		s.FriendlySkippedMoveCount++
	}
	if enemy.IsNoOp() {
		s.EnemySkippedMoveCount++
	}

	s.Turn++
	if s.Turn&1 == 0 {
		s.ControlledCityTurnDifferential += s.CityDifferential
	}

	s.detectRepetition(friendly, enemy, repetitionThreshold)

	s.PrevFriendlyMove = s.FriendlyMove
	s.PrevEnemyMove = s.EnemyMove
	s.FriendlyMove = friendly
	s.EnemyMove = enemy
}

// detectRepetition must run before the move records shift: FriendlyMove still holds
// last turn's move and PrevFriendlyMove the one before it.
func (s *BoardState) detectRepetition(friendly, enemy Move, threshold int) {
	bothNoOp := friendly.IsNoOp() && enemy.IsNoOp()
	// The root records no moves, so the parent must be a simulated turn
	bothNoOpTwice := bothNoOp && s.Depth-1 >= 1 && s.FriendlyMove.IsNoOp() && s.EnemyMove.IsNoOp()
	friendlyRepeats := repeats(friendly, s.PrevFriendlyMove)
	enemyRepeats := repeats(enemy, s.PrevEnemyMove)

	if !bothNoOp && !friendlyRepeats && !enemyRepeats {
		s.RepetitionCount = 0
		return
	}

	s.RepetitionCount++
	if s.RepetitionCount < threshold && !bothNoOpTwice {
		return
	}

	diff := s.EconDifferential() - s.InitialDifferential
	if diff >= 0 && (enemyRepeats || bothNoOp) {
		s.CanForceRepetition = true
	}
	if diff <= 0 && (friendlyRepeats || bothNoOp) {
		s.CanEnemyForceRepetition = true
	}
}

// repeats reports whether the move lands where the same side's move two turns ago did.
func repeats(move, twoTurnsAgo Move) bool {
	return !move.IsNoOp() && !twoTurnsAgo.IsNoOp() && move.Dest == twoTurnsAgo.Dest
}
