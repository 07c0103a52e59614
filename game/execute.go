package game

// Execute applies one side's move to the state and reports whether it was carried
// out. A pass, or a move whose source was captured or drained earlier this turn, leaves
// the state untouched.
func (s *BoardState) Execute(move Move, movingPlayer, otherPlayer int) bool {
	if move.IsNoOp() {
		return false
	}

	source := s.Tile(move.Source)
	if source.Player != movingPlayer || source.Army < 2 {
		// Stale: the other side's move this turn got there first
		return false
	}
	dest := s.Tile(move.Dest)

	living, opposing := s.armiesOf(movingPlayer)
	sign := 1
	if movingPlayer == s.EnemyPlayer {
		sign = -1
	}

	// One army always stays behind
	delete(living, move.Source)
	s.SimTiles[move.Source] = SimTile{Source: move.Source, Army: 1, Player: movingPlayer}

	result := SimTile{Source: move.Dest, Player: dest.Player}
	if dest.Player != movingPlayer {
		resultArmy := dest.Army - source.Army + 1
		if resultArmy < 0 {
			result.Army = -resultArmy
			result.Player = movingPlayer
			s.recordCapture(move.Dest, dest.Player, movingPlayer, otherPlayer, sign)
		} else {
			result.Army = resultArmy
		}
	} else {
		result.Army = dest.Army + source.Army - 1
	}
	s.SimTiles[move.Dest] = result

	if result.Player == movingPlayer {
		delete(opposing, move.Dest)
		if result.Army > 1 {
			living[move.Dest] = result
		} else {
			delete(living, move.Dest)
		}
		return true
	}

	// Defender held. Tiles only become scrim armies through explicit entry.
	if _, ok := opposing[move.Dest]; ok {
		if result.Army > 1 {
			opposing[move.Dest] = result
		} else {
			delete(opposing, move.Dest)
		}
	}
	return true
}

func (s *BoardState) recordCapture(tile *Tile, previousOwner, movingPlayer, otherPlayer, sign int) {
	gain := 1
	if previousOwner == otherPlayer {
		gain = 2
	}
	s.TileDifferential += gain * sign
	if tile.IsCity {
		s.CityDifferential += gain * sign
	}
	if tile.IsCity || tile.IsGeneral {
		s.Incrementing[tile] = struct{}{}
	}

	if tile.IsGeneral && previousOwner == otherPlayer {
		if movingPlayer == s.FriendlyPlayer {
			s.CapturesEnemy = true
		} else {
			s.CapturedByEnemy = true
		}
	}
}

// armiesOf returns the player's living armies and the opposing side's.
func (s *BoardState) armiesOf(player int) (living, opposing map[*Tile]SimTile) {
	if player == s.FriendlyPlayer {
		return s.FriendlyLivingArmies, s.EnemyLivingArmies
	}
	return s.EnemyLivingArmies, s.FriendlyLivingArmies
}
