package engine

import (
	"scrim/game"
)

// threatTracker holds the distances to each general whose side is under a kill threat.
type threatTracker struct {
	friendlyGeneral   *game.Tile
	enemyGeneral      *game.Tile
	toFriendlyGeneral game.MapMatrix[int]
	toEnemyGeneral    game.MapMatrix[int]
}

func newThreatTracker(e *ArmyEngine) *threatTracker {
	t := &threatTracker{}
	if e.Map == nil {
		return t
	}
	if general, ok := e.Map.Generals[e.FriendlyPlayer]; ok && e.EnemyHasKillThreat {
		t.friendlyGeneral = general
		t.toFriendlyGeneral = game.DistanceMatrix(e.Map, general)
	}
	if general, ok := e.Map.Generals[e.EnemyPlayer]; ok && e.FriendlyHasKillThreat {
		t.enemyGeneral = general
		t.toEnemyGeneral = game.DistanceMatrix(e.Map, general)
	}
	return t
}

// checkArmyPositions settles kill threats early. The side whose army can reach the
// opposing general with enough army to take it first is credited with the capture;
// equal arrivals go to whoever holds priority on the arrival turn.
func (e *ArmyEngine) checkArmyPositions(state *game.BoardState) {
	if e.threat == nil || state.IsCaptured() {
		return
	}

	friendly := arrival(state, state.FriendlyArmyTiles(), state.FriendlyLivingArmies, e.threat.enemyGeneral, e.threat.toEnemyGeneral)
	enemy := arrival(state, state.EnemyArmyTiles(), state.EnemyLivingArmies, e.threat.friendlyGeneral, e.threat.toFriendlyGeneral)

	switch {
	case friendly < 0 && enemy < 0:
		return
	case enemy < 0 || (friendly >= 0 && friendly < enemy):
		state.CapturesEnemy = true
	case friendly < 0 || enemy < friendly:
		state.CapturedByEnemy = true
	case game.PlayerHasPriorityOver(state.FriendlyPlayer, state.EnemyPlayer, state.Turn+friendly-1):
		state.CapturesEnemy = true
	default:
		state.CapturedByEnemy = true
	}
}

// arrival returns the fewest turns any of the armies needs to take the general, or -1
// if none can. Armies lose one unit per tile crossed and the general grows by one every
// two turns.
func arrival(state *game.BoardState, tiles []*game.Tile, armies map[*game.Tile]game.SimTile, general *game.Tile, distances game.MapMatrix[int]) int {
	if general == nil {
		return -1
	}
	defender := state.Tile(general)

	best := -1
	for _, tile := range tiles {
		d := distances.Get(tile)
		if d == game.Unreachable || d == 0 {
			continue
		}
		strength := armies[tile].Army - (d - 1)
		defence := defender.Army + game.FloorDiv(d, 2)
		if strength > defence+1 && (best < 0 || d < best) {
			best = d
		}
	}
	return best
}
