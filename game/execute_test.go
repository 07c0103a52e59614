package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Execute:
- pass -> untouched
- stale source (lost owner, army < 2) -> untouched
- attack: dest - source + 1, capture flips sign, +2 enemy / +1 neutral, cities count twice
- reinforce: dest + source - 1
- source always left with 1
- enemy moves flip the differential sign
- general capture sets the terminal flags
*/

func newScrim(t *testing.T, rows ...string) (*Map, *BoardState) {
	t.Helper()
	m := MustParseMap(rows...)
	var friendly, enemy []*Army
	for _, tile := range m.Tiles {
		if tile.Army < 2 || tile.IsGeneral {
			continue
		}
		switch tile.Player {
		case 0:
			friendly = append(friendly, NewArmy(tile))
		case 1:
			enemy = append(enemy, NewArmy(tile))
		}
	}
	return m, NewRootState(friendly, enemy, 0, 1, 0)
}

func TestExecute(t *testing.T) {
	t.Run("capturing an adjacent enemy army", func(t *testing.T) {
		m, state := newScrim(t, "a21 b6")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)

		applied := state.Execute(Move{Source: a, Dest: b}, 0, 1)

		require.True(t, applied)
		// 6 - 21 + 1 = -14, not the naive 21 - 6 = 15
		require.Equal(t, SimTile{Source: b, Army: 14, Player: 0}, state.SimTiles[b],
			"Captured tile should hold the flipped attack result")
		require.Equal(t, SimTile{Source: a, Army: 1, Player: 0}, state.SimTiles[a],
			"Source should keep one army behind")
		require.Equal(t, 2, state.TileDifferential, "Taking an enemy tile should be worth 2")
		require.Contains(t, state.FriendlyLivingArmies, b)
		require.NotContains(t, state.FriendlyLivingArmies, a)
		require.Empty(t, state.EnemyLivingArmies, "Captured enemy army should no longer live")
	})

	t.Run("conserving armies on a capture", func(t *testing.T) {
		m, state := newScrim(t, "a9 N3")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)
		sourceBefore, destBefore := state.Tile(a).Army, state.Tile(b).Army

		state.Execute(Move{Source: a, Dest: b}, 0, 1)

		resultArmy := destBefore - sourceBefore + 1
		require.Equal(t, 1, state.SimTiles[a].Army)
		require.Equal(t, -resultArmy, state.SimTiles[b].Army)
		require.Equal(t, 1, state.TileDifferential, "Taking a neutral tile should be worth 1")
	})

	t.Run("attacking a tile that holds", func(t *testing.T) {
		m, state := newScrim(t, "a5 b12")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: a, Dest: b}, 0, 1)

		require.Equal(t, SimTile{Source: b, Army: 8, Player: 1}, state.SimTiles[b])
		require.Equal(t, 8, state.EnemyLivingArmies[b].Army, "Defending army entry should be updated")
		require.Empty(t, state.FriendlyLivingArmies, "Attacker should be spent")
		require.Equal(t, 0, state.TileDifferential)
	})

	t.Run("tying an attack leaves the defender with zero", func(t *testing.T) {
		m, state := newScrim(t, "a5 N4")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: a, Dest: b}, 0, 1)

		require.Equal(t, SimTile{Source: b, Army: 0, Player: NeutralPlayer}, state.SimTiles[b])
		require.NotContains(t, state.EnemyLivingArmies, b, "Neutral tiles never become scrim armies")
	})

	t.Run("reinforcing an owned tile", func(t *testing.T) {
		m, state := newScrim(t, "a7 a3")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: a, Dest: b}, 0, 1)

		require.Equal(t, 9, state.SimTiles[b].Army, "3 + 7 - 1")
		require.Equal(t, 0, state.TileDifferential)
		require.Equal(t, 9, state.FriendlyLivingArmies[b].Army)
	})

	t.Run("enemy captures count against us", func(t *testing.T) {
		m, state := newScrim(t, "N1C b10")
		city, b := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: b, Dest: city}, 1, 0)

		require.Equal(t, -1, state.TileDifferential)
		require.Equal(t, -1, state.CityDifferential)
		require.Contains(t, state.Incrementing, city)
	})

	t.Run("taking an enemy city", func(t *testing.T) {
		m, state := newScrim(t, "a10 b2C")
		a, city := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: a, Dest: city}, 0, 1)

		require.Equal(t, 2, state.TileDifferential)
		require.Equal(t, 2, state.CityDifferential)
	})

	t.Run("capturing the enemy general", func(t *testing.T) {
		m, state := newScrim(t, "a10 b3G")
		a, general := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: a, Dest: general}, 0, 1)

		require.True(t, state.CapturesEnemy)
		require.False(t, state.CapturedByEnemy)
	})

	t.Run("losing our general", func(t *testing.T) {
		m, state := newScrim(t, "a3G b10")
		general, b := m.GetTile(0, 0), m.GetTile(1, 0)

		state.Execute(Move{Source: b, Dest: general}, 1, 0)

		require.True(t, state.CapturedByEnemy)
		require.Equal(t, -2, state.TileDifferential)
	})

	t.Run("skipping a pass", func(t *testing.T) {
		_, state := newScrim(t, "a10 b3")
		before := state.Clone()

		applied := state.Execute(NoMove, 0, 1)

		require.False(t, applied)
		require.Equal(t, before, state)
	})

	t.Run("abandoning a stale move", func(t *testing.T) {
		m, state := newScrim(t, "a10 b12 .")
		a, b, c := m.GetTile(0, 0), m.GetTile(1, 0), m.GetTile(2, 0)

		// Enemy moved first and took the friendly source
		state.Execute(Move{Source: b, Dest: a}, 1, 0)
		before := state.Clone()
		applied := state.Execute(Move{Source: a, Dest: c}, 0, 1)

		require.False(t, applied)
		require.Equal(t, before, state)
	})

	t.Run("abandoning a move from a drained army", func(t *testing.T) {
		m, state := newScrim(t, "a10 .")
		a, b := m.GetTile(0, 0), m.GetTile(1, 0)
		state.SimTiles[a] = SimTile{Source: a, Army: 1, Player: 0}

		require.False(t, state.Execute(Move{Source: a, Dest: b}, 0, 1))
	})

	t.Run("keeping living armies disjoint", func(t *testing.T) {
		m, state := newScrim(t, "a10 b4 b6")
		a, b, c := m.GetTile(0, 0), m.GetTile(1, 0), m.GetTile(2, 0)

		state.Execute(Move{Source: c, Dest: b}, 1, 0)
		state.Execute(Move{Source: a, Dest: b}, 0, 1)

		for tile := range state.FriendlyLivingArmies {
			require.NotContains(t, state.EnemyLivingArmies, tile)
		}
		// 4 + 6 - 1 = 9 defends, 9 - 10 + 1 = 0 holds
		require.Equal(t, 1, state.SimTiles[b].Player)
		require.Equal(t, 0, state.SimTiles[b].Army)
		require.NotContains(t, state.EnemyLivingArmies, b)
		require.NotContains(t, state.FriendlyLivingArmies, b)
	})
}
