package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMap(t *testing.T) {
	t.Run("reading tiles, owners and flags", func(t *testing.T) {
		m, err := ParseMap([]string{
			"a12 M N40C",
			". b30G .",
		})
		require.NoError(t, err)

		require.Equal(t, 3, m.Width)
		require.Equal(t, 2, m.Height)
		require.Equal(t, 12, m.GetTile(0, 0).Army)
		require.Equal(t, 0, m.GetTile(0, 0).Player)
		require.True(t, m.GetTile(1, 0).IsMountain)
		require.True(t, m.GetTile(2, 0).IsCity)
		require.Equal(t, NeutralPlayer, m.GetTile(2, 0).Player)
		require.Same(t, m.GetTile(1, 1), m.Generals[1])
		require.Equal(t, NeutralPlayer, m.GetTile(0, 1).Player)
	})

	t.Run("connecting four neighbours", func(t *testing.T) {
		m := MustParseMap(". . .", ". . .", ". . .")

		require.Len(t, m.GetTile(1, 1).Movable, 4)
		require.Len(t, m.GetTile(0, 0).Movable, 2)
		require.True(t, AreAdjacent(m.GetTile(0, 0), m.GetTile(1, 0)))
		require.False(t, AreAdjacent(m.GetTile(0, 0), m.GetTile(1, 1)))
		require.Nil(t, m.GetTile(3, 0))
	})

	t.Run("rejecting malformed boards", func(t *testing.T) {
		for _, rows := range [][]string{
			nil,
			{". .", "."},
			{"z3"},
			{"a1x"},
			{"N5G"},
		} {
			_, err := ParseMap(rows)
			require.Error(t, err, "rows %q", rows)
		}
	})
}

func TestDistanceMatrix(t *testing.T) {
	t.Run("routing around mountains", func(t *testing.T) {
		m := MustParseMap(
			". M .",
			". M .",
			". . .",
		)

		distances := DistanceMatrix(m, m.GetTile(0, 0))

		require.Equal(t, 0, distances.Get(m.GetTile(0, 0)))
		require.Equal(t, 4, distances.Get(m.GetTile(2, 2)))
		require.Equal(t, 6, distances.Get(m.GetTile(2, 0)))
		require.Equal(t, Unreachable, distances.Get(m.GetTile(1, 0)))
	})

	t.Run("starting from several sources", func(t *testing.T) {
		m := MustParseMap(". . . . .")

		distances := DistanceMatrix(m, m.GetTile(0, 0), m.GetTile(4, 0))

		require.Equal(t, 2, distances.Get(m.GetTile(2, 0)))
		require.Equal(t, 1, distances.Get(m.GetTile(3, 0)))
	})
}
