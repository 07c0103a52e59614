package game

import "fmt"

// Army is a resolved army taking part in a scrim. Value excludes the one army that
// always stays behind on the tile.
type Army struct {
	Tile          *Tile
	Player        int
	Value         int
	ExpectedPaths [][]*Tile // Optional forced-path hints, carried but unused by the engines
}

// NewArmy builds an army from the live tile.
func NewArmy(tile *Tile) *Army {
	return &Army{
		Tile:   tile,
		Player: tile.Player,
		Value:  tile.Army - 1,
	}
}

func (a *Army) String() string {
	return fmt.Sprintf("p%d %d@%s", a.Player, a.Value, a.Tile)
}
