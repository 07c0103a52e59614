package game

import "fmt"

// SimTile is the combat snapshot of one tile inside a scrim. Values are replaced,
// never mutated.
type SimTile struct {
	Source *Tile
	Army   int
	Player int
}

// NewSimTile snapshots the live tile.
func NewSimTile(tile *Tile) SimTile {
	return SimTile{Source: tile, Army: tile.Army, Player: tile.Player}
}

func (s SimTile) String() string {
	return fmt.Sprintf("%s p%d a%d", s.Source, s.Player, s.Army)
}
