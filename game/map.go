package game

import "fmt"

// Tile is a single cell of the board. Tiles are shared by reference between every
// simulated state; the scrim never mutates them.
type Tile struct {
	ID         int     // Row-major index, unique per map
	X, Y       int     // Grid coordinates
	Player     int     // Owner, NeutralPlayer if unowned
	Army       int     // Army count on the live board
	IsCity     bool    // Cities and generals increment armies
	IsGeneral  bool    // Capturing a general ends the scrim
	IsMountain bool    // Mountains cannot be entered
	Movable    []*Tile // 4-connected neighbours (obstacles included)
}

func (t *Tile) String() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// Map represents the game board, containing all the tiles.
type Map struct {
	Width    int
	Height   int
	Tiles    []*Tile       // Indexed by tile ID
	Generals map[int]*Tile // General tile by player, when known
}

// NewMap creates an empty neutral grid with 4-connected adjacency.
func NewMap(width, height int) *Map {
	m := &Map{
		Width:    width,
		Height:   height,
		Tiles:    make([]*Tile, width*height),
		Generals: make(map[int]*Tile),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Tiles[m.Idx(x, y)] = &Tile{ID: m.Idx(x, y), X: x, Y: y, Player: NeutralPlayer}
		}
	}
	for _, tile := range m.Tiles {
		for _, d := range directions {
			if neighbor := m.GetTile(tile.X+d[0], tile.Y+d[1]); neighbor != nil {
				m.AddBorder(tile, neighbor)
			}
		}
	}
	return m
}

// up, down, left, right
var directions = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func (m *Map) Idx(x, y int) int { return y*m.Width + x }

// GetTile returns the tile at the coordinates, nil when out of bounds.
func (m *Map) GetTile(x, y int) *Tile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	return m.Tiles[m.Idx(x, y)]
}

// AddBorder adds a bidirectional border between two tiles.
func (m *Map) AddBorder(a, b *Tile) {
	if !contains(a.Movable, b) {
		a.Movable = append(a.Movable, b)
	}
	if !contains(b.Movable, a) {
		b.Movable = append(b.Movable, a)
	}
}

// IsObstacle reports whether armies can never enter the tile.
func (m *Map) IsObstacle(t *Tile) bool {
	return t.IsMountain
}

// AreAdjacent checks if two tiles share a border.
func AreAdjacent(a, b *Tile) bool {
	return contains(a.Movable, b)
}

// SetGeneral marks the tile as the player's general.
func (m *Map) SetGeneral(t *Tile, player int) {
	t.IsGeneral = true
	t.Player = player
	m.Generals[player] = t
}

// contains checks if a slice contains a specific tile (avoid duplicate borders)
func contains(slice []*Tile, item *Tile) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
