package game

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// BoardState is one node of the simultaneous-move scrim tree. A state is mutated only
// by the Execute/ApplyJointMove calls issued right after ChildBoard; afterwards it is
// treated as immutable.
type BoardState struct {
	Depth  int    // Turns simulated so far
	Turn   int    // Global game turn, drives move priority
	Handle Handle // Position in the owning arena
	Parent Handle // NoParent for the root

	FriendlyPlayer int
	EnemyPlayer    int

	TileDifferential               int
	CityDifferential               int
	ControlledCityTurnDifferential int
	InitialDifferential            int // Baseline econ differential at the root

	SimTiles             map[*Tile]SimTile
	FriendlyLivingArmies map[*Tile]SimTile
	EnemyLivingArmies    map[*Tile]SimTile
	Incrementing         map[*Tile]struct{} // Tracked, not scored yet

	FriendlyMove     Move
	EnemyMove        Move
	PrevFriendlyMove Move
	PrevEnemyMove    Move

	CapturesEnemy           bool
	CapturedByEnemy         bool
	CanForceRepetition      bool
	CanEnemyForceRepetition bool
	KillsAllFriendlyArmies  bool
	KillsAllEnemyArmies     bool

	FriendlySkippedMoveCount int
	EnemySkippedMoveCount    int
	RepetitionCount          int
}

// NewRootState builds the root of a scrim from the live armies.
func NewRootState(friendly, enemy []*Army, friendlyPlayer, enemyPlayer, turn int) *BoardState {
	s := &BoardState{
		Turn:                 turn,
		Handle:               NoParent,
		Parent:               NoParent,
		FriendlyPlayer:       friendlyPlayer,
		EnemyPlayer:          enemyPlayer,
		SimTiles:             make(map[*Tile]SimTile),
		FriendlyLivingArmies: make(map[*Tile]SimTile),
		EnemyLivingArmies:    make(map[*Tile]SimTile),
		Incrementing:         make(map[*Tile]struct{}),
	}

	add := func(armies []*Army, living map[*Tile]SimTile) {
		for _, army := range armies {
			sim := SimTile{Source: army.Tile, Army: army.Value + 1, Player: army.Player}
			s.SimTiles[army.Tile] = sim
			living[army.Tile] = sim
			if army.Tile.IsCity || army.Tile.IsGeneral {
				s.Incrementing[army.Tile] = struct{}{}
			}
		}
	}
	add(friendly, s.FriendlyLivingArmies)
	add(enemy, s.EnemyLivingArmies)

	s.InitialDifferential = s.EconDifferential()
	return s
}

// Clone copies counters and maps by value; tiles stay shared.
func (s *BoardState) Clone() *BoardState {
	clone := *s
	clone.SimTiles = maps.Clone(s.SimTiles)
	clone.FriendlyLivingArmies = maps.Clone(s.FriendlyLivingArmies)
	clone.EnemyLivingArmies = maps.Clone(s.EnemyLivingArmies)
	clone.Incrementing = maps.Clone(s.Incrementing)
	return &clone
}

// ChildBoard clones the state one level deeper. The child is registered in arena when
// one is given, otherwise it has no reachable parent.
func (s *BoardState) ChildBoard(arena *Arena) *BoardState {
	child := s.Clone()
	child.Depth = s.Depth + 1
	child.Parent = s.Handle
	child.Handle = NoParent
	if arena != nil {
		arena.Add(child)
	} else {
		child.Parent = NoParent
	}
	return child
}

// EconDifferential is the friendly-positive economic standing of the state.
func (s *BoardState) EconDifferential() int {
	return s.TileDifferential + 25*s.CityDifferential + s.ControlledCityTurnDifferential
}

// IsCaptured reports whether either general fell.
func (s *BoardState) IsCaptured() bool {
	return s.CapturesEnemy || s.CapturedByEnemy
}

// Tile returns the scrim snapshot of the tile, falling back to the live board.
func (s *BoardState) Tile(t *Tile) SimTile {
	if sim, ok := s.SimTiles[t]; ok {
		return sim
	}
	return NewSimTile(t)
}

// FriendlyArmyTiles returns the living friendly army tiles in tile ID order.
func (s *BoardState) FriendlyArmyTiles() []*Tile {
	return sortedTiles(s.FriendlyLivingArmies)
}

// EnemyArmyTiles returns the living enemy army tiles in tile ID order.
func (s *BoardState) EnemyArmyTiles() []*Tile {
	return sortedTiles(s.EnemyLivingArmies)
}

func sortedTiles(armies map[*Tile]SimTile) []*Tile {
	return slices.SortedFunc(maps.Keys(armies), func(a, b *Tile) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

func (s *BoardState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "d%d t%d tiles %d cities %d cityTurns %d", s.Depth, s.Turn,
		s.TileDifferential, s.CityDifferential, s.ControlledCityTurnDifferential)
	if s.CapturesEnemy {
		sb.WriteString(" CAPTURES")
	}
	if s.CapturedByEnemy {
		sb.WriteString(" CAPTURED")
	}
	if s.KillsAllFriendlyArmies {
		sb.WriteString(" friendlyDead")
	}
	if s.KillsAllEnemyArmies {
		sb.WriteString(" enemyDead")
	}
	if s.CanForceRepetition {
		sb.WriteString(" fRepeat")
	}
	if s.CanEnemyForceRepetition {
		sb.WriteString(" eRepeat")
	}
	for _, t := range s.FriendlyArmyTiles() {
		fmt.Fprintf(&sb, " f[%s]", s.FriendlyLivingArmies[t])
	}
	for _, t := range s.EnemyArmyTiles() {
		fmt.Fprintf(&sb, " e[%s]", s.EnemyLivingArmies[t])
	}
	return sb.String()
}
