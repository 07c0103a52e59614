package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMap builds a map from whitespace separated tokens, one string per row:
//
//	.        empty neutral tile
//	M        mountain
//	a12      player 0 tile with 12 army ('a'..'h' are players 0..7, 'N' is neutral)
//	b30G     player 1 general with 30 army
//	N40C     neutral city with 40 army
func ParseMap(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cannot parse map: no rows")
	}

	grid := make([][]string, len(rows))
	width := -1
	for y, row := range rows {
		grid[y] = strings.Fields(row)
		if width == -1 {
			width = len(grid[y])
		} else if len(grid[y]) != width {
			return nil, fmt.Errorf("cannot parse map: row %d has %d tiles, expected %d", y, len(grid[y]), width)
		}
	}

	m := NewMap(width, len(rows))
	for y, tokens := range grid {
		for x, token := range tokens {
			if err := parseTile(m, m.GetTile(x, y), token); err != nil {
				return nil, fmt.Errorf("cannot parse tile %d,%d: %w", x, y, err)
			}
		}
	}
	return m, nil
}

// MustParseMap is ParseMap for fixtures known to be valid.
func MustParseMap(rows ...string) *Map {
	m, err := ParseMap(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func parseTile(m *Map, t *Tile, token string) error {
	switch token {
	case ".":
		return nil
	case "M":
		t.IsMountain = true
		return nil
	}

	owner := token[0]
	switch {
	case owner == 'N':
		t.Player = NeutralPlayer
	case owner >= 'a' && owner <= 'h':
		t.Player = int(owner - 'a')
	default:
		return fmt.Errorf("unknown owner %q", owner)
	}

	rest := token[1:]
	digits := strings.TrimRightFunc(rest, func(r rune) bool { return r == 'C' || r == 'G' })
	if digits != "" {
		army, err := strconv.Atoi(digits)
		if err != nil {
			return fmt.Errorf("invalid army %q: %w", digits, err)
		}
		t.Army = army
	}

	for _, flag := range rest[len(digits):] {
		switch flag {
		case 'C':
			t.IsCity = true
		case 'G':
			if t.Player == NeutralPlayer {
				return fmt.Errorf("neutral general")
			}
			m.SetGeneral(t, t.Player)
		}
	}
	return nil
}
