// Package game models a localized Generals.io skirmish ("scrim"): the board, the
// armies taking part, and the simultaneous-move state tree both search engines explore.
package game

// NeutralPlayer owns every tile nobody has captured.
const NeutralPlayer = -1

// Unreachable is the distance recorded for tiles a BFS never reached.
const Unreachable = 1 << 30

// Player indexes used by per-player arrays (MCTS statistics, utilities).
const (
	Friendly = 0
	Enemy    = 1
)
