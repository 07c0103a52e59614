package searcher

import (
	"scrim/engine"
	"scrim/game"
)

// node is one state of the decoupled tree. Each player keeps independent statistics
// over its own moves; children are keyed by the joint move that reached them.
type node struct {
	parent   *node
	state    *game.BoardState
	terminal bool
	moves    [2][]game.Move
	stats    [2][]stat
	children map[game.BoardMoves]*node
	selected [2]int // Move indexes chosen by the current iteration
	visits   int
}

func newNode(parent *node, state *game.BoardState, e *engine.ArmyEngine, turns int) *node {
	n := &node{
		parent:   parent,
		state:    state,
		terminal: e.IsTerminal(state, turns),
		children: make(map[game.BoardMoves]*node),
	}
	if !n.terminal {
		friendly, enemy := e.Moves(state)
		n.moves = [2][]game.Move{friendly, enemy}
		n.stats = [2][]stat{make([]stat, len(friendly)), make([]stat, len(enemy))}
	}
	return n
}

// SelectOrExpand picks a move per player and returns the child of the joint move,
// creating it if the joint move was never tried. Must not be called on terminal nodes.
func (n *node) SelectOrExpand(m *MCTS, e *engine.ArmyEngine, turns int) (child *node, expanded bool) {
	n.selected = [2]int{
		pick(n.stats[game.Friendly], n.visits, m.unvisitedValue, m.rng),
		pick(n.stats[game.Enemy], n.visits, m.unvisitedValue, m.rng),
	}
	joint := n.joint(n.selected)
	if child, ok := n.children[joint]; ok {
		return child, false
	}

	child = newNode(n, e.NextState(n.state, joint.Friendly, joint.Enemy), e, turns)
	n.children[joint] = child
	m.size++
	return child, true
}

// Backup credits both players' selected moves with their utilities and returns the
// parent.
func (n *node) Backup(utility [2]float64) *node {
	n.visits++
	for player, i := range n.selected {
		n.stats[player][i].visits++
		n.stats[player][i].score += utility[player]
	}
	return n.parent
}

func (n *node) joint(indexes [2]int) game.BoardMoves {
	return game.BoardMoves{
		Friendly: n.moves[game.Friendly][indexes[game.Friendly]],
		Enemy:    n.moves[game.Enemy][indexes[game.Enemy]],
	}
}
