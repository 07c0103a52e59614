package searcher

import "scrim/game"

// Context is where a search starts: the scrim state and the turn it looks ahead to.
// States are never mutated once built, so contexts share them freely.
type Context struct {
	State *game.BoardState
	Turns int
}

func NewContext(state *game.BoardState, turns int) *Context {
	return &Context{State: state, Turns: turns}
}
