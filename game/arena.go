package game

// Handle indexes a BoardState inside its Arena.
type Handle int

// NoParent marks the root, and states that live outside an arena.
const NoParent Handle = -1

// Arena owns every state explored by one scan. Parent links are handles into the arena,
// so the whole tree is released at once by Reset.
type Arena struct {
	states []*BoardState
}

func NewArena() *Arena {
	return &Arena{}
}

// Add registers the state and assigns its handle.
func (a *Arena) Add(s *BoardState) Handle {
	s.Handle = Handle(len(a.states))
	a.states = append(a.states, s)
	return s.Handle
}

func (a *Arena) Get(h Handle) *BoardState {
	if h == NoParent {
		return nil
	}
	return a.states[h]
}

func (a *Arena) Len() int {
	return len(a.states)
}

func (a *Arena) Reset() {
	clear(a.states)
	a.states = a.states[:0]
}

// Path walks parent handles from leaf back to the root and returns the joint moves in
// play order. The root, which never has moves, is skipped.
func (a *Arena) Path(leaf *BoardState) []BoardMoves {
	var reversed []BoardMoves
	for s := leaf; s != nil && s.Parent != NoParent; s = a.Get(s.Parent) {
		reversed = append(reversed, BoardMoves{Friendly: s.FriendlyMove, Enemy: s.EnemyMove})
	}

	path := make([]BoardMoves, len(reversed))
	for i, moves := range reversed {
		path[len(reversed)-1-i] = moves
	}
	return path
}
