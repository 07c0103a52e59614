package game

// PlayerHasPriority reports whether the player's moves resolve first on the given turn.
// Priority alternates with turn parity.
func PlayerHasPriority(player, turn int) bool {
	return player&1 == turn&1
}

// PlayerHasPriorityOver breaks the tie when both players share a parity.
func PlayerHasPriorityOver(player, other, turn int) bool {
	if player&1 != other&1 {
		return PlayerHasPriority(player, turn)
	}
	if turn&1 == 0 {
		return player < other
	}
	return player > other
}
