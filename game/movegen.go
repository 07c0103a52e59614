package game

// GenerateMoves lists every move the living armies can make, in tile ID order then
// neighbour order. A trailing NoMove is appended when passing is allowed, or when
// nothing else is legal.
func GenerateMoves(armies map[*Tile]SimTile, filter MoveFilter, allowNoOp bool) []Move {
	moves := make([]Move, 0, len(armies)*4+1)
	for _, source := range sortedTiles(armies) {
		for _, dest := range source.Movable {
			if dest.IsMountain {
				continue
			}
			if filter != nil && !filter.Allow(source, dest) {
				continue
			}
			moves = append(moves, Move{Source: source, Dest: dest})
		}
	}

	if allowNoOp || len(moves) == 0 {
		moves = append(moves, NoMove)
	}
	return moves
}

// FriendlyMoves generates the friendly side's candidate moves.
func (s *BoardState) FriendlyMoves(filter MoveFilter, allowNoOp bool) []Move {
	return GenerateMoves(s.FriendlyLivingArmies, filter, allowNoOp)
}

// EnemyMoves generates the enemy side's candidate moves.
func (s *BoardState) EnemyMoves(filter MoveFilter, allowNoOp bool) []Move {
	return GenerateMoves(s.EnemyLivingArmies, filter, allowNoOp)
}
