package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"scrim/game"
	"scrim/nash"

	"github.com/rs/zerolog/log"
)

// PayoffMatrix holds the leaf reached by every joint move of one state, indexed
// [friendly][enemy], and the leaf values.
type PayoffMatrix struct {
	FriendlyMoves []game.Move
	EnemyMoves    []game.Move
	Values        [][]int
	States        [][]*game.BoardState
}

func newPayoffMatrix(friendlyMoves, enemyMoves []game.Move) *PayoffMatrix {
	p := &PayoffMatrix{
		FriendlyMoves: friendlyMoves,
		EnemyMoves:    enemyMoves,
		Values:        make([][]int, len(friendlyMoves)),
		States:        make([][]*game.BoardState, len(friendlyMoves)),
	}
	for i := range friendlyMoves {
		p.Values[i] = make([]int, len(enemyMoves))
		p.States[i] = make([]*game.BoardState, len(enemyMoves))
	}
	return p
}

func (p *PayoffMatrix) set(i, j int, leaf *game.BoardState, params *game.EvaluationParams) {
	p.States[i][j] = leaf
	p.Values[i][j] = leaf.ValueInt(params)
}

func (p *PayoffMatrix) String() string {
	var sb strings.Builder
	for i, row := range p.Values {
		fmt.Fprintf(&sb, "%-12s", p.FriendlyMoves[i])
		for _, value := range row {
			fmt.Fprintf(&sb, " %7d", value)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// resolve returns the friendly-optimal cell, the friendly move whose worst enemy reply
// is best, and the enemy-optimal cell, the enemy move whose best friendly reply is
// worst. Ties keep the earliest index.
func (p *PayoffMatrix) resolve(friendlyIdx, enemyIdx []int) (friendly, enemy [2]int) {
	bestWorst := math.MinInt
	for _, i := range friendlyIdx {
		reply, worst := -1, math.MaxInt
		for _, j := range enemyIdx {
			if p.Values[i][j] < worst {
				reply, worst = j, p.Values[i][j]
			}
		}
		if worst > bestWorst {
			friendly, bestWorst = [2]int{i, reply}, worst
		}
	}

	worstBest := math.MaxInt
	for _, j := range enemyIdx {
		reply, best := -1, math.MinInt
		for _, i := range friendlyIdx {
			if p.Values[i][j] > best {
				reply, best = i, p.Values[i][j]
			}
		}
		if best < worstBest {
			enemy, worstBest = [2]int{reply, j}, best
		}
	}
	return friendly, enemy
}

// GetComparisonBasedExpectedResultState resolves the matrix, restricted to the given
// move indexes, by minimax from both sides and returns the leaf of the friendly-optimal
// line. A different enemy-optimal line is only logged.
func (e *ArmyEngine) GetComparisonBasedExpectedResultState(p *PayoffMatrix, friendlyIdx, enemyIdx []int) *game.BoardState {
	friendly, enemy := p.resolve(friendlyIdx, enemyIdx)
	if friendly != enemy {
		log.Debug().Msgf("minimax lines diverge: friendly-optimal %s / %s (%d), enemy-optimal %s / %s (%d)",
			p.FriendlyMoves[friendly[0]], p.EnemyMoves[friendly[1]], p.Values[friendly[0]][friendly[1]],
			p.FriendlyMoves[enemy[0]], p.EnemyMoves[enemy[1]], p.Values[enemy[0]][enemy[1]])
	}
	return p.States[friendly[0]][friendly[1]]
}

// ComparisonBasedJointMove resolves a single ply from state by comparing the immediate
// children. Used to bias playouts.
func (e *ArmyEngine) ComparisonBasedJointMove(state *game.BoardState) game.BoardMoves {
	friendlyMoves, enemyMoves := e.Moves(state)
	p := newPayoffMatrix(friendlyMoves, enemyMoves)
	for i, friendly := range friendlyMoves {
		for j, enemy := range enemyMoves {
			p.set(i, j, e.NextState(state, friendly, enemy), &e.Params)
		}
	}
	cell, _ := p.resolve(allIndexes(len(friendlyMoves)), allIndexes(len(enemyMoves)))
	return game.BoardMoves{Friendly: friendlyMoves[cell[0]], Enemy: enemyMoves[cell[1]]}
}

// equilibriumMoves narrows both move lists to the moves the zero-sum equilibrium
// supports. Any anomaly keeps the side's full list.
func (e *ArmyEngine) equilibriumMoves(p *PayoffMatrix, friendlyIdx, enemyIdx []int) ([]int, []int) {
	start := time.Now()
	defer func() { e.TimeInNash += time.Since(start) }()

	solveStart := time.Now()
	solution, err := nash.SolveZeroSum(p.Values)
	e.TimeInNashEq += time.Since(solveStart)
	if err != nil {
		log.Warn().Msgf("equilibrium failed, keeping all moves: %v", err)
		return friendlyIdx, enemyIdx
	}

	friendly, err := solution.RowMoves()
	friendlyIdx = supportedOrAll(friendly, err, friendlyIdx, "friendly", solution.Method)
	enemy, err := solution.ColMoves()
	enemyIdx = supportedOrAll(enemy, err, enemyIdx, "enemy", solution.Method)
	return friendlyIdx, enemyIdx
}

func supportedOrAll(supported []int, err error, all []int, side string, method nash.Method) []int {
	switch {
	case err == nil:
		return supported
	case errors.Is(err, nash.ErrMultipleSupportedMoves):
		log.Warn().Msgf("%s %s equilibrium is mixed over %v, keeping all %d moves", method, side, supported, len(all))
	default:
		log.Warn().Msgf("%s %s equilibrium anomaly, keeping all %d moves: %v", method, side, len(all), err)
	}
	return all
}
