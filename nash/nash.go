// Package nash solves the one-shot two-player games built from scrim payoff matrices.
package nash

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// SupportThreshold is the probability at which a move counts as supported.
const SupportThreshold = 0.5

var (
	ErrDegenerate             = errors.New("degenerate game")
	ErrNoSupportedMove        = errors.New("no supported move")
	ErrMultipleSupportedMoves = errors.New("multiple supported moves")
)

// Method records which algorithm produced a solution.
type Method int

const (
	LemkeHowsonMethod Method = iota
	SupportEnumerationMethod
)

func (m Method) String() string {
	if m == LemkeHowsonMethod {
		return "lemke-howson"
	}
	return "support-enumeration"
}

// Equilibrium is a pair of mixed strategies, Row over the rows of the payoff matrix and
// Col over its columns.
type Equilibrium struct {
	Row []float64
	Col []float64
}

type Solution struct {
	Method     Method
	Equilibria []Equilibrium
}

// SolveZeroSum solves the game where the row player receives payoff[i][j] and the
// column player its negation. Lemke-Howson is tried first; games where a side has a
// single strategy, or where the pivoting degenerates, fall back to support enumeration.
func SolveZeroSum(payoff [][]int) (Solution, error) {
	if len(payoff) == 0 || len(payoff[0]) == 0 {
		return Solution{}, fmt.Errorf("cannot solve empty game: %w", ErrDegenerate)
	}

	rows, cols := len(payoff), len(payoff[0])
	A := mat.NewDense(rows, cols, nil)
	for i, row := range payoff {
		if len(row) != cols {
			return Solution{}, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
		for j, value := range row {
			A.Set(i, j, float64(value))
		}
	}
	var B mat.Dense
	B.Scale(-1, A)

	if rows >= 2 && cols >= 2 {
		eq, err := LemkeHowson(A, &B, 0)
		if err == nil {
			return Solution{Method: LemkeHowsonMethod, Equilibria: []Equilibrium{eq}}, nil
		}
		if !errors.Is(err, ErrDegenerate) {
			return Solution{}, err
		}
	}

	equilibria := SupportEnumeration(A, &B, DefaultMaxSupport)
	if len(equilibria) == 0 {
		return Solution{}, fmt.Errorf("support enumeration found no equilibrium: %w", ErrDegenerate)
	}
	return Solution{Method: SupportEnumerationMethod, Equilibria: equilibria}, nil
}

// RowMoves returns the row strategies supported by any equilibrium.
func (s Solution) RowMoves() ([]int, error) {
	strategies := make([][]float64, len(s.Equilibria))
	for i, eq := range s.Equilibria {
		strategies[i] = eq.Row
	}
	return SupportedMoves(strategies...)
}

// ColMoves returns the column strategies supported by any equilibrium.
func (s Solution) ColMoves() ([]int, error) {
	strategies := make([][]float64, len(s.Equilibria))
	for i, eq := range s.Equilibria {
		strategies[i] = eq.Col
	}
	return SupportedMoves(strategies...)
}

// SupportedMoves collects, in index order, every index played with at least
// SupportThreshold probability. Anything other than exactly one index is reported as an
// anomaly alongside the indexes found.
func SupportedMoves(strategies ...[]float64) ([]int, error) {
	var supported []int
	for _, strategy := range strategies {
		for i, p := range strategy {
			if p >= SupportThreshold && !slices.Contains(supported, i) {
				supported = append(supported, i)
			}
		}
	}
	slices.Sort(supported)

	switch len(supported) {
	case 0:
		return nil, ErrNoSupportedMove
	case 1:
		return supported, nil
	default:
		return supported, fmt.Errorf("%d moves %v: %w", len(supported), supported, ErrMultipleSupportedMoves)
	}
}
