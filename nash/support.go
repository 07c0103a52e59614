package nash

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultMaxSupport bounds the support sizes SolveZeroSum enumerates.
const DefaultMaxSupport = 3

const (
	supportTolerance = 1e-12
	payoffTolerance  = 1e-7
)

// SupportEnumeration finds the equilibria of (A, B) whose supports have equal size, up
// to maxSupport strategies per side. Supports are visited by size, then
// lexicographically.
func SupportEnumeration(A, B *mat.Dense, maxSupport int) []Equilibrium {
	m, n := A.Dims()
	var equilibria []Equilibrium
	for size := 1; size <= min(m, n, maxSupport); size++ {
		rowSupports, colSupports := combinations(m, size), combinations(n, size)
		for _, rowSupport := range rowSupports {
			for _, colSupport := range colSupports {
				// The row strategy makes the column player indifferent, and vice versa
				row, ok := solveIndifference(B.T(), colSupport, rowSupport)
				if !ok || !obeysSupport(row, rowSupport) {
					continue
				}
				col, ok := solveIndifference(A, rowSupport, colSupport)
				if !ok || !obeysSupport(col, colSupport) {
					continue
				}
				if isEquilibrium(A, B, row, col, rowSupport, colSupport) {
					equilibria = append(equilibria, Equilibrium{Row: row, Col: col})
				}
			}
		}
	}
	return equilibria
}

// solveIndifference finds the distribution over columns of M, restricted to columns,
// that gives every row in rows the same payoff.
func solveIndifference(M mat.Matrix, rows, columns []int) ([]float64, bool) {
	_, c := M.Dims()
	system := mat.NewDense(c, c, nil)
	next := 0
	for k := 0; k+1 < len(rows); k++ {
		for j := 0; j < c; j++ {
			system.Set(next, j, M.At(rows[k+1], j)-M.At(rows[k], j))
		}
		next++
	}
	inSupport := make([]bool, c)
	for _, j := range columns {
		inSupport[j] = true
	}
	for j := 0; j < c; j++ {
		if !inSupport[j] {
			system.Set(next, j, 1)
			next++
		}
	}
	if next != c-1 {
		return nil, false
	}
	for j := 0; j < c; j++ {
		system.Set(next, j, 1)
	}

	b := mat.NewVecDense(c, nil)
	b.SetVec(c-1, 1)
	var x mat.VecDense
	if err := x.SolveVec(system, b); err != nil {
		return nil, false
	}

	probabilities := make([]float64, c)
	for j := range probabilities {
		p := x.AtVec(j)
		if math.IsNaN(p) || p < -supportTolerance {
			return nil, false
		}
		probabilities[j] = math.Max(p, 0)
	}
	return probabilities, true
}

// support lists the indexes played with positive probability.
func support(strategy []float64) []int {
	var indexes []int
	for i, p := range strategy {
		if p > supportTolerance {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func obeysSupport(strategy []float64, support []int) bool {
	inSupport := make([]bool, len(strategy))
	for _, i := range support {
		inSupport[i] = true
	}
	for i, p := range strategy {
		if inSupport[i] != (p > supportTolerance) {
			return false
		}
	}
	return true
}

// isEquilibrium checks that each side's support contains a best response to the other
// side's strategy.
func isEquilibrium(A, B *mat.Dense, row, col []float64, rowSupport, colSupport []int) bool {
	var rowPayoffs, colPayoffs mat.VecDense
	rowPayoffs.MulVec(A, mat.NewVecDense(len(col), col))
	colPayoffs.MulVec(B.T(), mat.NewVecDense(len(row), row))
	return supportIsBest(&rowPayoffs, rowSupport) && supportIsBest(&colPayoffs, colSupport)
}

func supportIsBest(payoffs *mat.VecDense, support []int) bool {
	best := math.Inf(-1)
	for i := 0; i < payoffs.Len(); i++ {
		best = math.Max(best, payoffs.AtVec(i))
	}
	bestInSupport := math.Inf(-1)
	for _, i := range support {
		bestInSupport = math.Max(bestInSupport, payoffs.AtVec(i))
	}
	return best-bestInSupport <= payoffTolerance*math.Max(1, math.Abs(best))
}

// combinations lists the size-k subsets of [0, n) in lexicographic order.
func combinations(n, k int) [][]int {
	var result [][]int
	current := make([]int, k)
	var build func(start, depth int)
	build = func(start, depth int) {
		if depth == k {
			result = append(result, append([]int(nil), current...))
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			current[depth] = i
			build(i+1, depth+1)
		}
	}
	build(0, 0)
	return result
}
