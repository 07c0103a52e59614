package nash

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxPivots bounds the complementary path. Longer walks only happen when a degenerate
// game makes the pivoting cycle.
const maxPivots = 1000

// zeroTolerance snaps pivoting residue to zero. Rows are rescaled to a max magnitude of
// 1 after each pivot, so an absolute tolerance is enough.
const zeroTolerance = 1e-12

// LemkeHowson walks the complementary pivoting path from the artificial equilibrium,
// dropping initialDroppedLabel first. Labels 0..m-1 name the row strategies and
// m..m+n-1 the column strategies of the m x n game (A, B).
func LemkeHowson(A, B *mat.Dense, initialDroppedLabel int) (Equilibrium, error) {
	m, n := A.Dims()
	if br, bc := B.Dims(); br != m || bc != n {
		return Equilibrium{}, fmt.Errorf("payoff shapes differ: %dx%d and %dx%d", m, n, br, bc)
	}
	if m < 2 || n < 2 {
		return Equilibrium{}, fmt.Errorf("need two strategies per side, got %dx%d: %w", m, n, ErrDegenerate)
	}
	if initialDroppedLabel < 0 || initialDroppedLabel >= m+n {
		return Equilibrium{}, fmt.Errorf("initial label %d out of range [0, %d)", initialDroppedLabel, m+n)
	}

	colTableau := columnTableau(positive(A))
	var bt mat.Dense
	bt.CloneFrom(positive(B).T())
	rowTableau := makeTableau(&bt)

	tableaux := [2]*mat.Dense{colTableau, rowTableau}
	if nonBasic(rowTableau)[initialDroppedLabel] {
		tableaux = [2]*mat.Dense{rowTableau, colTableau}
	}

	entering, err := pivot(tableaux[0], initialDroppedLabel)
	for k := 1; err == nil && !complementary(rowTableau, colTableau); k++ {
		if k > maxPivots {
			return Equilibrium{}, fmt.Errorf("no equilibrium after %d pivots: %w", maxPivots, ErrDegenerate)
		}
		if entering < 0 {
			return Equilibrium{}, fmt.Errorf("pivot %d left no label: %w", k, ErrDegenerate)
		}
		entering, err = pivot(tableaux[k%2], entering)
	}
	if err != nil {
		return Equilibrium{}, err
	}

	row, err := toStrategy(rowTableau, nonBasic(colTableau), 0, m)
	if err != nil {
		return Equilibrium{}, err
	}
	col, err := toStrategy(colTableau, nonBasic(rowTableau), m, m+n)
	if err != nil {
		return Equilibrium{}, err
	}
	// Ties in the payoffs can end the path on a vertex that is not an equilibrium
	if !isEquilibrium(A, B, row, col, support(row), support(col)) {
		return Equilibrium{}, fmt.Errorf("path ended off equilibrium: %w", ErrDegenerate)
	}
	return Equilibrium{Row: row, Col: col}, nil
}

// positive shifts the payoffs so every entry is at least 1. Equilibria are invariant
// under the shift.
func positive(M *mat.Dense) *mat.Dense {
	var shifted mat.Dense
	shifted.CloneFrom(M)
	if low := mat.Min(M); low <= 0 {
		shifted.Apply(func(_, _ int, v float64) float64 { return v - low + 1 }, &shifted)
	}
	return &shifted
}

// makeTableau builds [M | I | 1].
func makeTableau(M *mat.Dense) *mat.Dense {
	r, c := M.Dims()
	t := mat.NewDense(r, c+r+1, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			t.Set(i, j, M.At(i, j))
		}
		t.Set(i, c+i, 1)
		t.Set(i, c+r, 1)
	}
	return t
}

// columnTableau builds [I | A | 1] so that labels line up with the row tableau.
func columnTableau(A *mat.Dense) *mat.Dense {
	m, n := A.Dims()
	t := mat.NewDense(m, m+n+1, nil)
	for i := 0; i < m; i++ {
		t.Set(i, i, 1)
		for j := 0; j < n; j++ {
			t.Set(i, m+j, A.At(i, j))
		}
		t.Set(i, m+n, 1)
	}
	return t
}

// nonBasic marks the label columns that are not unit columns.
func nonBasic(t *mat.Dense) []bool {
	r, c := t.Dims()
	labels := make([]bool, c-1)
	for j := range labels {
		count := 0
		for i := 0; i < r; i++ {
			if t.At(i, j) != 0 {
				count++
			}
		}
		labels[j] = count != 1
	}
	return labels
}

func complementary(rowTableau, colTableau *mat.Dense) bool {
	rowLabels, colLabels := nonBasic(rowTableau), nonBasic(colTableau)
	for label := range rowLabels {
		if !rowLabels[label] && !colLabels[label] {
			return false
		}
	}
	return true
}

// pivot brings column into the basis using integer pivoting and returns the label that
// left it, or -1 if none did.
func pivot(t *mat.Dense, column int) (int, error) {
	before := nonBasic(t)
	r, c := t.Dims()
	rhs := c - 1

	pivotRow, best := -1, 0.0
	for i := 0; i < r; i++ {
		if t.At(i, rhs) <= zeroTolerance {
			continue
		}
		if ratio := t.At(i, column) / t.At(i, rhs); ratio > best {
			pivotRow, best = i, ratio
		}
	}
	if pivotRow < 0 {
		return -1, fmt.Errorf("column %d is unbounded: %w", column, ErrDegenerate)
	}

	pivotElement := t.At(pivotRow, column)
	pivotValues := mat.Row(nil, pivotRow, t)
	for i := 0; i < r; i++ {
		if i == pivotRow {
			continue
		}
		factor := t.At(i, column)
		scale := 0.0
		row := mat.Row(nil, i, t)
		for j := range row {
			row[j] = row[j]*pivotElement - pivotValues[j]*factor
			scale = math.Max(scale, math.Abs(row[j]))
		}
		for j := range row {
			if scale > 0 {
				row[j] /= scale
			}
			if math.Abs(row[j]) < zeroTolerance {
				row[j] = 0
			}
		}
		t.SetRow(i, row)
	}

	after := nonBasic(t)
	for label := range after {
		if after[label] && !before[label] {
			return label, nil
		}
	}
	return -1, nil
}

// toStrategy reads the vertex for labels [from, to) out of the tableau and normalises
// it into a probability distribution.
func toStrategy(t *mat.Dense, basic []bool, from, to int) ([]float64, error) {
	r, c := t.Dims()
	strategy := make([]float64, 0, to-from)
	for label := from; label < to; label++ {
		if !basic[label] {
			strategy = append(strategy, 0)
			continue
		}
		for i := 0; i < r; i++ {
			if v := t.At(i, label); v != 0 {
				strategy = append(strategy, t.At(i, c-1)/v)
			}
		}
	}
	if len(strategy) != to-from {
		return nil, fmt.Errorf("vertex has %d entries for %d strategies: %w", len(strategy), to-from, ErrDegenerate)
	}
	return normalise(strategy)
}

func normalise(strategy []float64) ([]float64, error) {
	sum := 0.0
	for i, p := range strategy {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < -zeroTolerance {
			return nil, fmt.Errorf("invalid probability %v: %w", p, ErrDegenerate)
		}
		if p < 0 {
			strategy[i] = 0
		}
		sum += strategy[i]
	}
	if sum <= 0 {
		return nil, fmt.Errorf("empty strategy: %w", ErrDegenerate)
	}
	for i := range strategy {
		strategy[i] /= sum
	}
	return strategy, nil
}
