package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// stat accumulates one player's results for one move at a node.
type stat struct {
	visits int
	score  float64
}

func (s stat) average() float64 {
	if s.visits == 0 {
		return 0
	}
	return s.score / float64(s.visits)
}

// ucb1 scores a move for selection. Unvisited moves exploit the given value instead of
// an average.
func ucb1(s stat, parentVisits int, unvisited float64) float64 {
	exploit := unvisited
	if s.visits > 0 {
		exploit = s.score / float64(s.visits)
	}
	explore := math.Sqrt(CSquared * math.Log(math.Max(1, float64(parentVisits))) / math.Max(1, float64(s.visits)))
	return exploit + explore
}

// pick returns the move with the highest UCB1 value. Ties are broken uniformly by
// reservoir sampling.
func pick(stats []stat, parentVisits int, unvisited float64, rng *rand.Rand) int {
	best, bestValue, ties := -1, math.Inf(-1), 0
	for i, s := range stats {
		value := ucb1(s, parentVisits, unvisited)
		switch {
		case value > bestValue || best < 0:
			best, bestValue, ties = i, value, 1
		case value == bestValue:
			ties++
			if rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best
}

// robust returns the most visited move. Ties go to the higher average score, then to a
// uniform pick.
func robust(stats []stat, rng *rand.Rand) int {
	best, ties := -1, 0
	for i, s := range stats {
		if best < 0 {
			best, ties = i, 1
			continue
		}
		incumbent := stats[best]
		switch {
		case s.visits > incumbent.visits,
			s.visits == incumbent.visits && s.average() > incumbent.average():
			best, ties = i, 1
		case s.visits == incumbent.visits && s.average() == incumbent.average():
			ties++
			if rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best
}
