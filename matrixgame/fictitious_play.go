// Package matrixgame solves small two-player zero-sum matrix games, such
// as the metagame between a population of trained strategy profiles.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// PayoffMatrix holds the payoff to the row player (player 0) when it
// plays row i and the column player (player 1) plays column j.
type PayoffMatrix [][]float64

// NewPayoffMatrix checks that rows form a non-empty rectangular matrix
// of finite values.
func NewPayoffMatrix(rows [][]float64) (PayoffMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty payoff matrix")
	}

	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.Errorf("row %d has %d columns, expected %d", i, len(row), len(rows[0]))
		}

		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Errorf("invalid payoff %v at (%d, %d)", v, i, j)
			}
		}
	}

	return PayoffMatrix(rows), nil
}

func (m PayoffMatrix) NumRows() int { return len(m) }
func (m PayoffMatrix) NumCols() int { return len(m[0]) }

// Value returns the expected payoff to player 0 when the players mix
// according to p0 and p1.
func (m PayoffMatrix) Value(p0, p1 []float64) float64 {
	total := 0.0
	for i, row := range m {
		for j, v := range row {
			total += p0[i] * p1[j] * v
		}
	}

	return total
}

// FictitiousPlay returns approximate equilibrium mixtures for both
// players after nIter rounds in which each player best responds to the
// empirical play of the other. With probability mixing a player instead
// selects uniformly at random.
func FictitiousPlay(payoffs PayoffMatrix, nIter int, mixing float64, rng *rand.Rand) ([]float64, []float64) {
	p0PlayCounts := make([]int, payoffs.NumRows())
	p1PlayCounts := make([]int, payoffs.NumCols())
	logInterval := nIter / 10
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rng.Float64() < mixing {
			p0Selected = rng.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(payoffs, p1PlayCounts)
		}

		var p1Selected int
		if rng.Float64() < mixing {
			p1Selected = rng.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(payoffs, p0PlayCounts)
		}
		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++

		if logInterval > 0 && i%logInterval == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

func getP0BestResponse(payoffs PayoffMatrix, p1PlayCounts []int) int {
	utilities := make([]float64, payoffs.NumRows())
	for j, c := range p1PlayCounts {
		for i := range utilities {
			utilities[i] += float64(c) * payoffs[i][j]
		}
	}

	_, br := argMax(utilities)
	return br
}

func getP1BestResponse(payoffs PayoffMatrix, p0PlayCounts []int) int {
	utilities := make([]float64, payoffs.NumCols())
	for i, c := range p0PlayCounts {
		for j := range utilities {
			utilities[j] -= float64(c) * payoffs[i][j]
		}
	}

	_, br := argMax(utilities)
	return br
}

// normalize returns counts as frequencies, or uniform if nothing was played.
func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	for i, v := range counts {
		if total == 0 {
			result[i] = 1.0 / float64(len(counts))
		} else {
			result[i] = float64(v) / float64(total)
		}
	}
	return result
}

// argMax returns the largest value and its index. Ties go to the lowest index.
func argMax(vs []float64) (float64, int) {
	best := math.Inf(-1)
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		}
	}

	return best, bestIdx
}
