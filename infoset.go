package kuhn

import (
	"fmt"
)

// InfoSet accumulates the regrets and the reach-weighted strategies of
// one information set over the course of training.
//
// Both sums only ever grow by addition; computing a strategy never
// modifies them (apart from CurrentStrategy adding its own contribution
// to the strategy sum).
type InfoSet struct {
	// Signed cumulative counterfactual regret of each action.
	regretSum []float64
	// Cumulative strategy weighted by the player's own reach probability.
	strategySum []float64
}

// NewInfoSet returns an InfoSet with zero sums for nActions actions.
func NewInfoSet(nActions int) *InfoSet {
	if nActions <= 0 {
		panic(fmt.Errorf("infoset must have at least one action, got %d", nActions))
	}

	return &InfoSet{
		regretSum:   make([]float64, nActions),
		strategySum: make([]float64, nActions),
	}
}

func (is *InfoSet) NumActions() int {
	return len(is.regretSum)
}

// CurrentStrategy returns the regret-matching strategy: each action is
// played in proportion to its positive cumulative regret, or uniformly if
// no action has positive regret. The strategy, weighted by reachWeight,
// is added to the strategy sum for averaging.
func (is *InfoSet) CurrentStrategy(reachWeight float64) []float64 {
	strategy := make([]float64, len(is.regretSum))
	for i, regret := range is.regretSum {
		if regret > 0 {
			strategy[i] = regret
		}
	}

	normalizeOrUniform(strategy, strategy)
	for i, p := range strategy {
		is.strategySum[i] += reachWeight * p
	}

	return strategy
}

// AverageStrategy returns the normalized strategy sum, or uniform if
// nothing has been accumulated yet. This is the strategy that converges
// to a Nash equilibrium.
func (is *InfoSet) AverageStrategy() []float64 {
	avg := make([]float64, len(is.strategySum))
	normalizeOrUniform(avg, is.strategySum)
	return avg
}

// AddRegrets adds weight * regrets[i] to the cumulative regret of each action.
func (is *InfoSet) AddRegrets(regrets []float64, weight float64) {
	if len(regrets) != len(is.regretSum) {
		panic(fmt.Errorf("got %d regrets for infoset with %d actions",
			len(regrets), len(is.regretSum)))
	}

	for i, regret := range regrets {
		is.regretSum[i] += weight * regret
	}
}

// RegretSum returns a copy of the cumulative regrets.
func (is *InfoSet) RegretSum() []float64 {
	return append([]float64(nil), is.regretSum...)
}

// StrategySum returns a copy of the cumulative strategy.
func (is *InfoSet) StrategySum() []float64 {
	return append([]float64(nil), is.strategySum...)
}

func (is *InfoSet) String() string {
	return fmt.Sprintf("InfoSet{regretSum: %v, strategySum: %v}", is.regretSum, is.strategySum)
}

// normalizeOrUniform writes weights / sum(weights) into dst, or the
// uniform distribution if the weights do not sum to a positive value.
// dst and weights may alias.
func normalizeOrUniform(dst, weights []float64) {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	if total > 0 {
		for i, w := range weights {
			dst[i] = w / total
		}
	} else {
		uniform := 1.0 / float64(len(dst))
		for i := range dst {
			dst[i] = uniform
		}
	}
}

func uniformDistribution(n int) []float64 {
	result := make([]float64, n)
	normalizeOrUniform(result, result)
	return result
}
