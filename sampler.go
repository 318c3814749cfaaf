package kuhn

import (
	"math"
	"math/rand"
	"sort"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// SampleAction selects an action from dist given a uniform random
// number x in [0, 1).
func SampleAction(dist []float64, x float64) gamestate.Action {
	cumulative := allocFloatSlice(len(dist))
	defer freeFloatSlice(cumulative)

	total := 0.0
	for i, p := range dist {
		total += p
		cumulative[i] = total
	}

	selected := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > x*total
	})
	if selected == len(cumulative) { // Rounding.
		selected = len(cumulative) - 1
	}

	return gamestate.Action(selected)
}

// PlayHand plays out one hand with the given deal, with Player0 sampling
// actions from p0 and Player1 from p1. It returns the terminal history
// and its payoff to Player0.
func PlayHand(game Game, deal cards.Deal, p0, p1 StrategyProfile, rng *rand.Rand) (gamestate.History, float64) {
	var h gamestate.History
	for !game.IsTerminal(h) {
		key := game.ActingInfoSetKey(deal, h)
		var strategy []float64
		switch key.Player() {
		case gamestate.Player0:
			strategy = p0.strategy(key)
		default:
			strategy = p1.strategy(key)
		}

		h = h.Append(SampleAction(strategy, rng.Float64()))
	}

	return h, game.Payoff(h, deal)
}

// MatchResult summarizes a simulated match from the first profile's point of view.
type MatchResult struct {
	Hands int
	// Mean payoff per hand.
	MeanPayoff float64
	// Standard error of MeanPayoff.
	StdErr float64
}

// SimulateMatch plays nHands random hands between a and b, alternating
// seats every hand so that a is Player0 in even-numbered hands.
func SimulateMatch(game Game, a, b StrategyProfile, nHands int, rng *rand.Rand) MatchResult {
	if nHands <= 0 {
		return MatchResult{}
	}

	var sum, sumSq float64
	for i := 0; i < nHands; i++ {
		deal := cards.NthDeal(rng.Intn(cards.NumDeals))
		var payoff float64
		if i%2 == 0 {
			_, payoff = PlayHand(game, deal, a, b, rng)
		} else {
			_, payoff = PlayHand(game, deal, b, a, rng)
			payoff = -payoff
		}

		sum += payoff
		sumSq += payoff * payoff
	}

	n := float64(nHands)
	mean := sum / n
	variance := math.Max(sumSq/n-mean*mean, 0)
	return MatchResult{
		Hands:      nHands,
		MeanPayoff: mean,
		StdErr:     math.Sqrt(variance / n),
	}
}

// SeatAveragedValue returns the exact expected payoff per hand to a
// when a and b alternate seats, as in SimulateMatch.
func SeatAveragedValue(game Game, a, b StrategyProfile) float64 {
	return (HeadToHeadValue(game, a, b) - HeadToHeadValue(game, b, a)) / 2
}
