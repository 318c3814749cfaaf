package kuhn

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// Distributions passed to NewStrategyProfile must sum to 1 within this tolerance.
const probabilityTolerance = 1e-6

// StrategyProfile is a read-only snapshot mapping each information set to
// a probability distribution over actions. Information sets without an
// entry are played uniformly at random.
//
// A StrategyProfile is never modified after construction, and all
// distributions it returns are copies.
type StrategyProfile struct {
	strategies map[gamestate.InfoSetKey][]float64
}

// NewStrategyProfile validates and copies the given strategies.
func NewStrategyProfile(strategies map[gamestate.InfoSetKey][]float64) (StrategyProfile, error) {
	copied := make(map[gamestate.InfoSetKey][]float64, len(strategies))
	for key, dist := range strategies {
		if err := validateDistribution(dist); err != nil {
			return StrategyProfile{}, errors.Wrapf(err, "infoset %v", key)
		}

		copied[key] = append([]float64(nil), dist...)
	}

	return StrategyProfile{strategies: copied}, nil
}

func validateDistribution(dist []float64) error {
	if len(dist) != gamestate.NumActions {
		return errors.Errorf("expected %d probabilities, got %d", gamestate.NumActions, len(dist))
	}

	total := 0.0
	for i, p := range dist {
		if !(p >= 0) || math.IsInf(p, 0) {
			return errors.Errorf("invalid probability %v for action %d", p, i)
		}
		total += p
	}

	if math.Abs(total-1) > probabilityTolerance {
		return errors.Errorf("probabilities sum to %v", total)
	}

	return nil
}

// UniformProfile returns the profile that plays every action with equal
// probability at every information set.
func UniformProfile() StrategyProfile {
	strategies := make(map[gamestate.InfoSetKey][]float64)
	for _, key := range gamestate.AllInfoSetKeys() {
		strategies[key] = uniformDistribution(gamestate.NumActions)
	}

	return StrategyProfile{strategies: strategies}
}

// Strategy returns the distribution over actions at key, or the uniform
// distribution if the profile has no entry for key.
func (p StrategyProfile) Strategy(key gamestate.InfoSetKey) []float64 {
	return append([]float64(nil), p.strategy(key)...)
}

// strategy is Strategy without the copy. Callers must not modify the result.
func (p StrategyProfile) strategy(key gamestate.InfoSetKey) []float64 {
	if dist, ok := p.strategies[key]; ok {
		return dist
	}

	return uniformStrategy
}

var uniformStrategy = uniformDistribution(gamestate.NumActions)

// Lookup returns the distribution at key and whether the profile has an entry.
func (p StrategyProfile) Lookup(key gamestate.InfoSetKey) ([]float64, bool) {
	dist, ok := p.strategies[key]
	if !ok {
		return nil, false
	}

	return append([]float64(nil), dist...), true
}

// Probability returns the probability of taking action at key.
func (p StrategyProfile) Probability(key gamestate.InfoSetKey, action gamestate.Action) float64 {
	if !action.Valid() {
		panic(fmt.Errorf("invalid action index: %d", action))
	}

	return p.strategy(key)[action]
}

func (p StrategyProfile) Len() int {
	return len(p.strategies)
}

// Keys returns the information sets with an entry, ordered by history
// length and then lexicographically.
func (p StrategyProfile) Keys() []gamestate.InfoSetKey {
	keys := make([]gamestate.InfoSetKey, 0, len(p.strategies))
	for key := range p.strategies {
		keys = append(keys, key)
	}

	sortKeys(keys)
	return keys
}

// Table renders the profile grouped by card, one line per history.
func (p StrategyProfile) Table() string {
	var sb strings.Builder
	keys := p.Keys()
	for _, card := range cards.Deck {
		fmt.Fprintf(&sb, "%s:\n", card.Name())
		for _, key := range keys {
			if key.Card != card {
				continue
			}

			history := key.History.String()
			if key.History.IsEmpty() {
				history = "start"
			}

			dist := p.strategy(key)
			fmt.Fprintf(&sb, "  %-6s %v to act: Pass=%5.1f%%, Bet=%5.1f%%\n",
				history, key.Player(), 100*dist[gamestate.Pass], 100*dist[gamestate.Bet])
		}
	}

	return sb.String()
}
