package kuhn

import (
	"fmt"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// MilliUnits converts payoff units to the milli-units in which
// exploitability is conventionally reported.
const MilliUnits = 1000.0

const dealWeight = 1.0 / cards.NumDeals

// BestResponse is a deterministic strategy for one player: a single
// action at each of that player's information sets.
type BestResponse struct {
	Player  gamestate.Player
	Actions map[gamestate.InfoSetKey]gamestate.Action
}

// policy returns the one-hot distribution of the best response at key,
// or uniform if key was never reached.
func (br BestResponse) policy(key gamestate.InfoSetKey) []float64 {
	if action, ok := br.Actions[key]; ok {
		return oneHot[action]
	}

	return uniformStrategy
}

var oneHot = func() [gamestate.NumActions][]float64 {
	var result [gamestate.NumActions][]float64
	for i := range result {
		result[i] = make([]float64, gamestate.NumActions)
		result[i][i] = 1.0
	}
	return result
}()

// ComputeBestResponse returns the best response of responder to the
// opponent strategy in profile.
//
// The responder cannot see the opponent's card, so actions are chosen per
// information set: the value of each action is averaged over every deal
// consistent with the information set, weighted by the probability that
// chance and the opponent reach it. Information sets are resolved
// deepest first so that the value of an early action accounts for the
// responder's own best play later in the hand. Ties go to the lowest
// action index.
func ComputeBestResponse(game Game, profile StrategyProfile, responder gamestate.Player) BestResponse {
	br := BestResponse{
		Player:  responder,
		Actions: make(map[gamestate.InfoSetKey]gamestate.Action),
	}

	for depth := gamestate.MaxLen - 1; depth >= 0; depth-- {
		c := evCollector{
			game:      game,
			profile:   profile,
			br:        br,
			depth:     depth,
			actionEVs: make(map[gamestate.InfoSetKey]*actionEVs),
		}

		for _, deal := range cards.AllDeals() {
			c.collect(deal, gamestate.History{}, dealWeight)
		}

		for key, evs := range c.actionEVs {
			br.Actions[key] = evs.best()
		}
	}

	return br
}

// actionEVs accumulates the reach-weighted value of each action
// over all the game nodes of one information set.
type actionEVs struct {
	sumValue  [gamestate.NumActions]float64
	sumWeight [gamestate.NumActions]float64
}

func (evs *actionEVs) best() gamestate.Action {
	best := gamestate.Action(0)
	bestEV := evs.ev(0)
	for i := 1; i < gamestate.NumActions; i++ {
		if ev := evs.ev(i); ev > bestEV {
			best, bestEV = gamestate.Action(i), ev
		}
	}

	return best
}

func (evs *actionEVs) ev(i int) float64 {
	if evs.sumWeight[i] == 0 {
		return 0
	}

	return evs.sumValue[i] / evs.sumWeight[i]
}

// evCollector walks the game tree and records action values at the
// responder's information sets whose history has length depth.
// Deeper responder decisions follow the already-resolved best response.
type evCollector struct {
	game      Game
	profile   StrategyProfile
	br        BestResponse
	depth     int
	actionEVs map[gamestate.InfoSetKey]*actionEVs
}

// collect returns the value of h to the responder. reach is the
// probability that chance and the opponent play to h.
func (c *evCollector) collect(deal cards.Deal, h gamestate.History, reach float64) float64 {
	if c.game.IsTerminal(h) {
		return c.game.Utility(h, deal, c.br.Player)
	}

	key := c.game.ActingInfoSetKey(deal, h)
	if key.Player() != c.br.Player {
		strategy := c.profile.strategy(key)
		value := 0.0
		for i, p := range strategy {
			value += p * c.collect(deal, h.Append(gamestate.Action(i)), reach*p)
		}
		return value
	}

	switch {
	case h.Len() > c.depth:
		action, ok := c.br.Actions[key]
		if !ok {
			panic(fmt.Errorf("no best response resolved at %v", key))
		}
		return c.collect(deal, h.Append(action), reach)
	case h.Len() == c.depth:
		evs, ok := c.actionEVs[key]
		if !ok {
			evs = &actionEVs{}
			c.actionEVs[key] = evs
		}

		for i := 0; i < gamestate.NumActions; i++ {
			value := c.collect(deal, h.Append(gamestate.Action(i)), reach)
			evs.sumValue[i] += reach * value
			evs.sumWeight[i] += reach
		}
		// The responder's action here is not fixed yet: the values are
		// only collected, not propagated.
		return 0
	default:
		// Shallower responder decisions are resolved in a later pass;
		// the responder's own choices do not change the counterfactual reach.
		for i := 0; i < gamestate.NumActions; i++ {
			c.collect(deal, h.Append(gamestate.Action(i)), reach)
		}
		return 0
	}
}

// BestResponseValue returns the expected value to Player0 when responder
// plays its best response to profile and the other player follows profile.
func BestResponseValue(game Game, profile StrategyProfile, responder gamestate.Player) float64 {
	br := ComputeBestResponse(game, profile, responder)
	return BestResponseStrategyValue(game, profile, br)
}

// BestResponseStrategyValue returns the expected value to Player0 when
// br.Player follows br and the other player follows profile.
func BestResponseStrategyValue(game Game, profile StrategyProfile, br BestResponse) float64 {
	return expectedValue(game, func(key gamestate.InfoSetKey) []float64 {
		if key.Player() == br.Player {
			return br.policy(key)
		}
		return profile.strategy(key)
	})
}

// Exploitability returns (BR(Player0) - BR(Player1)) / 2, where BR(p) is the
// value to Player0 when p best-responds to profile. It is zero exactly
// when profile is a Nash equilibrium, and positive otherwise.
func Exploitability(game Game, profile StrategyProfile) float64 {
	br0 := BestResponseValue(game, profile, gamestate.Player0)
	br1 := BestResponseValue(game, profile, gamestate.Player1)
	return (br0 - br1) / 2
}

// ExploitabilityMilli returns Exploitability in milli-units.
func ExploitabilityMilli(game Game, profile StrategyProfile) float64 {
	return MilliUnits * Exploitability(game, profile)
}

// GameValue returns the exact expected value to Player0 when both
// players follow profile.
func GameValue(game Game, profile StrategyProfile) float64 {
	return HeadToHeadValue(game, profile, profile)
}

// HeadToHeadValue returns the exact expected value to Player0 when
// Player0 follows p0 and Player1 follows p1.
func HeadToHeadValue(game Game, p0, p1 StrategyProfile) float64 {
	return expectedValue(game, func(key gamestate.InfoSetKey) []float64 {
		switch key.Player() {
		case gamestate.Player0:
			return p0.strategy(key)
		default:
			return p1.strategy(key)
		}
	})
}

// expectedValue enumerates every deal and history, weighting terminal
// payoffs by the probability that chance and policy reach them.
func expectedValue(game Game, policy func(gamestate.InfoSetKey) []float64) float64 {
	total := 0.0
	for _, deal := range cards.AllDeals() {
		total += dealWeight * valueOf(game, deal, gamestate.History{}, policy)
	}

	return total
}

func valueOf(game Game, deal cards.Deal, h gamestate.History, policy func(gamestate.InfoSetKey) []float64) float64 {
	if game.IsTerminal(h) {
		return game.Payoff(h, deal)
	}

	strategy := policy(game.ActingInfoSetKey(deal, h))
	value := 0.0
	for i, p := range strategy {
		if p == 0 {
			continue
		}
		value += p * valueOf(game, deal, h.Append(gamestate.Action(i)), policy)
	}

	return value
}
