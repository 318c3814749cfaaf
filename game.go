// Package kuhn learns equilibrium strategies for Kuhn Poker with
// counterfactual regret minimization (CFR), and measures how exploitable
// a strategy profile is by computing best responses against it.
package kuhn

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

const (
	// RawPayoffScale leaves payoffs in units of the ante:
	// ±1 for an uncalled bet or a checked-down showdown, ±2 for a called bet.
	RawPayoffScale = 1.0
	// AcademicPayoffScale divides raw payoffs by 5. Some write-ups report
	// Kuhn Poker results in these units; it is provided for comparison only.
	AcademicPayoffScale = 1.0 / 5

	// EquilibriumGameValue is the value of the game to Player0 at the
	// raw payoff scale, for every Nash equilibrium.
	EquilibriumGameValue = -1.0 / 18
)

const (
	anteUnits = 1.0
	betUnits  = 1.0
)

// Game encodes the rules of Kuhn Poker: terminal detection, payoffs, and
// information set keys. It holds no mutable state.
type Game struct {
	// PayoffScale multiplies every payoff. The zero value is treated
	// as RawPayoffScale.
	PayoffScale float64
}

// NewGame returns a Game with raw payoffs.
func NewGame() Game {
	return Game{PayoffScale: RawPayoffScale}
}

// NewGameWithPayoffScale returns a Game whose payoffs are multiplied by scale.
func NewGameWithPayoffScale(scale float64) (Game, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Game{}, errors.Errorf("payoff scale must be positive and finite, got %v", scale)
	}

	return Game{PayoffScale: scale}, nil
}

func (g Game) scale() float64 {
	if g.PayoffScale == 0 {
		return RawPayoffScale
	}

	return g.PayoffScale
}

// NumActions returns the number of legal actions at every decision node.
func (g Game) NumActions() int {
	return gamestate.NumActions
}

// EquilibriumValue returns the equilibrium value of the game to
// Player0 at this Game's payoff scale.
func (g Game) EquilibriumValue() float64 {
	return g.scale() * EquilibriumGameValue
}

// IsTerminal returns whether the hand is over after h.
func (g Game) IsTerminal(h gamestate.History) bool {
	return h.IsTerminal()
}

// Payoff returns the value of the terminal history h to Player0.
// It panics if h is not terminal.
func (g Game) Payoff(h gamestate.History, deal cards.Deal) float64 {
	var value float64
	switch h.Outcome() {
	case gamestate.CheckedDown:
		value = showdown(deal, anteUnits)
	case gamestate.Called:
		value = showdown(deal, anteUnits+betUnits)
	case gamestate.Folded:
		// Whoever bet last takes the antes, regardless of cards.
		bettor := h.ActedBy(h.Len() - 2)
		value = bettor.Sign() * anteUnits
	default:
		panic(fmt.Errorf("payoff requested for non-terminal history %q", h))
	}

	return g.scale() * value
}

// Utility returns the Payoff of h from the given player's point of view.
func (g Game) Utility(h gamestate.History, deal cards.Deal, player gamestate.Player) float64 {
	return player.Sign() * g.Payoff(h, deal)
}

func showdown(deal cards.Deal, amount float64) float64 {
	if !deal.Valid() {
		panic(fmt.Errorf("invalid deal: %v", deal))
	}

	if deal[gamestate.Player0].Beats(deal[gamestate.Player1]) {
		return amount
	}

	return -amount
}

// InfoSetKey returns the key of the information set of a player holding
// card after the public history h.
func (g Game) InfoSetKey(card cards.Card, h gamestate.History) gamestate.InfoSetKey {
	return gamestate.NewInfoSetKey(card, h)
}

// ActingInfoSetKey returns the key of the information set of the player
// to act after h, given the deal.
func (g Game) ActingInfoSetKey(deal cards.Deal, h gamestate.History) gamestate.InfoSetKey {
	return g.InfoSetKey(deal[h.NextPlayer()], h)
}
