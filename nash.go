package kuhn

import (
	"math"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// Reference frequencies of the equilibrium in which the Jack bluffs as
// often as possible.
const (
	NashJackBluff    = 1.0 / 3
	NashQueenCall    = 1.0 / 3
	NashKingValueBet = 1.0
)

// NashComparison compares the key frequencies of a profile with the
// reference equilibrium.
type NashComparison struct {
	// Player0 bets the Jack at the start.
	JackBluff float64
	// Player1 calls a bet with the Queen.
	QueenCall float64
	// Player0 bets the King at the start.
	KingValueBet float64
}

// CompareToNash extracts the key frequencies of profile.
func CompareToNash(profile StrategyProfile) NashComparison {
	opening := gamestate.History{}
	facingBet := gamestate.NewHistory(gamestate.Bet)
	return NashComparison{
		JackBluff:    profile.Probability(gamestate.NewInfoSetKey(cards.Jack, opening), gamestate.Bet),
		QueenCall:    profile.Probability(gamestate.NewInfoSetKey(cards.Queen, facingBet), gamestate.Bet),
		KingValueBet: profile.Probability(gamestate.NewInfoSetKey(cards.King, opening), gamestate.Bet),
	}
}

// Errors returns the relative error of each frequency, in percent:
// Jack bluff, Queen call, King value bet.
func (c NashComparison) Errors() [3]float64 {
	return [3]float64{
		relativeErrorPercent(c.JackBluff, NashJackBluff),
		relativeErrorPercent(c.QueenCall, NashQueenCall),
		relativeErrorPercent(c.KingValueBet, NashKingValueBet),
	}
}

// Accuracy is 100 minus the mean relative error, floored at 0.
//
// Other equilibria bluff the Jack less and bet the King less, so a
// profile can be unexploitable and still score below 100.
func (c NashComparison) Accuracy() float64 {
	total := 0.0
	errs := c.Errors()
	for _, e := range errs {
		total += e
	}

	return math.Max(0, 100-total/float64(len(errs)))
}

func relativeErrorPercent(got, expected float64) float64 {
	return 100 * math.Abs(got-expected) / expected
}
