package kuhn

import (
	"math"
	"testing"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// nashProfile returns the equilibrium in which Player0 bluffs the Jack
// with probability alpha.
func nashProfile(t testing.TB, alpha float64) StrategyProfile {
	betProbs := map[string]float64{
		"0": alpha, "1": 0, "2": 3 * alpha,
		"0p": 1.0 / 3, "1p": 0, "2p": 1,
		"0b": 0, "1b": 1.0 / 3, "2b": 1,
		"0pb": 0, "1pb": alpha + 1.0/3, "2pb": 1,
	}

	return profileFromBetProbs(t, betProbs)
}

func profileFromBetProbs(t testing.TB, betProbs map[string]float64) StrategyProfile {
	strategies := make(map[gamestate.InfoSetKey][]float64)
	for s, p := range betProbs {
		strategies[mustKey(t, s)] = []float64{1 - p, p}
	}

	profile, err := NewStrategyProfile(strategies)
	if err != nil {
		t.Fatal(err)
	}
	return profile
}

// constantProfile plays the same action at every information set.
func constantProfile(t testing.TB, action gamestate.Action) StrategyProfile {
	betProbs := make(map[string]float64)
	for _, key := range gamestate.AllInfoSetKeys() {
		betProbs[key.String()] = float64(action)
	}
	return profileFromBetProbs(t, betProbs)
}

func TestExploitability_NashIsZero(t *testing.T) {
	game := NewGame()
	for _, alpha := range []float64{0, 0.1, 0.2, 1.0 / 3} {
		profile := nashProfile(t, alpha)
		if v := GameValue(game, profile); math.Abs(v-EquilibriumGameValue) > 1e-12 {
			t.Errorf("alpha=%v: expected game value %v, got %v", alpha, EquilibriumGameValue, v)
		}

		if e := Exploitability(game, profile); math.Abs(e) > 1e-12 {
			t.Errorf("alpha=%v: expected zero exploitability, got %v", alpha, e)
		}
	}
}

func TestExploitability_ScalesWithPayoff(t *testing.T) {
	raw := NewGame()
	scaled, err := NewGameWithPayoffScale(AcademicPayoffScale)
	if err != nil {
		t.Fatal(err)
	}

	profile := UniformProfile()
	e1 := Exploitability(raw, profile)
	e2 := Exploitability(scaled, profile)
	if math.Abs(e2-AcademicPayoffScale*e1) > 1e-12 {
		t.Errorf("expected scaled exploitability %v, got %v", AcademicPayoffScale*e1, e2)
	}
	if v := GameValue(scaled, nashProfile(t, 0.2)); math.Abs(v-scaled.EquilibriumValue()) > 1e-12 {
		t.Errorf("expected scaled game value %v, got %v", scaled.EquilibriumValue(), v)
	}
}

func TestExploitability_UniformVsConverged(t *testing.T) {
	game := NewGame()
	trainer := NewTrainer(game, testSeed)
	if _, err := trainer.Train(20000, TrainOptions{}); err != nil {
		t.Fatal(err)
	}

	uniform := Exploitability(game, UniformProfile())
	converged := Exploitability(game, trainer.StrategyProfile())
	t.Logf("Uniform: %.4f, converged: %.4f", uniform, converged)
	if !(uniform > converged) {
		t.Errorf("uniform profile (%v) should be more exploitable than trained (%v)", uniform, converged)
	}

	// An empty profile is played uniformly everywhere.
	if empty := Exploitability(game, StrategyProfile{}); empty != uniform {
		t.Errorf("empty profile exploitability %v != uniform %v", empty, uniform)
	}
}

func TestBestResponseValue_AlwaysBet(t *testing.T) {
	// Against an opponent who always bets and calls, Player0 folds the
	// Jack (-1), calls with the Queen (0 on average) and wins 2 with the King.
	game := NewGame()
	v := BestResponseValue(game, constantProfile(t, gamestate.Bet), gamestate.Player0)
	if math.Abs(v-1.0/3) > 1e-12 {
		t.Errorf("expected best response value 1/3, got %v", v)
	}
}

func TestBestResponseValue_AlwaysPass(t *testing.T) {
	// Against an opponent who always checks and folds, Player1 bets
	// (the King is indifferent) and always wins the ante.
	game := NewGame()
	profile := constantProfile(t, gamestate.Pass)
	br := ComputeBestResponse(game, profile, gamestate.Player1)
	for _, card := range []cards.Card{cards.Jack, cards.Queen} {
		key := game.InfoSetKey(card, gamestate.NewHistory(gamestate.Pass))
		if br.Actions[key] != gamestate.Bet {
			t.Errorf("%v: expected best response Bet, got %v", key, br.Actions[key])
		}
	}

	if v := BestResponseValue(game, profile, gamestate.Player1); math.Abs(v-(-1)) > 1e-12 {
		t.Errorf("expected best response value -1, got %v", v)
	}
}

func TestBestResponse_PerInformationSet(t *testing.T) {
	// A best response that could see the opponent's card does at least
	// as well as one restricted to information sets.
	game := NewGame()
	profile := UniformProfile()
	for _, player := range []gamestate.Player{gamestate.Player0, gamestate.Player1} {
		br := ComputeBestResponse(game, profile, player)
		for key := range br.Actions {
			if key.Player() != player {
				t.Errorf("best response for %v assigned action at %v", player, key)
			}
		}

		legal := player.Sign() * BestResponseValue(game, profile, player)
		clairvoyant := 0.0
		for _, deal := range cards.AllDeals() {
			clairvoyant += dealWeight * clairvoyantValue(game, profile, deal, gamestate.History{}, player)
		}

		t.Logf("%v: best response %.4f, clairvoyant %.4f", player, legal, clairvoyant)
		if legal > clairvoyant+1e-12 {
			t.Errorf("%v: information-set best response %v exceeds clairvoyant %v",
				player, legal, clairvoyant)
		}
		// Player0 gains nothing from seeing Player1's card against uniform
		// play (the Queen bets either way), but Player1 does.
		if player == gamestate.Player1 && !(legal < clairvoyant-1e-6) {
			t.Errorf("%v: information-set best response %v should be worse than clairvoyant %v",
				player, legal, clairvoyant)
		}
		// And no worse than following the profile itself.
		if own := player.Sign() * GameValue(game, profile); legal < own {
			t.Errorf("%v: best response %v worse than profile value %v", player, legal, own)
		}
	}
}

// clairvoyantValue maximizes per game node, as if responder could see
// both cards. It is an upper bound on any legal best response.
func clairvoyantValue(game Game, profile StrategyProfile, deal cards.Deal, h gamestate.History, responder gamestate.Player) float64 {
	if game.IsTerminal(h) {
		return game.Utility(h, deal, responder)
	}

	key := game.ActingInfoSetKey(deal, h)
	if key.Player() == responder {
		best := math.Inf(-1)
		for _, action := range gamestate.AllActions {
			best = math.Max(best, clairvoyantValue(game, profile, deal, h.Append(action), responder))
		}
		return best
	}

	value := 0.0
	for i, p := range profile.Strategy(key) {
		value += p * clairvoyantValue(game, profile, deal, h.Append(gamestate.Action(i)), responder)
	}
	return value
}

func TestBestResponseValue_MatchesPureStrategyEnumeration(t *testing.T) {
	game := NewGame()
	trainer := NewTrainer(game, testSeed)
	if _, err := trainer.Train(500, TrainOptions{}); err != nil {
		t.Fatal(err)
	}

	profiles := map[string]StrategyProfile{
		"uniform":    UniformProfile(),
		"always bet": constantProfile(t, gamestate.Bet),
		"nash":       nashProfile(t, 0.1),
		"trained":    trainer.StrategyProfile(),
	}

	for name, profile := range profiles {
		for _, player := range []gamestate.Player{gamestate.Player0, gamestate.Player1} {
			expected := bestPureStrategyValue(game, profile, player)
			if got := BestResponseValue(game, profile, player); math.Abs(got-expected) > 1e-12 {
				t.Errorf("%s, %v: best response value %v, best pure strategy %v",
					name, player, got, expected)
			}
		}
	}
}

// bestPureStrategyValue tries all 2^6 pure strategies of responder and
// returns the value to Player0 of the one best for responder.
func bestPureStrategyValue(game Game, profile StrategyProfile, responder gamestate.Player) float64 {
	var keys []gamestate.InfoSetKey
	for _, key := range gamestate.AllInfoSetKeys() {
		if key.Player() == responder {
			keys = append(keys, key)
		}
	}

	best := math.Inf(-1)
	for mask := 0; mask < 1<<uint(len(keys)); mask++ {
		br := BestResponse{
			Player:  responder,
			Actions: make(map[gamestate.InfoSetKey]gamestate.Action, len(keys)),
		}
		for i, key := range keys {
			br.Actions[key] = gamestate.Action((mask >> uint(i)) & 1)
		}

		value := responder.Sign() * BestResponseStrategyValue(game, profile, br)
		best = math.Max(best, value)
	}

	return responder.Sign() * best
}

func TestBestResponse_TieBreaksToLowestAction(t *testing.T) {
	// Against always-bet, the King is indifferent at the root between
	// betting (+2) and check-calling (+2).
	game := NewGame()
	br := ComputeBestResponse(game, constantProfile(t, gamestate.Bet), gamestate.Player0)
	key := game.InfoSetKey(cards.King, gamestate.History{})
	if br.Actions[key] != gamestate.Pass {
		t.Errorf("expected tie at %v broken toward Pass, got %v", key, br.Actions[key])
	}
}

func TestGameValue_Idempotent(t *testing.T) {
	game := NewGame()
	trainer := NewTrainer(game, testSeed)
	if _, err := trainer.Train(1000, TrainOptions{}); err != nil {
		t.Fatal(err)
	}

	profile := trainer.StrategyProfile()
	v1 := GameValue(game, profile)
	v2 := GameValue(game, profile)
	if v1 != v2 {
		t.Errorf("game value not idempotent: %v != %v", v1, v2)
	}

	e1 := Exploitability(game, profile)
	e2 := Exploitability(game, profile)
	if e1 != e2 {
		t.Errorf("exploitability not idempotent: %v != %v", e1, e2)
	}
}

func TestHeadToHeadValue(t *testing.T) {
	game := NewGame()
	nash := nashProfile(t, 1.0/3)
	if v := HeadToHeadValue(game, nash, nash); v != GameValue(game, nash) {
		t.Errorf("head to head with itself %v != game value %v", v, GameValue(game, nash))
	}

	// No strategy gains against an equilibrium from either seat.
	for _, other := range []StrategyProfile{UniformProfile(), constantProfile(t, gamestate.Bet)} {
		if v := SeatAveragedValue(game, other, nash); v > 1e-12 {
			t.Errorf("profile gained %v against equilibrium", v)
		}
	}
}

func BenchmarkExploitability(b *testing.B) {
	game := NewGame()
	profile := UniformProfile()
	for i := 0; i < b.N; i++ {
		Exploitability(game, profile)
	}
}
