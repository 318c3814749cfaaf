package kuhn

import (
	"expvar"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

var (
	iterationsCompleted = expvar.NewInt("kuhn_cfr_iterations")
	infoSetsCreated     = expvar.NewInt("kuhn_cfr_infosets")
	nodesVisited        = expvar.NewInt("kuhn_cfr_nodes_visited")
)

// TrainOptions configures optional convergence tracking during Train.
type TrainOptions struct {
	// Record a Checkpoint every CheckpointInterval iterations.
	TrackConvergence   bool
	CheckpointInterval int
}

// Checkpoint records the quality of the average strategy profile
// after a number of training iterations.
type Checkpoint struct {
	// Total number of iterations completed by the Trainer.
	Iteration int
	// Exploitability of the average profile, in payoff units
	// (multiply by MilliUnits for the conventional reporting unit).
	Exploitability float64
	// Expected value to Player0 when both players follow the average profile.
	GameValue float64
}

// Trainer runs chance-sampled CFR self-play on Kuhn Poker.
//
// A Trainer is not safe for concurrent use. Each iteration is the unit
// of work: the Trainer may be stopped between any two calls to Train
// and resumed later without loss.
type Trainer struct {
	game       Game
	table      *InfoSetTable
	dealer     *cards.Dealer
	iterations int
	// Sum over iterations of the root value to Player0.
	utilSum float64
}

// NewTrainer returns a Trainer whose deals are drawn from a random
// source seeded with seed. Two Trainers with the same seed and the same
// sequence of Train calls produce identical InfoSetTables.
func NewTrainer(game Game, seed int64) *Trainer {
	return &Trainer{
		game:   game,
		table:  NewInfoSetTable(game.NumActions()),
		dealer: cards.NewDealer(seed),
	}
}

// Train runs the given number of CFR iterations. If opts.TrackConvergence
// is set, a Checkpoint is recorded each time the total iteration count
// reaches a multiple of opts.CheckpointInterval.
func (t *Trainer) Train(iterations int, opts TrainOptions) ([]Checkpoint, error) {
	if iterations < 0 {
		return nil, errors.Errorf("number of iterations must be non-negative, got %d", iterations)
	}
	if opts.TrackConvergence && opts.CheckpointInterval <= 0 {
		return nil, errors.Errorf("checkpoint interval must be positive, got %d", opts.CheckpointInterval)
	}

	var checkpoints []Checkpoint
	for i := 0; i < iterations; i++ {
		t.RunIteration()

		if opts.TrackConvergence && t.iterations%opts.CheckpointInterval == 0 {
			cp := t.checkpoint()
			glog.V(1).Infof("Iteration %d: exploitability %.3f milli, game value %.5f",
				cp.Iteration, MilliUnits*cp.Exploitability, cp.GameValue)
			checkpoints = append(checkpoints, cp)
		}
	}

	glog.Infof("Trained %d iterations (%d total): %d infosets, average game value %.5f",
		iterations, t.iterations, t.table.Len(), t.AverageGameValue())
	return checkpoints, nil
}

// RunIteration deals one random hand and traverses its full game tree.
func (t *Trainer) RunIteration() {
	deal := t.dealer.Deal()
	reach := [gamestate.NumPlayers]float64{1.0, 1.0}
	t.utilSum += t.cfr(deal, gamestate.History{}, reach)
	t.iterations++
	iterationsCompleted.Add(1)
}

// cfr returns the expected value of history h to the player acting at h,
// updating the regrets and strategy sums of every InfoSet along the way.
func (t *Trainer) cfr(deal cards.Deal, h gamestate.History, reach [gamestate.NumPlayers]float64) float64 {
	nodesVisited.Add(1)
	if t.game.IsTerminal(h) {
		return t.game.Utility(h, deal, h.NextPlayer())
	}

	actor := h.NextPlayer()
	opponent := actor.Opponent()
	is := t.table.GetOrCreate(t.game.InfoSetKey(deal[actor], h))
	strategy := is.CurrentStrategy(reach[actor])

	actionValues := allocFloatSlice(len(strategy))
	nodeValue := 0.0
	for i, p := range strategy {
		childReach := reach
		childReach[actor] *= p
		// The child's value is from the opponent's point of view.
		actionValues[i] = -t.cfr(deal, h.Append(gamestate.Action(i)), childReach)
		nodeValue += p * actionValues[i]
	}

	// Counterfactual regret is weighted by the probability that the
	// opponent (and chance) play to reach h, excluding the actor's own choices.
	regrets := actionValues
	for i := range regrets {
		regrets[i] -= nodeValue
	}
	is.AddRegrets(regrets, reach[opponent])
	freeFloatSlice(actionValues)

	return nodeValue
}

func (t *Trainer) checkpoint() Checkpoint {
	profile := t.StrategyProfile()
	return Checkpoint{
		Iteration:      t.iterations,
		Exploitability: Exploitability(t.game, profile),
		GameValue:      GameValue(t.game, profile),
	}
}

// StrategyProfile returns a snapshot of the average strategy at every
// InfoSet visited so far.
func (t *Trainer) StrategyProfile() StrategyProfile {
	return t.table.StrategyProfile()
}

// Table returns the Trainer's InfoSetTable. It is modified by Train.
func (t *Trainer) Table() *InfoSetTable {
	return t.table
}

func (t *Trainer) Game() Game {
	return t.game
}

// Iterations returns the total number of completed iterations.
func (t *Trainer) Iterations() int {
	return t.iterations
}

// AverageGameValue returns the mean value to Player0 of the sampled
// hands over all iterations so far.
func (t *Trainer) AverageGameValue() float64 {
	if t.iterations == 0 {
		return 0
	}

	return t.utilSum / float64(t.iterations)
}
