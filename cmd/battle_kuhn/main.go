// Play saved Kuhn Poker strategy profiles against each other and solve
// the resulting metagame.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sync"

	"github.com/golang/glog"

	kuhn "github.com/tjehanne/kuhn-poker-cfr"
	"github.com/tjehanne/kuhn-poker-cfr/matrixgame"
	"github.com/tjehanne/kuhn-poker-cfr/policy"
)

func main() {
	numHands := flag.Int("hands", 0, "Number of random hands to simulate per pair (0 to skip)")
	seed := flag.Int64("seed", 1234, "Random seed")
	fpIterations := flag.Int("fp_iterations", 10000, "Fictitious play iterations for the metagame")
	flag.Parse()

	filenames := flag.Args()
	if len(filenames) < 2 {
		glog.Fatal("usage: battle_kuhn [flags] profile1 profile2 [profile3 ...]")
	}

	cache, err := policy.NewCache(len(filenames))
	if err != nil {
		glog.Fatal(err)
	}

	var game kuhn.Game
	profiles := make([]kuhn.StrategyProfile, len(filenames))
	for i, filename := range filenames {
		profiles[i], game = mustLoadProfile(cache, filename, game, i == 0)
	}

	// Exact seat-averaged values, computed one row per goroutine.
	values := make([][]float64, len(profiles))
	var wg sync.WaitGroup
	for i := range profiles {
		values[i] = make([]float64, len(profiles))
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range profiles {
				values[i][j] = kuhn.SeatAveragedValue(game, profiles[i], profiles[j])
			}
		}(i)
	}
	wg.Wait()

	fmt.Println("Expected payoff per hand (row vs column, seats alternating):")
	for i, row := range values {
		fmt.Printf("  %-3d", i)
		for _, v := range row {
			fmt.Printf(" %+8.4f", v)
		}
		fmt.Printf("  %v\n", filenames[i])
	}

	rng := rand.New(rand.NewSource(*seed))
	if *numHands > 0 {
		fmt.Printf("Simulated matches of %d hands:\n", *numHands)
		for i := range profiles {
			for j := i + 1; j < len(profiles); j++ {
				result := kuhn.SimulateMatch(game, profiles[i], profiles[j], *numHands, rng)
				fmt.Printf("  %d vs %d: %+.4f +/- %.4f (exact %+.4f)\n",
					i, j, result.MeanPayoff, result.StdErr, values[i][j])
			}
		}
	}

	payoffs, err := matrixgame.NewPayoffMatrix(values)
	if err != nil {
		glog.Fatal(err)
	}

	p0, p1 := matrixgame.FictitiousPlay(payoffs, *fpIterations, 0, rng)
	fmt.Println("Metagame equilibrium weights:")
	for i, filename := range filenames {
		fmt.Printf("  %-3d %.3f %.3f  %v\n", i, p0[i], p1[i], filename)
	}
	fmt.Printf("Metagame value: %+.5f\n", payoffs.Value(p0, p1))
}

func mustLoadProfile(cache *policy.Cache, filename string, game kuhn.Game, first bool) (kuhn.StrategyProfile, kuhn.Game) {
	snapshot, err := cache.Load(filename)
	if err != nil {
		glog.Fatal(err)
	}

	profile, err := snapshot.StrategyProfile()
	if err != nil {
		glog.Fatal(err)
	}

	snapshotGame, err := snapshot.Game()
	if err != nil {
		glog.Fatal(err)
	}
	if first {
		return profile, snapshotGame
	}

	if snapshotGame.PayoffScale != game.PayoffScale {
		glog.Warningf("%v was trained with payoff scale %v, evaluating with %v",
			filename, snapshotGame.PayoffScale, game.PayoffScale)
	}
	return profile, game
}
