// Train a Kuhn Poker strategy profile with chance-sampled CFR.
package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/golang/glog"

	kuhn "github.com/tjehanne/kuhn-poker-cfr"
	"github.com/tjehanne/kuhn-poker-cfr/policy"
)

func main() {
	iterations := flag.Int("iterations", 100000, "Number of CFR iterations to run")
	seed := flag.Int64("seed", 1234, "Random seed")
	track := flag.Bool("track", false, "Record exploitability checkpoints during training")
	checkpointInterval := flag.Int("checkpoint_interval", 10000, "Iterations between checkpoints")
	payoffScale := flag.Float64("payoff_scale", kuhn.RawPayoffScale, "Multiplier applied to all payoffs")
	output := flag.String("output", "", "File to save the trained strategy profile to")
	checkpointsFile := flag.String("checkpoints", "", "File to write checkpoints to, as TSV")
	debugAddr := flag.String("debug_addr", "", "Address to serve pprof and expvar on, e.g. localhost:4123")
	flag.Parse()

	if *debugAddr != "" {
		go http.ListenAndServe(*debugAddr, nil)
	}

	game, err := kuhn.NewGameWithPayoffScale(*payoffScale)
	if err != nil {
		glog.Fatal(err)
	}

	trainer := kuhn.NewTrainer(game, *seed)
	start := time.Now()
	checkpoints, err := trainer.Train(*iterations, kuhn.TrainOptions{
		TrackConvergence:   *track,
		CheckpointInterval: *checkpointInterval,
	})
	if err != nil {
		glog.Fatal(err)
	}
	elapsed := time.Since(start)
	glog.Infof("Finished %d iterations in %v (%.1f iterations/sec)",
		*iterations, elapsed, float64(*iterations)/elapsed.Seconds())

	profile := trainer.StrategyProfile()
	fmt.Println("Strategy profile:")
	fmt.Print(profile.Table())
	fmt.Printf("Average sampled game value: %.5f\n", trainer.AverageGameValue())
	fmt.Printf("Game value: %.5f (equilibrium %.5f)\n", kuhn.GameValue(game, profile), game.EquilibriumValue())
	fmt.Printf("Exploitability: %.3f milli-units\n", kuhn.ExploitabilityMilli(game, profile))
	printNashComparison(kuhn.CompareToNash(profile))
	for _, cp := range checkpoints {
		fmt.Printf("  iteration %8d: exploitability %8.3f milli, game value %.5f\n",
			cp.Iteration, kuhn.MilliUnits*cp.Exploitability, cp.GameValue)
	}

	if *output != "" {
		if err := policy.SaveFile(*output, policy.FromTrainer(trainer, checkpoints)); err != nil {
			glog.Fatal(err)
		}
	}

	if *checkpointsFile != "" {
		if err := writeCheckpoints(*checkpointsFile, checkpoints); err != nil {
			glog.Fatal(err)
		}
	}
}

func writeCheckpoints(filename string, checkpoints []kuhn.Checkpoint) error {
	glog.Infof("Writing %d checkpoints to: %v", len(checkpoints), filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := policy.WriteCheckpointsTSV(f, checkpoints); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printNashComparison(c kuhn.NashComparison) {
	errs := c.Errors()
	fmt.Println("Key frequencies vs. Nash:")
	fmt.Printf("  Jack bluff:     %5.1f%% (Nash %5.1f%%), error %.1f%%\n",
		100*c.JackBluff, 100*kuhn.NashJackBluff, errs[0])
	fmt.Printf("  Queen call:     %5.1f%% (Nash %5.1f%%), error %.1f%%\n",
		100*c.QueenCall, 100*kuhn.NashQueenCall, errs[1])
	fmt.Printf("  King value bet: %5.1f%% (Nash %5.1f%%), error %.1f%%\n",
		100*c.KingValueBet, 100*kuhn.NashKingValueBet, errs[2])
	fmt.Printf("  Overall accuracy: %.1f%%\n", c.Accuracy())
}
