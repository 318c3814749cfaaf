// Evaluate a saved Kuhn Poker strategy profile against its best responses.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	kuhn "github.com/tjehanne/kuhn-poker-cfr"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
	"github.com/tjehanne/kuhn-poker-cfr/policy"
)

func main() {
	profileFile := flag.String("profile", "", "File with a saved strategy profile")
	flag.Parse()

	if *profileFile == "" {
		glog.Fatal("-profile is required")
	}

	snapshot, err := policy.LoadFile(*profileFile)
	if err != nil {
		glog.Fatal(err)
	}

	game, err := snapshot.Game()
	if err != nil {
		glog.Fatal(err)
	}

	profile, err := snapshot.StrategyProfile()
	if err != nil {
		glog.Fatal(err)
	}

	fmt.Printf("Strategy profile after %d iterations:\n", snapshot.Iterations)
	fmt.Print(profile.Table())
	for _, player := range []gamestate.Player{gamestate.Player0, gamestate.Player1} {
		br := kuhn.ComputeBestResponse(game, profile, player)
		fmt.Printf("Best response for %v: value to Player0 %.5f\n", player, kuhn.BestResponseStrategyValue(game, profile, br))
		for _, key := range gamestate.AllInfoSetKeys() {
			if action, ok := br.Actions[key]; ok {
				fmt.Printf("  %-4v %v\n", key, action.Name())
			}
		}
	}

	fmt.Printf("Game value: %.5f (equilibrium %.5f)\n", kuhn.GameValue(game, profile), game.EquilibriumValue())
	fmt.Printf("Exploitability: %.3f milli-units\n", kuhn.ExploitabilityMilli(game, profile))
}
