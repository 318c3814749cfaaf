package gamestate

import (
	"fmt"
)

// Player represents the identity of a player in the game.
type Player uint8

const (
	Player0 Player = iota
	Player1
)

// NumPlayers is the number of players seated at the table.
const NumPlayers = 2

var playerStr = [...]string{
	"Player0",
	"Player1",
}

func (p Player) String() string {
	return playerStr[p]
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Player0:
		return Player1
	case Player1:
		return Player0
	}

	panic(fmt.Errorf("invalid player: %d", p))
}

// Sign returns +1 for Player0 and -1 for Player1. Payoffs are expressed
// from Player0's point of view, so multiplying by Sign gives the payoff
// from p's point of view.
func (p Player) Sign() float64 {
	switch p {
	case Player0:
		return 1
	case Player1:
		return -1
	}

	panic(fmt.Errorf("invalid player: %d", p))
}
