package cards

import (
	"fmt"
	"math/rand"
)

// Deal holds the private card of each player. The remaining card of the
// deck is never observed by either player.
type Deal [2]Card

// NumDeals is the number of distinct ordered deals. Each is equally likely.
const NumDeals = 6

func (d Deal) String() string {
	return fmt.Sprintf("[%v %v]", d[0], d[1])
}

// Valid returns whether both cards are in range and distinct.
func (d Deal) Valid() bool {
	return d[0] < Card(NumCards) && d[1] < Card(NumCards) && d[0] != d[1]
}

// NthDeal returns the first two cards of the nth permutation of the deck,
// using the factorial number system.
// See: https://en.wikipedia.org/wiki/Lehmer_code
//
// Every ordered pair of distinct cards is the prefix of exactly one of
// the 3! permutations, so n in [0, NumDeals) enumerates all deals.
func NthDeal(n int) Deal {
	if n < 0 || n >= NumDeals {
		panic(fmt.Errorf("deal index %d is out of range", n))
	}

	remaining := append([]Card(nil), Deck[:]...)
	var result Deal
	for i := range result {
		radix := factorial(NumCards - i - 1)
		k := n / radix
		n %= radix

		result[i] = remaining[k]
		remaining = append(remaining[:k], remaining[k+1:]...)
	}

	return result
}

// AllDeals returns all NumDeals ordered deals.
func AllDeals() []Deal {
	result := make([]Deal, NumDeals)
	for i := range result {
		result[i] = NthDeal(i)
	}
	return result
}

func factorial(k int) int {
	result := 1
	for i := 2; i <= k; i++ {
		result *= i
	}
	return result
}

// Dealer deals uniformly random hands from its own random source,
// so that a fixed seed reproduces the same sequence of deals.
type Dealer struct {
	rng *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{rng: rand.New(rand.NewSource(seed))}
}

// Deal shuffles the deck and returns the first two cards.
func (d *Dealer) Deal() Deal {
	return NthDeal(d.rng.Intn(NumDeals))
}
