package cards

import (
	"github.com/pkg/errors"
)

// Card represents one card from the Kuhn Poker deck.
type Card uint8

const (
	Jack Card = iota
	Queen
	King
)

var cardStr = [...]string{
	"J",
	"Q",
	"K",
}

var cardNames = [...]string{
	"Jack",
	"Queen",
	"King",
}

// The number of distinct Cards in the deck.
const NumCards = len(cardStr)

// Deck is the full Kuhn Poker deck, in rank order.
var Deck = [NumCards]Card{Jack, Queen, King}

// String implements Stringer.
func (c Card) String() string {
	return cardStr[c]
}

// Name returns the full name of the card, e.g. "Queen".
func (c Card) Name() string {
	return cardNames[c]
}

// Beats returns whether c wins a showdown against other.
func (c Card) Beats(other Card) bool {
	return c > other
}

// ParseCard parses either the ordinal ('0'-'2') or the letter ('J', 'Q', 'K').
func ParseCard(b byte) (Card, error) {
	switch b {
	case '0', 'J', 'j':
		return Jack, nil
	case '1', 'Q', 'q':
		return Queen, nil
	case '2', 'K', 'k':
		return King, nil
	}

	return 0, errors.Errorf("invalid card: %q", b)
}
