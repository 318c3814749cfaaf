package gamestate

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/tjehanne/kuhn-poker-cfr/cards"
)

// InfoSetKey identifies what the acting player can observe: their own
// private card and the public betting History. Two deals that agree on
// both are indistinguishable to that player and share one InfoSet.
type InfoSetKey struct {
	Card    cards.Card
	History History
}

// NewInfoSetKey concatenates the observer's private card and the public history.
func NewInfoSetKey(card cards.Card, h History) InfoSetKey {
	return InfoSetKey{Card: card, History: h}
}

// Player returns the player who acts at this InfoSet.
func (k InfoSetKey) Player() Player {
	return k.History.NextPlayer()
}

// String returns the card ordinal followed by the history, e.g. "0pb"
// for a Jack facing a bet after passing.
func (k InfoSetKey) String() string {
	return strconv.Itoa(int(k.Card)) + k.History.String()
}

// ParseInfoSetKey parses the encoding produced by String.
func ParseInfoSetKey(s string) (InfoSetKey, error) {
	if len(s) == 0 {
		return InfoSetKey{}, errors.New("empty infoset key")
	}

	card, err := cards.ParseCard(s[0])
	if err != nil {
		return InfoSetKey{}, errors.Wrapf(err, "parsing infoset key %q", s)
	}

	h, err := ParseHistory(s[1:])
	if err != nil {
		return InfoSetKey{}, errors.Wrapf(err, "parsing infoset key %q", s)
	}

	return NewInfoSetKey(card, h), nil
}

// AllInfoSetKeys enumerates every decision point of the game:
// each card paired with each non-terminal History.
func AllInfoSetKeys() []InfoSetKey {
	var result []InfoSetKey
	for _, h := range AllHistories() {
		if h.IsTerminal() {
			continue
		}

		for _, card := range cards.Deck {
			result = append(result, NewInfoSetKey(card, h))
		}
	}

	return result
}
