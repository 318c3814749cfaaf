package gamestate

import (
	"github.com/pkg/errors"
)

// Action is a betting decision. Every non-terminal node offers
// exactly NumActions legal actions, indexed from zero.
type Action uint8

const (
	Pass Action = iota
	Bet
)

// NumActions is the number of legal actions at every decision node.
const NumActions = 2

// AllActions lists the legal actions in index order.
var AllActions = [NumActions]Action{Pass, Bet}

var actionStr = [...]string{
	"p",
	"b",
}

var actionNames = [...]string{
	"Pass",
	"Bet",
}

func (a Action) String() string {
	return actionStr[a]
}

// Name returns the full name of the action, e.g. "Bet".
func (a Action) Name() string {
	return actionNames[a]
}

// Valid returns whether a is one of the legal action indices.
func (a Action) Valid() bool {
	return int(a) < NumActions
}

// ActionFromIndex converts a strategy index into an Action.
func ActionFromIndex(i int) (Action, error) {
	if i < 0 || i >= NumActions {
		return 0, errors.Errorf("action index %d out of range [0, %d)", i, NumActions)
	}

	return Action(i), nil
}

// ParseAction parses the one-letter encoding used in histories.
func ParseAction(b byte) (Action, error) {
	switch b {
	case 'p', 'P':
		return Pass, nil
	case 'b', 'B':
		return Bet, nil
	}

	return 0, errors.Errorf("invalid action: %q", b)
}
