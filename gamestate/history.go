package gamestate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxLen is the longest possible betting sequence: pass, bet, call.
const MaxLen = 3

// History records the public sequence of actions taken so far.
//
// History is an immutable, comparable value: Append returns a new
// History and leaves the receiver untouched, so it can be shared
// freely and used directly as (part of) a map key. Slots beyond Len
// are always zero.
type History struct {
	actions [MaxLen]Action
	n       uint8
}

// NewHistory returns a History containing the given actions.
func NewHistory(actions ...Action) History {
	var h History
	for _, action := range actions {
		h = h.Append(action)
	}
	return h
}

func (h History) Len() int {
	return int(h.n)
}

func (h History) IsEmpty() bool {
	return h.n == 0
}

func (h History) Get(i int) Action {
	if i < 0 || i >= int(h.n) {
		panic(fmt.Errorf("index out of range: %d %v", i, h))
	}

	return h.actions[i]
}

// Last returns the most recent action. Panics on an empty History.
func (h History) Last() Action {
	return h.Get(int(h.n) - 1)
}

// Append returns a new History extended by one action.
func (h History) Append(action Action) History {
	if !action.Valid() {
		panic(fmt.Errorf("invalid action %d appended to %v", action, h))
	}
	if int(h.n) >= MaxLen {
		panic(fmt.Errorf("history exceeded max length: %v", h))
	}

	h.actions[h.n] = action
	h.n++
	return h
}

// NextPlayer returns the player to act after this History.
// Players strictly alternate, starting with Player0.
func (h History) NextPlayer() Player {
	switch h.n % NumPlayers {
	case 0:
		return Player0
	default:
		return Player1
	}
}

// Prefix returns the History of the first n actions.
func (h History) Prefix(n int) History {
	if n < 0 || n > int(h.n) {
		panic(fmt.Errorf("prefix length out of range: %d %v", n, h))
	}

	var result History
	copy(result.actions[:n], h.actions[:n])
	result.n = uint8(n)
	return result
}

// ActedBy returns the player who took the ith action.
func (h History) ActedBy(i int) Player {
	h.Get(i) // Bounds check.
	return h.Prefix(i).NextPlayer()
}

// String returns the compact encoding, e.g. "pb".
func (h History) String() string {
	var sb strings.Builder
	for _, action := range h.actions[:h.n] {
		sb.WriteString(action.String())
	}
	return sb.String()
}

// Outcome classifies how (or whether) a betting sequence ended.
type Outcome uint8

const (
	// The betting round is still in progress.
	InProgress Outcome = iota
	// Both players passed: showdown for the antes.
	CheckedDown
	// A bet was not called: the bettor takes the antes.
	Folded
	// A bet was called: showdown for antes plus bets.
	Called
)

var outcomeStr = [...]string{
	"InProgress",
	"CheckedDown",
	"Folded",
	"Called",
}

func (o Outcome) String() string {
	return outcomeStr[o]
}

// Outcome classifies the History by its last two actions. Every
// sequence shorter than two actions, and the sequence "pb", is in
// progress; "pp", "bp", and "bb" suffixes end the hand.
func (h History) Outcome() Outcome {
	if h.n < 2 {
		return InProgress
	}

	prev, last := h.Get(h.Len()-2), h.Last()
	switch {
	case prev == Pass && last == Pass:
		return CheckedDown
	case prev == Bet && last == Pass:
		return Folded
	case prev == Bet && last == Bet:
		return Called
	case prev == Pass && last == Bet:
		if int(h.n) == MaxLen {
			// No legal continuation exists, so the grammar is incomplete.
			panic(fmt.Errorf("history %v is neither terminal nor extendable", h))
		}
		return InProgress
	}

	panic(fmt.Errorf("unrecognized history: %v", h))
}

// IsTerminal returns whether the hand is over after this History.
func (h History) IsTerminal() bool {
	return h.Outcome() != InProgress
}

// Validate checks that no proper prefix of the History is terminal,
// i.e. that the History is reachable from the start of the hand.
func (h History) Validate() error {
	var prefix History
	for i, action := range h.actions[:h.n] {
		if prefix.IsTerminal() {
			return errors.Errorf("action %d (%v) follows terminal history %q", i, action, prefix)
		}
		prefix = prefix.Append(action)
	}

	return nil
}

// ParseHistory parses the compact encoding produced by String.
func ParseHistory(s string) (History, error) {
	if len(s) > MaxLen {
		return History{}, errors.Errorf("history %q longer than %d actions", s, MaxLen)
	}

	var h History
	for i := 0; i < len(s); i++ {
		action, err := ParseAction(s[i])
		if err != nil {
			return History{}, errors.Wrapf(err, "parsing history %q", s)
		}
		h = h.Append(action)
	}

	if err := h.Validate(); err != nil {
		return History{}, err
	}

	return h, nil
}

// AllHistories enumerates every History reachable from the empty
// History, terminal or not, in breadth-first order.
func AllHistories() []History {
	result := []History{{}}
	for i := 0; i < len(result); i++ {
		h := result[i]
		if h.IsTerminal() {
			continue
		}

		for _, action := range AllActions {
			result = append(result, h.Append(action))
		}
	}

	return result
}
