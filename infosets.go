package kuhn

import (
	"sort"

	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// InfoSetTable owns every InfoSet visited by one Trainer.
// InfoSets are never removed.
type InfoSetTable struct {
	nActions int
	infoSets map[gamestate.InfoSetKey]*InfoSet
}

func NewInfoSetTable(nActions int) *InfoSetTable {
	return &InfoSetTable{
		nActions: nActions,
		infoSets: make(map[gamestate.InfoSetKey]*InfoSet),
	}
}

// GetOrCreate returns the InfoSet for key, creating it with zero sums on
// first visit. This is the only place InfoSets are created.
func (t *InfoSetTable) GetOrCreate(key gamestate.InfoSetKey) *InfoSet {
	is, ok := t.infoSets[key]
	if !ok {
		is = NewInfoSet(t.nActions)
		t.infoSets[key] = is
		infoSetsCreated.Add(1)
	}

	return is
}

// Get returns the InfoSet for key, if it has been visited.
func (t *InfoSetTable) Get(key gamestate.InfoSetKey) (*InfoSet, bool) {
	is, ok := t.infoSets[key]
	return is, ok
}

func (t *InfoSetTable) Len() int {
	return len(t.infoSets)
}

// Keys returns the visited keys, ordered by history length and then
// lexicographically.
func (t *InfoSetTable) Keys() []gamestate.InfoSetKey {
	keys := make([]gamestate.InfoSetKey, 0, len(t.infoSets))
	for key := range t.infoSets {
		keys = append(keys, key)
	}

	sortKeys(keys)
	return keys
}

// StrategyProfile snapshots the average strategy of every visited InfoSet.
func (t *InfoSetTable) StrategyProfile() StrategyProfile {
	strategies := make(map[gamestate.InfoSetKey][]float64, len(t.infoSets))
	for key, is := range t.infoSets {
		strategies[key] = is.AverageStrategy()
	}

	return StrategyProfile{strategies: strategies}
}

func sortKeys(keys []gamestate.InfoSetKey) {
	sort.Slice(keys, func(i, j int) bool {
		hi, hj := keys[i].History.Len(), keys[j].History.Len()
		if hi != hj {
			return hi < hj
		}

		return keys[i].String() < keys[j].String()
	})
}
