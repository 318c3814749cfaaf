// Package policy saves and loads trained strategy profiles.
//
// Snapshots are gob-encoded inside a parallel gzip stream.
package policy

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	kuhn "github.com/tjehanne/kuhn-poker-cfr"
	"github.com/tjehanne/kuhn-poker-cfr/gamestate"
)

// Entry is the average strategy at one information set.
type Entry struct {
	// InfoSetKey in its string form, e.g. "1pb".
	InfoSet  string
	Strategy []float64
}

// Snapshot is the persisted form of a trained profile.
type Snapshot struct {
	PayoffScale float64
	Iterations  int
	Profile     []Entry
	Checkpoints []kuhn.Checkpoint
}

// NewSnapshot captures profile in key order.
func NewSnapshot(game kuhn.Game, profile kuhn.StrategyProfile, iterations int, checkpoints []kuhn.Checkpoint) *Snapshot {
	entries := make([]Entry, 0, profile.Len())
	for _, key := range profile.Keys() {
		entries = append(entries, Entry{
			InfoSet:  key.String(),
			Strategy: profile.Strategy(key),
		})
	}

	return &Snapshot{
		PayoffScale: game.PayoffScale,
		Iterations:  iterations,
		Profile:     entries,
		Checkpoints: append([]kuhn.Checkpoint(nil), checkpoints...),
	}
}

// FromTrainer snapshots the current average profile of t.
func FromTrainer(t *kuhn.Trainer, checkpoints []kuhn.Checkpoint) *Snapshot {
	return NewSnapshot(t.Game(), t.StrategyProfile(), t.Iterations(), checkpoints)
}

// StrategyProfile rebuilds the validated profile.
func (s *Snapshot) StrategyProfile() (kuhn.StrategyProfile, error) {
	strategies := make(map[gamestate.InfoSetKey][]float64, len(s.Profile))
	for _, entry := range s.Profile {
		key, err := gamestate.ParseInfoSetKey(entry.InfoSet)
		if err != nil {
			return kuhn.StrategyProfile{}, err
		}
		if _, ok := strategies[key]; ok {
			return kuhn.StrategyProfile{}, errors.Errorf("duplicate infoset %q", entry.InfoSet)
		}

		strategies[key] = entry.Strategy
	}

	return kuhn.NewStrategyProfile(strategies)
}

// Game returns the game the profile was trained on. Snapshots without a
// recorded scale use raw payoffs.
func (s *Snapshot) Game() (kuhn.Game, error) {
	if s.PayoffScale == 0 {
		return kuhn.NewGame(), nil
	}

	return kuhn.NewGameWithPayoffScale(s.PayoffScale)
}

func Save(w io.Writer, s *Snapshot) error {
	gzw := gzip.NewWriter(w)
	enc := gob.NewEncoder(gzw)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	return gzw.Close()
}

func Load(r io.Reader) (*Snapshot, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening gzip stream")
	}
	defer gzr.Close()

	var s Snapshot
	dec := gob.NewDecoder(gzr)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}

	return &s, nil
}

// SaveFile writes s to filename, replacing any existing file.
func SaveFile(filename string, s *Snapshot) error {
	glog.Infof("Saving strategy profile to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}

	if err := Save(f, s); err != nil {
		f.Close()
		return errors.Wrapf(err, "saving %v", filename)
	}

	return f.Close()
}

func LoadFile(filename string) (*Snapshot, error) {
	glog.Infof("Loading strategy profile from: %v", filename)
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", filename)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %v", filename)
	}

	return s, nil
}
