package policy

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	kuhn "github.com/tjehanne/kuhn-poker-cfr"
)

var checkpointsHeader = []string{"iteration", "exploitability", "game_value"}

// WriteCheckpointsTSV writes one tab-separated row per checkpoint after
// a header row. Exploitability is in raw payoff units.
func WriteCheckpointsTSV(w io.Writer, checkpoints []kuhn.Checkpoint) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(checkpointsHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}

	for _, cp := range checkpoints {
		row := []string{
			strconv.Itoa(cp.Iteration),
			strconv.FormatFloat(cp.Exploitability, 'g', -1, 64),
			strconv.FormatFloat(cp.GameValue, 'g', -1, 64),
		}

		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing checkpoint %d", cp.Iteration)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCheckpointsTSV parses the output of WriteCheckpointsTSV.
func ReadCheckpointsTSV(r io.Reader) ([]kuhn.Checkpoint, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = len(checkpointsHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading checkpoints")
	}
	if len(rows) == 0 {
		return nil, errors.New("missing checkpoints header")
	}

	var checkpoints []kuhn.Checkpoint
	for i, row := range rows[1:] {
		iteration, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		exploitability, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		gameValue, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}

		checkpoints = append(checkpoints, kuhn.Checkpoint{
			Iteration:      iteration,
			Exploitability: exploitability,
			GameValue:      gameValue,
		})
	}

	return checkpoints, nil
}
