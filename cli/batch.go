package cli

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/lines/lines"
)

// batchFile is the JSON layout of a line batch: one [x0, y0, z0, x1, y1, z1] row per line and
// an optional validity mask.
type batchFile struct {
	Lines [][]float64 `json:"lines"`
	Valid []bool      `json:"valid,omitempty"`
}

func readBatch(path string) (*lines.Batch, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bf batchFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode line batch %q", path)
	}
	return lines.NewBatchFromRows(bf.Lines, bf.Valid)
}
