package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/RMahshie/synapse/internal/epsp"
)

var csvHeader = []string{"time_ms", "potential_mv"}

// WriteCSV writes one row per sample with full float precision.
func WriteCSV(w io.Writer, wf *epsp.Waveform) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	row := make([]string, 2)
	for i := range wf.Times {
		row[0] = strconv.FormatFloat(wf.Times[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(wf.Potentials[i], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
