// Package render turns synthesized waveforms into presentable artifacts: an
// interactive HTML page, CSV samples, or a terminal chart.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/RMahshie/synapse/internal/epsp"
)

// Render writes wf to w in the given format.
func Render(w io.Writer, f Format, wf *epsp.Waveform) error {
	switch f {
	case HTML:
		return WriteHTML(w, wf)
	case CSV:
		return WriteCSV(w, wf)
	case Text:
		return WriteText(w, wf)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// Bytes renders wf into memory.
func Bytes(f Format, wf *epsp.Waveform) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, f, wf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
