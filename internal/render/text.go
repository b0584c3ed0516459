package render

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/RMahshie/synapse/internal/epsp"
)

// Terminal plot size in character cells.
const (
	PlotWidth  = 80
	PlotHeight = 12
)

// Plot draws the trace as an ASCII chart with the y-axis pinned to the same
// range as the HTML chart. Potentials above YAxisMax are drawn on the top
// edge so the axis never stretches.
func Plot(wf *epsp.Waveform, width, height int) string {
	clipped := make([]float64, len(wf.Potentials))
	for i, v := range wf.Potentials {
		clipped[i] = math.Min(v, YAxisMax)
	}
	return asciigraph.Plot(clipped,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(YAxisMin),
		asciigraph.UpperBound(YAxisMax),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("EPSP  %.2f mV @ %.2f Hz  (0-%.0f ms)",
			wf.Params.Amplitude, wf.Params.Frequency, epsp.Duration)),
	)
}

// WriteText writes the ASCII chart followed by the waveform summary.
func WriteText(w io.Writer, wf *epsp.Waveform) error {
	s := wf.Summary()
	_, err := fmt.Fprintf(w, "%s\n\nevents %d  peak %.3f mV at %.1f ms  mean %.3f mV\n",
		Plot(wf, PlotWidth, PlotHeight), s.EventCount, s.PeakPotential, s.PeakTime, s.MeanPotential)
	return err
}
