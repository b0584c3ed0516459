package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/synapse/internal/epsp"
)

const pageTitle = "Synaptic Transmission Simulator (EPSPs)"

// Fixed y-axis range of the EPSP plot, in mV.
const (
	YAxisMin = 0.0
	YAxisMax = 2.0
)

// WriteHTML renders the EPSP trace and the synapse schematic as one page.
func WriteHTML(w io.Writer, wf *epsp.Waveform) error {
	renderTime := time.Now()

	schematic, err := epsp.NewSchematic(wf.Params)
	if err != nil {
		return fmt.Errorf("failed to build schematic: %w", err)
	}

	page := components.NewPage()
	page.SetPageTitle(pageTitle)
	page.AddCharts(NewEPSPChart(wf), NewSchematicChart(schematic))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.Debug().
		Float64("amplitude", wf.Params.Amplitude).
		Float64("frequency", wf.Params.Frequency).
		Dur("time", time.Since(renderTime)).
		Msg("EPSP page rendered")
	return nil
}

// NewEPSPChart plots potential against time with the y-axis pinned to
// [YAxisMin, YAxisMax].
func NewEPSPChart(wf *epsp.Waveform) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "450px",
			PageTitle:       pageTitle,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Excitatory Postsynaptic Potentials (EPSPs)",
			Subtitle: fmt.Sprintf("amplitude %.2f mV, presynaptic engagement %.2f Hz", wf.Params.Amplitude, wf.Params.Frequency),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Top:  "0%",
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  "epsp",
					Title: "Save as image",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show:       opts.Bool(true),
					YAxisIndex: "none",
					Title: map[string]string{
						"zoom": "area zooming",
						"back": "restore area zooming",
					},
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		// AXIS
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Time (ms)",
			Type: "value",
			Min:  0,
			Max:  epsp.Duration,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Membrane Potential (mV)",
			Type: "value",
			Show: opts.Bool(true),
			Min:  YAxisMin,
			Max:  YAxisMax,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	data := make([]opts.LineData, wf.Len())
	for i := range wf.Times {
		data[i] = opts.LineData{Value: []float64{wf.Times[i], wf.Potentials[i]}}
	}
	line.AddSeries("EPSP", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1.5}),
	)

	return line
}

// NewSchematicChart draws the presynaptic and postsynaptic cells joined by
// the synapse. The edge width follows the schematic's arrow width.
func NewSchematicChart(s epsp.Schematic) *charts.Graph {
	graph := charts.NewGraph()

	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "350px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Synapse",
			Subtitle: fmt.Sprintf("gi = %.2f mS    Frequency = %.2f Hz", s.Conductance, s.Frequency),
			Left:     "center",
		}),
	)

	nodes := []opts.GraphNode{
		{Name: "Presynaptic", X: 200, Y: 500, SymbolSize: 90},
		{Name: "gi", X: 620, Y: 500, Symbol: "triangle", SymbolSize: 20 + 200*s.ResistorWidth},
		{Name: "Postsynaptic", X: 800, Y: 500, SymbolSize: 90},
	}
	links := []opts.GraphLink{
		{
			Source: "Presynaptic",
			Target: "gi",
			Label:  &opts.EdgeLabel{Show: opts.Bool(true), Formatter: "Input"},
			LineStyle: &opts.LineStyle{
				Color: "blue",
				Width: float32(s.ArrowWidth * 200),
			},
		},
		{Source: "gi", Target: "Postsynaptic"},
	}

	graph.AddSeries("synapse", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:         "none",
			Roam:           opts.Bool(false),
			EdgeSymbol:     []string{"none", "arrow"},
			EdgeSymbolSize: 12,
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)

	return graph
}
