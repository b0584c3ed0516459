// Package epsp synthesizes excitatory postsynaptic potential traces: a train
// of presynaptic events, each contributing an exponentially decaying
// potential to a fixed two-second window.
package epsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	Duration    = 2000.0 // ms
	SampleCount = 10000
	DecayTau    = 10.0 // ms

	// events fired per Hz of frequency within Duration
	eventsPerHz = Duration / 1000
)

// Sample is one point of a waveform.
type Sample struct {
	Time      float64 `json:"time" doc:"Time in ms"`
	Potential float64 `json:"potential" doc:"Membrane potential in mV"`
}

// Waveform is a synthesized trace. Times and Potentials have equal length.
type Waveform struct {
	Params     Parameters
	Times      []float64
	Potentials []float64
}

// Synthesize builds the summed EPSP trace for p. It is a pure function of p.
func Synthesize(p Parameters) (*Waveform, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	times := make([]float64, SampleCount)
	floats.Span(times, 0, Duration)
	potentials := make([]float64, SampleCount)

	for _, onset := range Onsets(p.Frequency) {
		// samples before onset get nothing from this event
		start := sort.SearchFloat64s(times, onset)
		for j := start; j < len(times); j++ {
			potentials[j] += p.Amplitude * math.Exp(-(times[j]-onset)/DecayTau)
		}
	}

	return &Waveform{Params: p, Times: times, Potentials: potentials}, nil
}

// EventCount is the number of presynaptic events fired in the window.
func EventCount(frequency float64) int {
	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return 0
	}
	return int(math.Floor(eventsPerHz * frequency))
}

// Onsets returns the event onset times in ms, spaced 1000/frequency apart
// starting at 0.
func Onsets(frequency float64) []float64 {
	n := EventCount(frequency)
	onsets := make([]float64, n)
	interval := 1000 / frequency
	for i := range onsets {
		onsets[i] = float64(i) * interval
	}
	return onsets
}

// Onsets returns the event onset times of the waveform.
func (w *Waveform) Onsets() []float64 {
	return Onsets(w.Params.Frequency)
}

func (w *Waveform) Len() int {
	return len(w.Times)
}

// Samples pairs each time with its potential.
func (w *Waveform) Samples() []Sample {
	samples := make([]Sample, len(w.Times))
	for i := range w.Times {
		samples[i] = Sample{Time: w.Times[i], Potential: w.Potentials[i]}
	}
	return samples
}

// Decimate keeps every stride-th sample, starting with the first. A stride
// below 2 returns w unchanged.
func (w *Waveform) Decimate(stride int) *Waveform {
	if stride < 2 {
		return w
	}
	n := (len(w.Times) + stride - 1) / stride
	out := &Waveform{
		Params:     w.Params,
		Times:      make([]float64, 0, n),
		Potentials: make([]float64, 0, n),
	}
	for i := 0; i < len(w.Times); i += stride {
		out.Times = append(out.Times, w.Times[i])
		out.Potentials = append(out.Potentials, w.Potentials[i])
	}
	return out
}

// Summary describes a waveform without its samples.
type Summary struct {
	EventCount     int     `json:"event_count" doc:"Number of presynaptic events"`
	PeakPotential  float64 `json:"peak_potential" doc:"Largest potential in mV"`
	PeakTime       float64 `json:"peak_time" doc:"Time of the peak in ms"`
	MeanPotential  float64 `json:"mean_potential" doc:"Mean potential over the window in mV"`
	FinalPotential float64 `json:"final_potential" doc:"Potential at the end of the window in mV"`
}

func (w *Waveform) Summary() Summary {
	if w.Len() == 0 {
		return Summary{EventCount: EventCount(w.Params.Frequency)}
	}
	peak := floats.MaxIdx(w.Potentials)
	return Summary{
		EventCount:     EventCount(w.Params.Frequency),
		PeakPotential:  w.Potentials[peak],
		PeakTime:       w.Times[peak],
		MeanPotential:  stat.Mean(w.Potentials, nil),
		FinalPotential: w.Potentials[len(w.Potentials)-1],
	}
}
