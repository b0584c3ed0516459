package epsp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_SampleGrid(t *testing.T) {
	for _, p := range []Parameters{
		{Amplitude: 0.02, Frequency: 1},
		{Amplitude: 1.0, Frequency: 7},
		{Amplitude: 2.0, Frequency: 20},
	} {
		wf, err := Synthesize(p)
		require.NoError(t, err)

		require.Equal(t, SampleCount, wf.Len())
		require.Len(t, wf.Potentials, SampleCount)
		assert.Equal(t, 0.0, wf.Times[0])
		assert.InDelta(t, Duration, wf.Times[SampleCount-1], 1e-9)

		step := Duration / float64(SampleCount-1)
		for i := 1; i < wf.Len(); i++ {
			require.Greater(t, wf.Times[i], wf.Times[i-1])
			require.InDelta(t, step, wf.Times[i]-wf.Times[i-1], 1e-9)
		}
	}
}

func TestSynthesize_NonNegativeAndStartsAtAmplitude(t *testing.T) {
	for _, p := range []Parameters{
		{Amplitude: 0.02, Frequency: 1},
		{Amplitude: 0.5, Frequency: 3.3},
		{Amplitude: 2.0, Frequency: 20},
	} {
		wf, err := Synthesize(p)
		require.NoError(t, err)

		assert.Equal(t, p.Amplitude, wf.Potentials[0], "first event starts at t=0")
		for i, v := range wf.Potentials {
			require.GreaterOrEqual(t, v, 0.0, "sample %d", i)
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	p := Parameters{Amplitude: 1.3, Frequency: 11}

	a, err := Synthesize(p)
	require.NoError(t, err)
	b, err := Synthesize(p)
	require.NoError(t, err)

	assert.Equal(t, a.Times, b.Times)
	assert.Equal(t, a.Potentials, b.Potentials)
}

func TestSynthesize_DecaysBetweenOnsets(t *testing.T) {
	for _, f := range []float64{1, 2, 7, 13.5, 20} {
		wf, err := Synthesize(Parameters{Amplitude: 1, Frequency: f})
		require.NoError(t, err)
		onsets := Onsets(f)

		for j := 1; j < wf.Len(); j++ {
			onsetHere := false
			for _, o := range onsets {
				if wf.Times[j-1] < o && o <= wf.Times[j] {
					onsetHere = true
					break
				}
			}
			if onsetHere {
				require.Greater(t, wf.Potentials[j], wf.Potentials[j-1], "frequency %g, sample %d", f, j)
				continue
			}
			require.Less(t, wf.Potentials[j], wf.Potentials[j-1], "frequency %g, sample %d", f, j)
		}
	}
}

func TestSynthesize_OneHertz(t *testing.T) {
	wf, err := Synthesize(Parameters{Amplitude: 1.0, Frequency: 1})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1000}, Onsets(1))

	// 1000 ms falls between samples 4999 and 5000
	before, after := 4999, 5000
	require.Less(t, wf.Times[before], 1000.0)
	require.GreaterOrEqual(t, wf.Times[after], 1000.0)

	assert.Less(t, wf.Potentials[before], 1e-40)
	assert.InDelta(t, 1.0, wf.Potentials[after]-wf.Potentials[before], 0.02)
	assert.InDelta(t, math.Exp(-(wf.Times[after]-1000)/DecayTau), wf.Potentials[after], 1e-12)
}

func TestSynthesize_MaxRateStaysUnderGeometricBound(t *testing.T) {
	p := Parameters{Amplitude: 2.0, Frequency: 20}
	wf, err := Synthesize(p)
	require.NoError(t, err)

	onsets := Onsets(p.Frequency)
	require.Len(t, onsets, 40)
	assert.InDelta(t, 50.0, onsets[1]-onsets[0], 1e-12)
	assert.InDelta(t, 1950.0, onsets[39], 1e-9)

	bound := p.Amplitude / (1 - math.Exp(-50/DecayTau))
	for i, v := range wf.Potentials {
		require.LessOrEqual(t, v, bound+1e-12, "sample %d", i)
	}

	// the sample at or just after each onset carries at least the new event
	for _, o := range onsets {
		j := 0
		for wf.Times[j] < o {
			j++
		}
		assert.GreaterOrEqual(t, wf.Potentials[j], p.Amplitude*math.Exp(-(wf.Times[j]-o)/DecayTau))
	}
}

func TestEventCount(t *testing.T) {
	tests := []struct {
		frequency float64
		want      int
	}{
		{1, 2},
		{1.4, 2},
		{1.5, 3},
		{7, 14},
		{7.5, 15},
		{20, 40},
		{0, 0},
		{-3, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EventCount(tt.frequency), "frequency %g", tt.frequency)
	}
}

func TestSynthesize_InvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		p     Parameters
		field string
	}{
		{"zero amplitude", Parameters{Amplitude: 0, Frequency: 5}, "amplitude"},
		{"negative amplitude", Parameters{Amplitude: -0.5, Frequency: 5}, "amplitude"},
		{"amplitude too large", Parameters{Amplitude: 2.01, Frequency: 5}, "amplitude"},
		{"NaN amplitude", Parameters{Amplitude: math.NaN(), Frequency: 5}, "amplitude"},
		{"zero frequency", Parameters{Amplitude: 1, Frequency: 0}, "frequency"},
		{"negative frequency", Parameters{Amplitude: 1, Frequency: -2}, "frequency"},
		{"frequency below range", Parameters{Amplitude: 1, Frequency: 0.5}, "frequency"},
		{"frequency above range", Parameters{Amplitude: 1, Frequency: 21}, "frequency"},
		{"infinite frequency", Parameters{Amplitude: 1, Frequency: math.Inf(1)}, "frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf, err := Synthesize(tt.p)
			assert.Nil(t, wf)
			require.ErrorIs(t, err, ErrInvalidParameter)

			var perr *ParameterError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestWaveform_Decimate(t *testing.T) {
	wf, err := Synthesize(DefaultParameters())
	require.NoError(t, err)

	assert.Same(t, wf, wf.Decimate(1))

	d := wf.Decimate(10)
	require.Equal(t, 1000, d.Len())
	assert.Equal(t, wf.Times[10], d.Times[1])
	assert.Equal(t, wf.Potentials[9990], d.Potentials[999])

	d = wf.Decimate(3)
	assert.Equal(t, 3334, d.Len())
}

func TestWaveform_Summary(t *testing.T) {
	wf, err := Synthesize(Parameters{Amplitude: 1.0, Frequency: 1})
	require.NoError(t, err)

	s := wf.Summary()
	assert.Equal(t, 2, s.EventCount)
	assert.Equal(t, 1.0, s.PeakPotential)
	assert.Equal(t, 0.0, s.PeakTime)
	assert.Greater(t, s.MeanPotential, 0.0)
	assert.Less(t, s.MeanPotential, 0.02)
	assert.Less(t, s.FinalPotential, 1e-40)
}

func TestWaveform_Samples(t *testing.T) {
	wf, err := Synthesize(DefaultParameters())
	require.NoError(t, err)

	samples := wf.Samples()
	require.Len(t, samples, SampleCount)
	assert.Equal(t, Sample{Time: 0, Potential: 1.0}, samples[0])
	assert.Equal(t, wf.Potentials[42], samples[42].Potential)
}
