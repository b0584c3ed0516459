package epsp

import "math"

const (
	MinAmplitude = 0.0 // exclusive
	MaxAmplitude = 2.0
	MinFrequency = 1.0
	MaxFrequency = 20.0

	// Slider range of the amplitude control. A raw slider value maps to
	// raw/AmplitudeSliderScale millivolts.
	AmplitudeSliderMin   = 1
	AmplitudeSliderMax   = 100
	AmplitudeSliderScale = 50.0
)

// Parameters is one amplitude/frequency pair to synthesize.
type Parameters struct {
	Amplitude float64 `json:"amplitude"` // mV
	Frequency float64 `json:"frequency"` // Hz
}

// DefaultParameters returns the pair a fresh explorer starts from.
func DefaultParameters() Parameters {
	return Parameters{Amplitude: 1.0, Frequency: 7}
}

// AmplitudeFromSlider converts a raw slider position to millivolts.
func AmplitudeFromSlider(raw int) (float64, error) {
	if raw < AmplitudeSliderMin || raw > AmplitudeSliderMax {
		return 0, &ParameterError{Field: "slider", Value: float64(raw), Reason: "must be between 1 and 100"}
	}
	return float64(raw) / AmplitudeSliderScale, nil
}

// Validate reports a *ParameterError when either value is outside the
// synthesizer's domain.
func (p Parameters) Validate() error {
	if err := validateAmplitude(p.Amplitude); err != nil {
		return err
	}
	return validateFrequency(p.Frequency)
}

func validateAmplitude(a float64) error {
	switch {
	case math.IsNaN(a) || math.IsInf(a, 0):
		return &ParameterError{Field: "amplitude", Value: a, Reason: "must be finite"}
	case a <= MinAmplitude:
		return &ParameterError{Field: "amplitude", Value: a, Reason: "must be positive"}
	case a > MaxAmplitude:
		return &ParameterError{Field: "amplitude", Value: a, Reason: "must not exceed 2 mV"}
	}
	return nil
}

func validateFrequency(f float64) error {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return &ParameterError{Field: "frequency", Value: f, Reason: "must be finite"}
	case f <= 0:
		return &ParameterError{Field: "frequency", Value: f, Reason: "must be positive"}
	case f < MinFrequency || f > MaxFrequency:
		return &ParameterError{Field: "frequency", Value: f, Reason: "must be between 1 and 20 Hz"}
	}
	return nil
}
