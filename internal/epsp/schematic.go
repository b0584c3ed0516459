package epsp

// Schematic holds the values drawn on the synapse circuit diagram next to
// the trace.
type Schematic struct {
	Conductance   float64 `json:"conductance" doc:"Synaptic conductance gi in mS"`
	Frequency     float64 `json:"frequency" doc:"Presynaptic firing rate in Hz"`
	ArrowWidth    float64 `json:"arrow_width" doc:"Width of the synapse arrow, in diagram units"`
	ResistorWidth float64 `json:"resistor_width" doc:"Width of the variable resistor, in diagram units"`
}

// NewSchematic derives the diagram values for p. The conductance is taken
// as the amplitude itself.
func NewSchematic(p Parameters) (Schematic, error) {
	if err := p.Validate(); err != nil {
		return Schematic{}, err
	}
	return Schematic{
		Conductance:   p.Amplitude,
		Frequency:     p.Frequency,
		ArrowWidth:    0.02 + (p.Frequency/MaxFrequency)*0.03,
		ResistorWidth: 0.1 - p.Amplitude*0.05,
	}, nil
}
