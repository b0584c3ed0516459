package epsp

// Explorer holds the parameter pair a presentation layer is showing and
// re-synthesizes on every change. It is not safe for concurrent use.
type Explorer struct {
	params Parameters
}

// NewExplorer starts from p, which must be valid.
func NewExplorer(p Parameters) (*Explorer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Explorer{params: p}, nil
}

func (e *Explorer) Parameters() Parameters {
	return e.params
}

// OnParameterChange synthesizes p and makes it current. On error the
// current pair is left as it was.
func (e *Explorer) OnParameterChange(p Parameters) (*Waveform, error) {
	wf, err := Synthesize(p)
	if err != nil {
		return nil, err
	}
	e.params = p
	return wf, nil
}

func (e *Explorer) SetAmplitude(amplitude float64) (*Waveform, error) {
	p := e.params
	p.Amplitude = amplitude
	return e.OnParameterChange(p)
}

func (e *Explorer) SetFrequency(frequency float64) (*Waveform, error) {
	p := e.params
	p.Frequency = frequency
	return e.OnParameterChange(p)
}

// Current re-synthesizes the current pair.
func (e *Explorer) Current() (*Waveform, error) {
	return Synthesize(e.params)
}
