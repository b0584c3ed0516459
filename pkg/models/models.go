package models

import (
	"time"

	"github.com/RMahshie/synapse/internal/epsp"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// SynthesizeRequest asks for a waveform to be synthesized and returned inline
type SynthesizeRequest struct {
	Body struct {
		Amplitude float64 `json:"amplitude" exclusiveMinimum:"0" maximum:"2" required:"true" doc:"EPSP amplitude in mV"`
		Frequency float64 `json:"frequency" minimum:"1" maximum:"20" required:"true" doc:"Presynaptic firing rate in Hz"`
		Stride    int     `json:"stride,omitempty" minimum:"0" maximum:"1000" doc:"Return every n-th sample only"`
	}
}

// SynthesizeResponseBody is the body of the synthesize response
type SynthesizeResponseBody struct {
	Amplitude float64        `json:"amplitude" doc:"EPSP amplitude in mV"`
	Frequency float64        `json:"frequency" doc:"Presynaptic firing rate in Hz"`
	Onsets    []float64      `json:"onsets" doc:"Event onset times in ms"`
	Summary   epsp.Summary   `json:"summary" doc:"Waveform summary"`
	Samples   []epsp.Sample  `json:"samples" doc:"Waveform samples"`
	Schematic epsp.Schematic `json:"schematic" doc:"Synapse diagram values"`
}

// SynthesizeResponse carries the synthesized waveform
type SynthesizeResponse struct {
	Body SynthesizeResponseBody
}

// WaveformQuery selects a waveform through query parameters. A parameter
// left out (zero) takes the server's configured default.
type WaveformQuery struct {
	Amplitude float64 `query:"amplitude" exclusiveMinimum:"0" maximum:"2" doc:"EPSP amplitude in mV, server default when omitted"`
	Frequency float64 `query:"frequency" minimum:"1" maximum:"20" doc:"Presynaptic firing rate in Hz, server default when omitted"`
}

// Parameters converts the query to synthesizer parameters, filling omitted
// values from defaults
func (q WaveformQuery) Parameters(defaults epsp.Parameters) epsp.Parameters {
	p := epsp.Parameters{Amplitude: q.Amplitude, Frequency: q.Frequency}
	if p.Amplitude == 0 {
		p.Amplitude = defaults.Amplitude
	}
	if p.Frequency == 0 {
		p.Frequency = defaults.Frequency
	}
	return p
}

// ChartResponse is a rendered page returned as-is
type ChartResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// SchematicResponse carries the synapse diagram values
type SchematicResponse struct {
	Body epsp.Schematic
}

// CreateSimulationRequest represents a request to create a persisted simulation run
type CreateSimulationRequest struct {
	Body struct {
		SessionID string  `json:"session_id" minLength:"10" maxLength:"50" required:"true" doc:"Client session identifier"`
		Amplitude float64 `json:"amplitude" exclusiveMinimum:"0" maximum:"2" required:"true" doc:"EPSP amplitude in mV"`
		Frequency float64 `json:"frequency" minimum:"1" maximum:"20" required:"true" doc:"Presynaptic firing rate in Hz"`
	}
}

// CreateSimulationResponseBody is the body of the create simulation response
type CreateSimulationResponseBody struct {
	ID     string `json:"id" doc:"Simulation unique identifier"`
	Status string `json:"status" enum:"pending,processing,completed,failed" doc:"Simulation status"`
}

// CreateSimulationResponse represents the response from creating a simulation
type CreateSimulationResponse struct {
	Body CreateSimulationResponseBody
}

// GetSimulationStatusRequest represents a request to get simulation status
type GetSimulationStatusRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// GetSimulationStatusResponseBody is the body of the status response
type GetSimulationStatusResponseBody struct {
	ID        string  `json:"id" doc:"Simulation ID"`
	Status    string  `json:"status" enum:"pending,processing,completed,failed" doc:"Simulation status"`
	Progress  int     `json:"progress" minimum:"0" maximum:"100" doc:"Simulation progress percentage"`
	Message   string  `json:"message,omitempty" doc:"Human-readable status message"`
	ResultsID *string `json:"results_id,omitempty" doc:"Results ID when the simulation completes"`
}

// GetSimulationStatusResponse represents the current status of a simulation
type GetSimulationStatusResponse struct {
	Body GetSimulationStatusResponseBody
}

// GetSimulationResultsRequest represents a request to get simulation results
type GetSimulationResultsRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// GetSimulationResultsResponseBody is the body of the results response
type GetSimulationResultsResponseBody struct {
	ID        string       `json:"id" doc:"Results ID"`
	Amplitude float64      `json:"amplitude" doc:"EPSP amplitude in mV"`
	Frequency float64      `json:"frequency" doc:"Presynaptic firing rate in Hz"`
	Summary   epsp.Summary `json:"summary" doc:"Waveform summary"`
	Onsets    []float64    `json:"onsets" doc:"Event onset times in ms"`
	ChartURL  string       `json:"chart_url" doc:"Pre-signed URL of the rendered chart page"`
	CSVURL    string       `json:"csv_url" doc:"Pre-signed URL of the sample CSV"`
	CreatedAt time.Time    `json:"created_at" doc:"Results creation timestamp"`
}

// GetSimulationResultsResponse represents the complete simulation results
type GetSimulationResultsResponse struct {
	Body GetSimulationResultsResponseBody
}

// GetSimulationChartRequest selects the stored chart page of a simulation
type GetSimulationChartRequest struct {
	ID string `path:"id" doc:"Simulation ID"`
}

// ListSessionSimulationsRequest lists the simulations of one session
type ListSessionSimulationsRequest struct {
	SessionID string `path:"session_id" doc:"Client session identifier"`
}

// ListSessionSimulationsResponse holds a session's simulations, newest first
type ListSessionSimulationsResponse struct {
	Body struct {
		Simulations []*Simulation `json:"simulations" doc:"Simulations of the session"`
	}
}
