package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/render"
	"github.com/RMahshie/synapse/pkg/models"
)

// WaveformHandler serves synthesized waveforms directly, without persisting them
type WaveformHandler struct {
	defaults epsp.Parameters
}

// NewWaveformHandler creates a new waveform handler. defaults fill in query
// parameters a request leaves out.
func NewWaveformHandler(defaults epsp.Parameters) *WaveformHandler {
	return &WaveformHandler{defaults: defaults}
}

// Synthesize returns the samples, onsets and summary for the requested parameters
func (h *WaveformHandler) Synthesize(ctx context.Context, req *models.SynthesizeRequest) (*models.SynthesizeResponse, error) {
	p := epsp.Parameters{Amplitude: req.Body.Amplitude, Frequency: req.Body.Frequency}

	wf, err := epsp.Synthesize(p)
	if err != nil {
		return nil, parameterError(err)
	}
	schematic, err := epsp.NewSchematic(p)
	if err != nil {
		return nil, parameterError(err)
	}

	log.Debug().
		Float64("amplitude", p.Amplitude).
		Float64("frequency", p.Frequency).
		Int("stride", req.Body.Stride).
		Msg("Synthesized waveform")

	return &models.SynthesizeResponse{
		Body: models.SynthesizeResponseBody{
			Amplitude: p.Amplitude,
			Frequency: p.Frequency,
			Onsets:    wf.Onsets(),
			Summary:   wf.Summary(),
			Samples:   wf.Decimate(req.Body.Stride).Samples(),
			Schematic: schematic,
		},
	}, nil
}

// Chart renders the interactive chart page for the requested parameters
func (h *WaveformHandler) Chart(ctx context.Context, req *models.WaveformQuery) (*models.ChartResponse, error) {
	wf, err := epsp.Synthesize(req.Parameters(h.defaults))
	if err != nil {
		return nil, parameterError(err)
	}

	page, err := render.Bytes(render.HTML, wf)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to render chart", err)
	}

	return &models.ChartResponse{
		ContentType: render.HTML.ContentType(),
		Body:        page,
	}, nil
}

// Schematic returns the synapse diagram values for the requested parameters
func (h *WaveformHandler) Schematic(ctx context.Context, req *models.WaveformQuery) (*models.SchematicResponse, error) {
	s, err := epsp.NewSchematic(req.Parameters(h.defaults))
	if err != nil {
		return nil, parameterError(err)
	}
	return &models.SchematicResponse{Body: s}, nil
}

// parameterError maps synthesizer validation failures to 400s
func parameterError(err error) error {
	var pe *epsp.ParameterError
	if errors.As(err, &pe) {
		return huma.Error400BadRequest(pe.Error(), err)
	}
	if errors.Is(err, epsp.ErrInvalidParameter) {
		return huma.Error400BadRequest("Invalid parameters", err)
	}
	return huma.Error500InternalServerError("Synthesis failed", err)
}
