package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/processing"
	"github.com/RMahshie/synapse/internal/render"
	"github.com/RMahshie/synapse/internal/repository"
	"github.com/RMahshie/synapse/internal/storage"
	"github.com/RMahshie/synapse/pkg/models"
)

// SimulationHandler handles persisted simulation runs
type SimulationHandler struct {
	repo          repository.SimulationRepository
	store         storage.ObjectStore
	processingSvc processing.SimulationService
	// background runs the pipeline; tests swap it for a synchronous call
	background func(fn func())
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(repo repository.SimulationRepository, store storage.ObjectStore, processingSvc processing.SimulationService) *SimulationHandler {
	return &SimulationHandler{
		repo:          repo,
		store:         store,
		processingSvc: processingSvc,
		background:    func(fn func()) { go fn() },
	}
}

// CreateSimulation records a new run and starts processing it in the background
func (h *SimulationHandler) CreateSimulation(ctx context.Context, req *models.CreateSimulationRequest) (*models.CreateSimulationResponse, error) {
	p := epsp.Parameters{Amplitude: req.Body.Amplitude, Frequency: req.Body.Frequency}
	if err := p.Validate(); err != nil {
		return nil, parameterError(err)
	}

	simulationID := uuid.New()
	now := time.Now()
	sim := &models.Simulation{
		ID:        simulationID.String(),
		SessionID: req.Body.SessionID,
		Amplitude: p.Amplitude,
		Frequency: p.Frequency,
		Status:    models.StatusPending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(ctx, sim); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create simulation", err)
	}
	log.Info().
		Str("simulationID", sim.ID).
		Str("sessionID", sim.SessionID).
		Float64("amplitude", sim.Amplitude).
		Float64("frequency", sim.Frequency).
		Msg("Simulation created")

	// Start processing in background (don't wait for completion)
	h.background(func() {
		bg := context.Background()
		if err := h.processingSvc.ProcessSimulation(bg, simulationID); err != nil {
			log.Error().Err(err).Str("simulationID", sim.ID).Msg("Simulation processing failed")
			if err := h.repo.UpdateError(bg, simulationID, fmt.Sprintf("Processing failed: %v", err)); err != nil {
				log.Error().Err(err).Str("simulationID", sim.ID).Msg("Failed to record processing failure")
			}
		}
	})

	return &models.CreateSimulationResponse{
		Body: models.CreateSimulationResponseBody{
			ID:     sim.ID,
			Status: sim.Status,
		},
	}, nil
}

// GetSimulationStatus returns the current status of a simulation
func (h *SimulationHandler) GetSimulationStatus(ctx context.Context, req *models.GetSimulationStatusRequest) (*models.GetSimulationStatusResponse, error) {
	simulationID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid simulation ID", err)
	}

	sim, err := h.repo.GetByID(ctx, simulationID)
	if err != nil {
		return nil, lookupError(err)
	}

	message := generateStatusMessage(sim.Status, sim.Progress)
	if sim.Status == models.StatusFailed && sim.ErrorMsg != nil {
		message = *sim.ErrorMsg
	}

	var resultsID *string
	if sim.Status == models.StatusCompleted {
		results, err := h.repo.GetResults(ctx, simulationID)
		if err == nil && results != nil {
			resultsID = &results.ID
		}
	}

	return &models.GetSimulationStatusResponse{
		Body: models.GetSimulationStatusResponseBody{
			ID:        sim.ID,
			Status:    sim.Status,
			Progress:  sim.Progress,
			Message:   message,
			ResultsID: resultsID,
		},
	}, nil
}

// GetSimulationResults returns the summary and artifact links of a completed simulation
func (h *SimulationHandler) GetSimulationResults(ctx context.Context, req *models.GetSimulationResultsRequest) (*models.GetSimulationResultsResponse, error) {
	sim, results, err := h.completedResults(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	chartURL, err := h.store.GenerateDownloadURL(ctx, results.ChartS3Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to link chart", err)
	}
	csvURL, err := h.store.GenerateDownloadURL(ctx, results.CSVS3Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to link samples", err)
	}

	return &models.GetSimulationResultsResponse{
		Body: models.GetSimulationResultsResponseBody{
			ID:        results.ID,
			Amplitude: sim.Amplitude,
			Frequency: sim.Frequency,
			Summary:   results.Summary,
			Onsets:    results.Onsets,
			ChartURL:  chartURL,
			CSVURL:    csvURL,
			CreatedAt: results.CreatedAt,
		},
	}, nil
}

// GetSimulationChart streams the stored chart page of a completed simulation
// for clients that cannot reach the object store directly
func (h *SimulationHandler) GetSimulationChart(ctx context.Context, req *models.GetSimulationChartRequest) (*models.ChartResponse, error) {
	_, results, err := h.completedResults(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	page, err := h.store.DownloadFile(ctx, results.ChartS3Key)
	if err != nil {
		log.Error().Err(err).Str("key", results.ChartS3Key).Msg("Chart download failed")
		return nil, huma.Error500InternalServerError("Failed to read chart", err)
	}

	return &models.ChartResponse{
		ContentType: render.HTML.ContentType(),
		Body:        page,
	}, nil
}

// completedResults loads a simulation and its results, failing unless the run has completed
func (h *SimulationHandler) completedResults(ctx context.Context, id string) (*models.Simulation, *models.SimulationResults, error) {
	simulationID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, huma.Error400BadRequest("Invalid simulation ID", err)
	}

	sim, err := h.repo.GetByID(ctx, simulationID)
	if err != nil {
		return nil, nil, lookupError(err)
	}
	if sim.Status != models.StatusCompleted {
		return nil, nil, huma.Error409Conflict("Simulation not yet completed",
			fmt.Errorf("simulation status is %s", sim.Status))
	}

	results, err := h.repo.GetResults(ctx, simulationID)
	if err != nil {
		return nil, nil, huma.Error500InternalServerError("Failed to get results", err)
	}
	return sim, results, nil
}

// ListSessionSimulations returns the simulations of a session, newest first
func (h *SimulationHandler) ListSessionSimulations(ctx context.Context, req *models.ListSessionSimulationsRequest) (*models.ListSessionSimulationsResponse, error) {
	sims, err := h.repo.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list simulations", err)
	}
	if sims == nil {
		sims = []*models.Simulation{}
	}

	resp := &models.ListSessionSimulationsResponse{}
	resp.Body.Simulations = sims
	return resp, nil
}

func lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return huma.Error404NotFound("Simulation not found", err)
	}
	return huma.Error500InternalServerError("Failed to load simulation", err)
}

// generateStatusMessage creates a human-readable status message
func generateStatusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Simulation queued for processing..."
	case models.StatusProcessing:
		if progress < 30 {
			return "Synthesizing waveform..."
		} else if progress < 60 {
			return "Rendering chart..."
		} else if progress < 80 {
			return "Storing artifacts..."
		} else {
			return "Finalizing results..."
		}
	case models.StatusCompleted:
		return "Simulation complete!"
	case models.StatusFailed:
		return "Simulation failed. Please try again."
	default:
		return "Unknown status"
	}
}
