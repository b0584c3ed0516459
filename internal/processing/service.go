package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/render"
	"github.com/RMahshie/synapse/internal/repository"
	"github.com/RMahshie/synapse/internal/storage"
	"github.com/RMahshie/synapse/pkg/models"
)

type SimulationService interface {
	ProcessSimulation(ctx context.Context, simulationID uuid.UUID) error
}

type simulationService struct {
	store      storage.ObjectStore
	repository repository.SimulationRepository
	now        func() time.Time
}

func NewSimulationService(store storage.ObjectStore, repo repository.SimulationRepository) SimulationService {
	return &simulationService{
		store:      store,
		repository: repo,
		now:        time.Now,
	}
}

// ChartKey and CSVKey name the artifacts of a simulation in object storage.
func ChartKey(id uuid.UUID) string { return artifactKey(id, "epsp", render.HTML) }
func CSVKey(id uuid.UUID) string   { return artifactKey(id, "samples", render.CSV) }

func artifactKey(id uuid.UUID, name string, f render.Format) string {
	return fmt.Sprintf("simulations/%s/%s%s", id, name, f.Extension())
}

// ProcessSimulation runs a pending simulation to completion. Failures the
// run itself is responsible for (bad parameters, storage) are recorded on the
// simulation and reported as a nil error; repository failures are returned.
func (s *simulationService) ProcessSimulation(ctx context.Context, simulationID uuid.UUID) error {
	logger := log.With().Str("simulationID", simulationID.String()).Logger()

	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 10); err != nil {
		return err
	}

	// Step 2: Get simulation details
	sim, err := s.repository.GetByID(ctx, simulationID)
	if err != nil {
		return err
	}

	// Step 3: Synthesize
	wf, err := epsp.Synthesize(sim.Parameters())
	if err != nil {
		logger.Warn().Err(err).Msg("Simulation parameters rejected")
		return s.fail(ctx, simulationID, fmt.Sprintf("Invalid parameters: %v", err))
	}
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 30); err != nil {
		return err
	}

	// Step 4: Render artifacts
	chart, err := render.Bytes(render.HTML, wf)
	if err != nil {
		return s.fail(ctx, simulationID, fmt.Sprintf("Chart rendering failed: %v", err))
	}
	samples, err := render.Bytes(render.CSV, wf)
	if err != nil {
		return s.fail(ctx, simulationID, fmt.Sprintf("CSV export failed: %v", err))
	}
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 60); err != nil {
		return err
	}

	// Step 5: Upload
	chartKey, csvKey := ChartKey(simulationID), CSVKey(simulationID)
	if err := s.store.UploadFile(ctx, chartKey, render.HTML.ContentType(), chart); err != nil {
		logger.Error().Err(err).Str("key", chartKey).Msg("Chart upload failed")
		return s.fail(ctx, simulationID, "Failed to store chart")
	}
	if err := s.store.UploadFile(ctx, csvKey, render.CSV.ContentType(), samples); err != nil {
		logger.Error().Err(err).Str("key", csvKey).Msg("CSV upload failed")
		// a failed run keeps no partial artifacts
		if err := s.store.DeleteFile(ctx, chartKey); err != nil {
			logger.Warn().Err(err).Str("key", chartKey).Msg("Failed to remove orphaned chart")
		}
		return s.fail(ctx, simulationID, "Failed to store samples")
	}
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 80); err != nil {
		return err
	}

	// Step 6: Store results
	results := &models.SimulationResults{
		ID:           uuid.New().String(),
		SimulationID: sim.ID,
		Summary:      wf.Summary(),
		Onsets:       wf.Onsets(),
		ChartS3Key:   chartKey,
		CSVS3Key:     csvKey,
		CreatedAt:    s.now(),
	}
	if err := s.repository.StoreResults(ctx, results); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			logger.Warn().Msg("Results already stored")
		} else {
			return err
		}
	}
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusProcessing, 90); err != nil {
		return err
	}

	// Step 7: Mark complete
	if err := s.repository.UpdateStatus(ctx, simulationID, models.StatusCompleted, 100); err != nil {
		return err
	}

	logger.Info().
		Int("events", results.Summary.EventCount).
		Float64("peak", results.Summary.PeakPotential).
		Msg("Simulation completed")
	return nil
}

func (s *simulationService) fail(ctx context.Context, id uuid.UUID, msg string) error {
	if err := s.repository.UpdateError(ctx, id, msg); err != nil {
		return fmt.Errorf("failed to record simulation failure: %w", err)
	}
	// status is updated to failed
	return nil
}
