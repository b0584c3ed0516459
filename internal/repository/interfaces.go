package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/synapse/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no row matches the requested ID
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when a row that must be unique already exists
	ErrConflict = errors.New("repository: already exists")
)

// SimulationRepository defines the interface for simulation data operations
type SimulationRepository interface {
	Create(ctx context.Context, sim *models.Simulation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Simulation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreResults(ctx context.Context, results *models.SimulationResults) error
	GetResults(ctx context.Context, simulationID uuid.UUID) (*models.SimulationResults, error)
}
