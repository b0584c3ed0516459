package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/RMahshie/synapse/internal/repository"
	"github.com/RMahshie/synapse/pkg/models"
)

// unique_violation
const uniqueViolation = "23505"

// PostgresSimulationRepository implements SimulationRepository for PostgreSQL
type PostgresSimulationRepository struct {
	db *sql.DB
}

// NewPostgresSimulationRepository creates a new PostgreSQL simulation repository
func NewPostgresSimulationRepository(db *sql.DB) repository.SimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

// Create inserts a new simulation record
func (r *PostgresSimulationRepository) Create(ctx context.Context, sim *models.Simulation) error {
	query := `
		INSERT INTO simulations (id, session_id, amplitude, frequency, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		sim.ID,
		sim.SessionID,
		sim.Amplitude,
		sim.Frequency,
		sim.Status,
		sim.Progress,
		sim.CreatedAt,
		sim.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}
	return nil
}

const simulationColumns = `id, session_id, amplitude, frequency, status, progress, chart_s3_key, csv_s3_key, error_message, created_at, updated_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (*models.Simulation, error) {
	var sim models.Simulation
	var chartKey, csvKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&sim.ID,
		&sim.SessionID,
		&sim.Amplitude,
		&sim.Frequency,
		&sim.Status,
		&sim.Progress,
		&chartKey,
		&csvKey,
		&errorMsg,
		&sim.CreatedAt,
		&sim.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if chartKey.Valid {
		sim.ChartS3Key = &chartKey.String
	}
	if csvKey.Valid {
		sim.CSVS3Key = &csvKey.String
	}
	if errorMsg.Valid {
		sim.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		sim.CompletedAt = &completedAt.Time
	}

	return &sim, nil
}

// GetByID retrieves a simulation by ID
func (r *PostgresSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations WHERE id = $1`

	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("simulation %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation: %w", err)
	}
	return sim, nil
}

// GetBySessionID retrieves simulations by session ID, newest first
func (r *PostgresSimulationRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations WHERE session_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	sims := make([]*models.Simulation, 0)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		sims = append(sims, sim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}

	return sims, nil
}

// UpdateStatus updates the status and progress of a simulation
func (r *PostgresSimulationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE simulations
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, status, progress, id)
	if err != nil {
		return fmt.Errorf("failed to update simulation status: %w", err)
	}
	return expectOneRow(res, id)
}

// UpdateError marks a simulation failed with a message
func (r *PostgresSimulationRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE simulations
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, errorMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update simulation error: %w", err)
	}
	return expectOneRow(res, id)
}

// StoreResults stores the results of a run and records the artifact keys on
// the simulation itself
func (r *PostgresSimulationRepository) StoreResults(ctx context.Context, results *models.SimulationResults) error {
	onsets, err := json.Marshal(results.Onsets)
	if err != nil {
		return fmt.Errorf("failed to marshal onsets: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO simulation_results (id, simulation_id, event_count, peak_potential, peak_time, mean_potential, final_potential, onsets, chart_s3_key, csv_s3_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.ExecContext(ctx, query,
		results.ID,
		results.SimulationID,
		results.Summary.EventCount,
		results.Summary.PeakPotential,
		results.Summary.PeakTime,
		results.Summary.MeanPotential,
		results.Summary.FinalPotential,
		string(onsets),
		results.ChartS3Key,
		results.CSVS3Key,
		results.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("results for simulation %s: %w", results.SimulationID, repository.ErrConflict)
		}
		return fmt.Errorf("failed to insert results: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE simulations
		SET chart_s3_key = $1, csv_s3_key = $2, updated_at = NOW()
		WHERE id = $3`,
		results.ChartS3Key, results.CSVS3Key, results.SimulationID)
	if err != nil {
		return fmt.Errorf("failed to record artifact keys: %w", err)
	}

	return tx.Commit()
}

// GetResults retrieves the results of a simulation
func (r *PostgresSimulationRepository) GetResults(ctx context.Context, simulationID uuid.UUID) (*models.SimulationResults, error) {
	query := `
		SELECT id, simulation_id, event_count, peak_potential, peak_time, mean_potential, final_potential, onsets, chart_s3_key, csv_s3_key, created_at
		FROM simulation_results
		WHERE simulation_id = $1`

	var results models.SimulationResults
	var onsets []byte

	err := r.db.QueryRowContext(ctx, query, simulationID).Scan(
		&results.ID,
		&results.SimulationID,
		&results.Summary.EventCount,
		&results.Summary.PeakPotential,
		&results.Summary.PeakTime,
		&results.Summary.MeanPotential,
		&results.Summary.FinalPotential,
		&onsets,
		&results.ChartS3Key,
		&results.CSVS3Key,
		&results.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("results for simulation %s: %w", simulationID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	if err := json.Unmarshal(onsets, &results.Onsets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal onsets: %w", err)
	}

	return &results, nil
}

func expectOneRow(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("simulation %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
