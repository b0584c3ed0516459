package models

import (
	"time"

	"github.com/RMahshie/synapse/internal/epsp"
)

// Simulation statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Simulation represents one persisted synthesis run
type Simulation struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	Amplitude   float64    `json:"amplitude"`
	Frequency   float64    `json:"frequency"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	ChartS3Key  *string    `json:"chart_s3_key,omitempty"`
	CSVS3Key    *string    `json:"csv_s3_key,omitempty"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Parameters returns the synthesizer parameters of the run
func (s *Simulation) Parameters() epsp.Parameters {
	return epsp.Parameters{Amplitude: s.Amplitude, Frequency: s.Frequency}
}

// SimulationResults represents the stored outcome of a completed run
type SimulationResults struct {
	ID           string       `json:"id"`
	SimulationID string       `json:"simulation_id"`
	Summary      epsp.Summary `json:"summary"`
	Onsets       []float64    `json:"onsets"`
	ChartS3Key   string       `json:"chart_s3_key"`
	CSVS3Key     string       `json:"csv_s3_key"`
	CreatedAt    time.Time    `json:"created_at"`
}
