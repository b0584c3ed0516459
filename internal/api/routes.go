package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/synapse/internal/api/handlers"
	"github.com/RMahshie/synapse/internal/epsp"
	"github.com/RMahshie/synapse/internal/processing"
	"github.com/RMahshie/synapse/internal/repository"
	"github.com/RMahshie/synapse/internal/storage"
)

// RegisterRoutes sets up all API routes. defaults are the synthesis
// parameters used when a waveform query leaves them out.
func RegisterRoutes(api huma.API, defaults epsp.Parameters, simulationRepo repository.SimulationRepository, store storage.ObjectStore, processingSvc processing.SimulationService) {
	// Initialize handlers
	waveformHandler := handlers.NewWaveformHandler(defaults)
	simulationHandler := handlers.NewSimulationHandler(simulationRepo, store, processingSvc)

	// Register waveform routes
	huma.Register(api, huma.Operation{
		OperationID: "synthesizeWaveform",
		Method:      http.MethodPost,
		Path:        "/api/waveforms",
		Summary:     "Synthesize a waveform",
		Description: "Synthesizes the EPSP train for an amplitude and firing rate and returns its samples",
		Tags:        []string{"Waveforms"},
	}, waveformHandler.Synthesize)

	huma.Register(api, huma.Operation{
		OperationID: "getWaveformChart",
		Method:      http.MethodGet,
		Path:        "/api/waveforms/chart",
		Summary:     "Render a waveform chart",
		Description: "Returns an interactive HTML page with the EPSP trace and the synapse diagram",
		Tags:        []string{"Waveforms"},
	}, waveformHandler.Chart)

	huma.Register(api, huma.Operation{
		OperationID: "getWaveformSchematic",
		Method:      http.MethodGet,
		Path:        "/api/waveforms/schematic",
		Summary:     "Get synapse diagram values",
		Description: "Returns the conductance and drawing widths of the synapse diagram",
		Tags:        []string{"Waveforms"},
	}, waveformHandler.Schematic)

	// Register simulation routes
	huma.Register(api, huma.Operation{
		OperationID:   "createSimulation",
		Method:        http.MethodPost,
		Path:          "/api/simulations",
		Summary:       "Create a new simulation",
		Description:   "Records a simulation run and starts rendering and storing its artifacts",
		Tags:          []string{"Simulations"},
		DefaultStatus: http.StatusAccepted,
	}, simulationHandler.CreateSimulation)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationStatus",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/status",
		Summary:     "Get simulation status",
		Description: "Returns the current status and progress of a simulation",
		Tags:        []string{"Simulations"},
	}, simulationHandler.GetSimulationStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationResults",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/results",
		Summary:     "Get simulation results",
		Description: "Returns the waveform summary and download links of a completed simulation",
		Tags:        []string{"Simulations"},
	}, simulationHandler.GetSimulationResults)

	huma.Register(api, huma.Operation{
		OperationID: "getSimulationChart",
		Method:      http.MethodGet,
		Path:        "/api/simulations/{id}/chart",
		Summary:     "Get stored simulation chart",
		Description: "Returns the chart page stored for a completed simulation",
		Tags:        []string{"Simulations"},
	}, simulationHandler.GetSimulationChart)

	huma.Register(api, huma.Operation{
		OperationID: "listSessionSimulations",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{session_id}/simulations",
		Summary:     "List session simulations",
		Description: "Returns the simulations created by a session, newest first",
		Tags:        []string{"Simulations"},
	}, simulationHandler.ListSessionSimulations)
}
