package sweep

import "github.com/probeworks/lanscope/pkg/models"

// Event topics published by the sweep module.
const (
	TopicRunStarted       = "sweep.run.started"
	TopicRunProgress      = "sweep.run.progress"
	TopicRunCompleted     = "sweep.run.completed"
	TopicDeviceDiscovered = "sweep.device.discovered"
)

// RunStartedEvent is the payload for TopicRunStarted.
type RunStartedEvent struct {
	RunID      string `json:"run_id"`
	Subnet     string `json:"subnet"`
	Candidates int    `json:"candidates"`
}

// RunProgressEvent reports incremental progress during a sweep.
type RunProgressEvent struct {
	RunID      string `json:"run_id"`
	Probed     int    `json:"probed"`
	Online     int    `json:"online"`
	Candidates int    `json:"candidates"`
}

// DeviceDiscoveredEvent wraps an online device with its run ID.
type DeviceDiscoveredEvent struct {
	RunID  string         `json:"run_id"`
	Device *models.Device `json:"device"`
}
