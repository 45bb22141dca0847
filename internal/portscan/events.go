package portscan

// Event topics published by the portscan module.
const (
	TopicRunStarted   = "portscan.run.started"
	TopicRunCompleted = "portscan.run.completed"
)

// RunStartedEvent is the payload for TopicRunStarted.
type RunStartedEvent struct {
	RunID   string `json:"run_id"`
	Address string `json:"address"`
	Ports   int    `json:"ports"`
}
