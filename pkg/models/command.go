package models

// CommandState tracks a sandbox request through its lifecycle. Rejected and
// Completed are terminal.
type CommandState string

const (
	CommandReceived  CommandState = "received"
	CommandValidated CommandState = "validated"
	CommandExecuting CommandState = "executing"
	CommandCompleted CommandState = "completed"
	CommandRejected  CommandState = "rejected"
)

// CommandOutcome is the result of one sandbox request. Success is true only
// when the request passed allowlist validation and the child process exited
// with status zero. A rejected request never reaches process execution.
type CommandOutcome struct {
	Success  bool         `json:"success"`
	Output   string       `json:"output"`
	State    CommandState `json:"state" example:"completed"`
	ExitCode *int         `json:"exit_code,omitempty"`
}
