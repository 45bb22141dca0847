package models

// PortState classifies the outcome of a single TCP connect probe.
// Filtered means the probe got no response at all; it is a distinct
// verdict from Closed (an active refusal) and is never folded into it.
type PortState string

const (
	PortOpen     PortState = "open"
	PortClosed   PortState = "closed"
	PortFiltered PortState = "filtered"
)

// PortResult is the verdict for one (target, port) pair within a scan run.
// Immutable once produced.
type PortResult struct {
	Port  int       `json:"port" example:"443"`
	State PortState `json:"state" example:"open"`
}

// PortScanReport is the complete result of one port scan run against a
// single target. Results contains exactly one entry per requested port,
// sorted ascending by port number.
type PortScanReport struct {
	RunID      string       `json:"run_id"`
	Address    string       `json:"address" example:"192.168.1.42"`
	Results    []PortResult `json:"results"`
	OpenCount  int          `json:"open_count"`
	DurationMS int64        `json:"duration_ms"`
}

// OpenPorts returns just the port numbers found open, in ascending order.
func (r *PortScanReport) OpenPorts() []int {
	ports := make([]int, 0, r.OpenCount)
	for _, pr := range r.Results {
		if pr.State == PortOpen {
			ports = append(ports, pr.Port)
		}
	}
	return ports
}
