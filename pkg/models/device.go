package models

// DeviceStatus represents the liveness verdict for a probed host.
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
)

// ProbeMethod indicates which probe strategy established liveness.
type ProbeMethod string

const (
	ProbeICMP        ProbeMethod = "icmp"
	ProbeTCPFallback ProbeMethod = "tcp"
)

// Device is one host record produced by a discovery sweep. Records are
// created fresh for every run and never mutated after aggregation.
type Device struct {
	Address     string       `json:"address" example:"192.168.1.42"`
	Hostname    string       `json:"hostname,omitempty" example:"web-server-01"`
	MACAddress  string       `json:"mac_address,omitempty" example:"00:1A:2B:3C:4D:5E"`
	Status      DeviceStatus `json:"status" example:"online"`
	Method      ProbeMethod  `json:"method,omitempty" example:"icmp"`
	RTTMillis   float64      `json:"rtt_ms,omitempty" example:"1.8"`
	ResponseTTL int          `json:"response_ttl,omitempty" example:"64"`
}

// SweepReport is the complete result of one discovery run. When the
// configured host cap truncated the candidate list, Capped is set and
// TotalCandidates still reflects the count the prefix implies, so callers
// can tell a short list from a small subnet.
type SweepReport struct {
	RunID           string   `json:"run_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Subnet          string   `json:"subnet" example:"192.168.1.0/24"`
	Devices         []Device `json:"devices"`
	OnlineCount     int      `json:"online_count"`
	OfflineCount    int      `json:"offline_count"`
	TotalCandidates int      `json:"total_candidates"`
	Capped          bool     `json:"capped,omitempty"`
	DurationMS      int64    `json:"duration_ms"`
}
