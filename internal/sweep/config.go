package sweep

import "time"

// Config holds the sweep module configuration.
type Config struct {
	Subnet        string        `mapstructure:"subnet"`         // default CIDR when the caller passes none
	ScanTimeout   time.Duration `mapstructure:"scan_timeout"`   // global deadline for one discovery run
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`  // per-host budget (ICMP plus fallback)
	PingCount     int           `mapstructure:"ping_count"`     // echo requests per host
	Concurrency   int           `mapstructure:"concurrency"`    // worker bound for the fan-out
	ProbeRate     int           `mapstructure:"probe_rate"`     // probe launches per second
	MaxHosts      int           `mapstructure:"max_hosts"`      // cap on candidates per run, 0 = no cap
	ARPEnabled    bool          `mapstructure:"arp_enabled"`    // read the system ARP cache for MACs
	FallbackPorts []int         `mapstructure:"fallback_ports"` // TCP liveness fallback targets
}

// DefaultConfig returns the default configuration for the sweep module.
func DefaultConfig() Config {
	return Config{
		Subnet:        "192.168.1.0/24",
		ScanTimeout:   2 * time.Minute,
		ProbeTimeout:  2 * time.Second,
		PingCount:     1,
		Concurrency:   64,
		ProbeRate:     256,
		MaxHosts:      1024,
		ARPEnabled:    true,
		FallbackPorts: []int{80, 443, 22, 445},
	}
}
