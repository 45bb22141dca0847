package portscan

import "time"

// DefaultPorts is the port set scanned when the caller specifies none:
// common service ports on a typical LAN.
var DefaultPorts = []int{21, 22, 23, 25, 53, 80, 110, 139, 443, 993, 995, 3389}

// Config holds the portscan module configuration.
type Config struct {
	ScanTimeout  time.Duration `mapstructure:"scan_timeout"`  // global deadline for one scan run
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"` // per-port connect budget
	Concurrency  int           `mapstructure:"concurrency"`   // worker bound for the fan-out
}

// DefaultConfig returns the default configuration for the portscan module.
func DefaultConfig() Config {
	return Config{
		ScanTimeout:  time.Minute,
		ProbeTimeout: 500 * time.Millisecond,
		Concurrency:  50,
	}
}
