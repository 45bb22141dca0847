package sandbox

import "time"

// Config holds the sandbox module settings.
type Config struct {
	// ExecTimeout bounds the wall-clock runtime of a single command.
	ExecTimeout time.Duration `mapstructure:"exec_timeout"`
	// MaxOutputBytes caps the captured stdout+stderr per command.
	MaxOutputBytes int `mapstructure:"max_output_bytes"`
}

// DefaultConfig returns the sandbox defaults.
func DefaultConfig() Config {
	return Config{
		ExecTimeout:    30 * time.Second,
		MaxOutputBytes: 64 * 1024,
	}
}
