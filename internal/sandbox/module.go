package sandbox

import (
	"context"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// Module implements the command sandbox plugin.
type Module struct {
	logger  *zap.Logger
	cfg     Config
	sandbox *Sandbox
	served  atomic.Int64
}

// New creates a new sandbox plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "sandbox",
		Version:     "0.1.0",
		Description: "Allowlisted diagnostic command execution",
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return err
		}
	}

	m.sandbox = NewSandbox(m.cfg, m.logger)
	m.logger.Info("sandbox module initialized",
		zap.Duration("exec_timeout", m.cfg.ExecTimeout))
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("sandbox module stopped")
	return nil
}

// Run validates and executes one command request.
func (m *Module) Run(ctx context.Context, raw string) *models.CommandOutcome {
	m.served.Add(1)
	return m.sandbox.Run(ctx, raw)
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	return plugin.HealthStatus{
		Status: "ok",
		Details: map[string]string{
			"requests_served": strconv.FormatInt(m.served.Load(), 10),
		},
	}
}
