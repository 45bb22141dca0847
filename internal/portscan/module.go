package portscan

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// Module implements the portscan plugin.
type Module struct {
	logger      *zap.Logger
	cfg         Config
	bus         plugin.EventBus
	coordinator *Coordinator
	activeRuns  sync.Map // run handle -> context.CancelFunc
}

// New creates a new portscan plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "portscan",
		Version:     "0.1.0",
		Description: "Concurrent TCP port scanning of a single target",
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.bus = deps.Bus

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return err
		}
	}

	m.coordinator = NewCoordinator(m.cfg, NewProber(m.cfg.ProbeTimeout), m.bus, m.logger)

	m.logger.Info("portscan module initialized")
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.activeRuns.Range(func(_, value any) bool {
		if cancel, ok := value.(context.CancelFunc); ok {
			cancel()
		}
		return true
	})
	m.logger.Info("portscan module stopped")
	return nil
}

// Scan runs one port scan. A nil port set scans DefaultPorts.
func (m *Module) Scan(ctx context.Context, address string, ports []int) (*models.PortScanReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handle := uuid.NewString()
	m.activeRuns.Store(handle, cancel)
	defer m.activeRuns.Delete(handle)

	return m.coordinator.Scan(ctx, address, ports)
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	var active int
	m.activeRuns.Range(func(_, _ any) bool {
		active++
		return true
	})
	return plugin.HealthStatus{
		Status: "ok",
		Details: map[string]string{
			"active_runs": strconv.Itoa(active),
		},
	}
}
