package sweep

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

// Module implements the sweep discovery plugin.
type Module struct {
	logger      *zap.Logger
	cfg         Config
	bus         plugin.EventBus
	coordinator *Coordinator
	activeRuns  sync.Map // run handle -> context.CancelFunc
}

// New creates a new sweep plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "sweep",
		Version:     "0.1.0",
		Description: "Concurrent host discovery over the local subnet",
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

	prober := NewProber(m.cfg, m.logger.Named("probe"))
	var arp ARPTableReader
	if m.cfg.ARPEnabled {
		arp = NewARPReader(m.logger.Named("arp"))
	}
	m.coordinator = NewCoordinator(m.cfg, prober, arp, m.bus, m.logger)

	m.logger.Info("sweep module initialized")
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
	m.logger.Info("sweep module stopped")
	return nil
}

// Discover runs one discovery sweep. An empty subnet uses the configured
// default. The run is cancellable through module shutdown.
func (m *Module) Discover(ctx context.Context, subnet string) (*models.SweepReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handle := uuid.NewString()
	m.activeRuns.Store(handle, cancel)
	defer m.activeRuns.Delete(handle)

	return m.coordinator.Discover(ctx, subnet)
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
			"arp_enabled": strconv.FormatBool(m.cfg.ARPEnabled),
		},
	}
}
