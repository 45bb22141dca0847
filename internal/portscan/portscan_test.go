package portscan

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

// fakeProber classifies ports from a fixed map, defaulting to Closed.
type fakeProber struct {
	states map[int]models.PortState
	delay  time.Duration
}

func (f *fakeProber) Probe(ctx context.Context, _ string, port int) models.PortResult {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.PortResult{Port: port, State: models.PortFiltered}
		}
	}
	state, ok := f.states[port]
	if !ok {
		state = models.PortClosed
	}
	return models.PortResult{Port: port, State: state}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ScanTimeout = 5 * time.Second
	cfg.Concurrency = 8
	return cfg
}

func TestScanOneResultPerPortSortedAscending(t *testing.T) {
	prober := &fakeProber{states: map[int]models.PortState{
		22: models.PortOpen,
		80: models.PortOpen,
	}}
	c := NewCoordinator(testConfig(), prober, nil, zap.NewNop())

	report, err := c.Scan(context.Background(), "192.168.1.10", []int{443, 22, 80, 8080})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []int{22, 80, 443, 8080}
	if len(report.Results) != len(want) {
		t.Fatalf("results = %d, want %d", len(report.Results), len(want))
	}
	for i, r := range report.Results {
		if r.Port != want[i] {
			t.Fatalf("index %d: port %d, want %d", i, r.Port, want[i])
		}
	}
	if report.OpenCount != 2 {
		t.Errorf("open count = %d, want 2", report.OpenCount)
	}
}

func TestScanDefaultPortSet(t *testing.T) {
	c := NewCoordinator(testConfig(), &fakeProber{}, nil, zap.NewNop())

	report, err := c.Scan(context.Background(), "192.168.1.10", nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Results) != len(DefaultPorts) {
		t.Fatalf("results = %d, want the %d default ports", len(report.Results), len(DefaultPorts))
	}
}

func TestScanDeduplicatesAndDropsInvalidPorts(t *testing.T) {
	c := NewCoordinator(testConfig(), &fakeProber{}, nil, zap.NewNop())

	report, err := c.Scan(context.Background(), "192.168.1.10", []int{80, 80, 0, 70000, 443, -1})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []int{80, 443}
	if len(report.Results) != len(want) {
		t.Fatalf("results = %d, want %d", len(report.Results), len(want))
	}
	for i, r := range report.Results {
		if r.Port != want[i] {
			t.Fatalf("index %d: port %d, want %d", i, r.Port, want[i])
		}
	}
}

func TestScanUnreachableTarget(t *testing.T) {
	c := NewCoordinator(testConfig(), &fakeProber{}, nil, zap.NewNop())

	for _, address := range []string{"", "such a host does not exist.invalid"} {
		_, err := c.Scan(context.Background(), address, []int{80})
		if !errors.Is(err, ErrUnreachableTarget) {
			t.Errorf("Scan(%q) err = %v, want ErrUnreachableTarget", address, err)
		}
	}
}

func TestScanDeadlineDegradesToFiltered(t *testing.T) {
	cfg := testConfig()
	cfg.ScanTimeout = 30 * time.Millisecond
	cfg.Concurrency = 1
	prober := &fakeProber{delay: 50 * time.Millisecond, states: map[int]models.PortState{}}
	c := NewCoordinator(cfg, prober, nil, zap.NewNop())

	ports := []int{80, 81, 82, 83, 84, 85}
	report, err := c.Scan(context.Background(), "192.168.1.10", ports)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(report.Results) != len(ports) {
		t.Fatalf("results = %d, want %d; a deadline must not shorten the list", len(report.Results), len(ports))
	}
	for _, r := range report.Results {
		if r.State != models.PortFiltered {
			t.Fatalf("port %d state = %s, want filtered after deadline", r.Port, r.State)
		}
	}
}

func TestScanZeroConcurrencyStillProbes(t *testing.T) {
	cfg := testConfig()
	cfg.Concurrency = 0
	prober := &fakeProber{states: map[int]models.PortState{80: models.PortOpen}}
	c := NewCoordinator(cfg, prober, nil, zap.NewNop())

	report, err := c.Scan(context.Background(), "192.168.1.10", []int{80, 443})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.OpenCount != 1 {
		t.Fatalf("open = %d, want 1; zero concurrency must clamp, not stall until deadline", report.OpenCount)
	}
	for _, r := range report.Results {
		if r.State == models.PortFiltered {
			t.Fatalf("port %d filtered; every probe should have run", r.Port)
		}
	}
}

func TestScanLiteralIPNeedsNoResolution(t *testing.T) {
	c := NewCoordinator(testConfig(), &fakeProber{}, nil, zap.NewNop())

	if _, err := c.Scan(context.Background(), "10.255.0.1", []int{80}); err != nil {
		t.Fatalf("literal IP should pass target check, got %v", err)
	}
}

func TestModuleHealth(t *testing.T) {
	m := New()
	if err := m.Init(context.Background(), plugin.Dependencies{Logger: zap.NewNop()}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	h := m.Health(context.Background())
	if h.Status != "ok" {
		t.Fatalf("status = %q, want ok", h.Status)
	}
	if h.Details["active_runs"] != "0" {
		t.Errorf("active_runs = %q, want 0 with no scan in flight", h.Details["active_runs"])
	}
}
