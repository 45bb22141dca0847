// Package portscan implements concurrent TCP port scanning of a single
// target with the three-state open/closed/filtered verdict model.
package portscan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

// ErrUnreachableTarget reports a malformed or unresolvable scan target. It
// is the only error Scan surfaces to callers; per-port ambiguity is always
// resolved to a Filtered verdict instead.
var ErrUnreachableTarget = errors.New("unreachable target")

// resolveTimeout bounds the hostname resolution check for non-IP targets.
const resolveTimeout = 2 * time.Second

// PortProber classifies a single (host, port) pair.
type PortProber interface {
	Probe(ctx context.Context, address string, port int) models.PortResult
}

// Coordinator fans a PortProber out over a port set with a bounded worker
// pool and aggregates one result per requested port, sorted ascending.
type Coordinator struct {
	cfg    Config
	prober PortProber
	bus    plugin.EventBus
	logger *zap.Logger
}

// NewCoordinator creates a port scan coordinator.
func NewCoordinator(cfg Config, prober PortProber, bus plugin.EventBus, logger *zap.Logger) *Coordinator {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Coordinator{cfg: cfg, prober: prober, bus: bus, logger: logger}
}

// Scan probes every requested port on the target and returns exactly one
// PortResult per port, sorted ascending. A nil or empty port set scans
// DefaultPorts. Ports the run deadline prevented from probing are reported
// Filtered; the result is never a short list.
func (c *Coordinator) Scan(ctx context.Context, address string, ports []int) (*models.PortScanReport, error) {
	if err := checkTarget(ctx, address); err != nil {
		return nil, err
	}
	ports = normalizePorts(ports, c.logger)

	runID := uuid.NewString()
	start := time.Now()

	c.logger.Info("port scan started",
		zap.String("run_id", runID),
		zap.String("address", address),
		zap.Int("ports", len(ports)),
	)
	c.publish(ctx, TopicRunStarted, &RunStartedEvent{
		RunID: runID, Address: address, Ports: len(ports),
	})

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ScanTimeout)
	defer cancel()

	// One slot per requested port keeps output order deterministic.
	results := make([]models.PortResult, len(ports))
	sem := make(chan struct{}, c.cfg.Concurrency)
	var wg sync.WaitGroup

launch:
	for i := range ports {
		select {
		case <-ctx.Done():
			break launch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = c.prober.Probe(ctx, address, ports[i])
		}(i)
	}
	wg.Wait()

	// Ports never probed before the deadline degrade to Filtered rather
	// than being dropped from the result set.
	var openCount int
	for i := range results {
		if results[i].Port == 0 {
			results[i] = models.PortResult{Port: ports[i], State: models.PortFiltered}
		}
		portProbesTotal.WithLabelValues(string(results[i].State)).Inc()
		if results[i].State == models.PortOpen {
			openCount++
		}
	}

	elapsed := time.Since(start)
	scanDuration.Observe(elapsed.Seconds())

	report := &models.PortScanReport{
		RunID:      runID,
		Address:    address,
		Results:    results,
		OpenCount:  openCount,
		DurationMS: elapsed.Milliseconds(),
	}

	c.publish(ctx, TopicRunCompleted, report)
	c.logger.Info("port scan completed",
		zap.String("run_id", runID),
		zap.String("address", address),
		zap.Int("open", openCount),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}

// checkTarget verifies the target is a literal IP or a resolvable hostname.
func checkTarget(ctx context.Context, address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty address", ErrUnreachableTarget)
	}
	if net.ParseIP(address) != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	if _, err := net.DefaultResolver.LookupHost(ctx, address); err != nil {
		return fmt.Errorf("%w: %q", ErrUnreachableTarget, address)
	}
	return nil
}

// normalizePorts applies the default set, removes duplicates and values
// outside 1-65535, and sorts ascending.
func normalizePorts(ports []int, logger *zap.Logger) []int {
	if len(ports) == 0 {
		out := make([]int, len(DefaultPorts))
		copy(out, DefaultPorts)
		return out
	}

	seen := make(map[int]bool, len(ports))
	out := make([]int, 0, len(ports))
	var dropped int
	for _, p := range ports {
		if p < 1 || p > 65535 {
			dropped++
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if dropped > 0 {
		logger.Warn("ignoring out-of-range ports", zap.Int("dropped", dropped))
	}
	sort.Ints(out)
	return out
}

func (c *Coordinator) publish(ctx context.Context, topic string, payload any) {
	if c.bus == nil {
		return
	}
	c.bus.PublishAsync(ctx, plugin.Event{
		Topic:     topic,
		Source:    "portscan",
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
