// Package sweep implements concurrent host discovery: subnet enumeration,
// per-host liveness probing, and a bounded fan-out coordinator that always
// yields exactly one Device per candidate address.
package sweep

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

// HostProber determines liveness for a single address.
type HostProber interface {
	Probe(ctx context.Context, address string) models.Device
}

// Coordinator fans a HostProber out over all candidate addresses of a
// subnet, bounded by a worker limit and a launch rate, and aggregates the
// results in ascending address order.
type Coordinator struct {
	cfg     Config
	prober  HostProber
	arp     ARPTableReader
	bus     plugin.EventBus
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoordinator creates a discovery coordinator.
func NewCoordinator(cfg Config, prober HostProber, arp ARPTableReader, bus plugin.EventBus, logger *zap.Logger) *Coordinator {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	limit := rate.Inf
	if cfg.ProbeRate > 0 {
		limit = rate.Limit(cfg.ProbeRate)
	}
	burst := cfg.Concurrency
	return &Coordinator{
		cfg:     cfg,
		prober:  prober,
		arp:     arp,
		bus:     bus,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Discover probes every usable address in the subnet and returns one Device
// per candidate, sorted ascending by address. Once the global deadline
// elapses no new probes launch and the remainder is reported Offline; the
// result is never a short list. The only caller-visible error is
// ErrInvalidSubnet.
func (c *Coordinator) Discover(ctx context.Context, subnet string) (*models.SweepReport, error) {
	if subnet == "" {
		subnet = c.cfg.Subnet
	}
	hosts, total, err := HostAddresses(subnet, c.cfg.MaxHosts)
	if err != nil {
		return nil, err
	}
	capped := len(hosts) < total
	if capped {
		c.logger.Warn("candidate list capped",
			zap.Int("candidates", total),
			zap.Int("max_hosts", c.cfg.MaxHosts),
		)
	}

	runID := uuid.NewString()
	start := time.Now()

	c.logger.Info("sweep started",
		zap.String("run_id", runID),
		zap.String("subnet", subnet),
		zap.Int("candidates", len(hosts)),
		zap.Int("concurrency", c.cfg.Concurrency),
	)
	c.publish(ctx, TopicRunStarted, &RunStartedEvent{
		RunID: runID, Subnet: subnet, Candidates: len(hosts),
	})

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ScanTimeout)
	defer cancel()

	// Read the ARP cache upfront so aggregation can fill hardware addresses.
	arpTable := map[string]string{}
	if c.arp != nil {
		arpTable = c.arp.ReadTable(ctx)
	}

	// Each candidate owns one slot, so output order is the enumerator's
	// ascending order regardless of completion order.
	devices := make([]models.Device, len(hosts))
	sem := make(chan struct{}, c.cfg.Concurrency)
	var wg sync.WaitGroup
	var probed, online atomic.Int64

launch:
	for i := range hosts {
		// Pace launches; Wait fails once the run deadline is exceeded.
		if err := c.limiter.Wait(ctx); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			break launch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			hostsProbedTotal.Inc()
			dev := c.prober.Probe(ctx, hosts[i])
			devices[i] = dev

			n := probed.Add(1)
			if dev.Status == models.DeviceStatusOnline {
				online.Add(1)
				hostsOnlineTotal.WithLabelValues(string(dev.Method)).Inc()
				c.publish(ctx, TopicDeviceDiscovered, &DeviceDiscoveredEvent{RunID: runID, Device: &dev})
			}
			c.publish(ctx, TopicRunProgress, &RunProgressEvent{
				RunID:      runID,
				Probed:     int(n),
				Online:     int(online.Load()),
				Candidates: len(hosts),
			})
		}(i)
	}
	wg.Wait()

	// Candidates whose probe never launched report Offline; every requested
	// address yields exactly one record.
	var onlineCount int
	for i := range devices {
		if devices[i].Address == "" {
			devices[i] = models.Device{Address: hosts[i], Status: models.DeviceStatusOffline}
		}
		if mac, ok := arpTable[devices[i].Address]; ok {
			devices[i].MACAddress = mac
		}
		if devices[i].Status == models.DeviceStatusOnline {
			onlineCount++
		}
	}

	elapsed := time.Since(start)
	sweepDuration.Observe(elapsed.Seconds())

	report := &models.SweepReport{
		RunID:           runID,
		Subnet:          subnet,
		Devices:         devices,
		OnlineCount:     onlineCount,
		OfflineCount:    len(devices) - onlineCount,
		TotalCandidates: total,
		Capped:          capped,
		DurationMS:      elapsed.Milliseconds(),
	}

	c.publish(ctx, TopicRunCompleted, report)
	c.logger.Info("sweep completed",
		zap.String("run_id", runID),
		zap.Int("total", len(devices)),
		zap.Int("online", onlineCount),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (c *Coordinator) publish(ctx context.Context, topic string, payload any) {
	if c.bus == nil {
		return
	}
	c.bus.PublishAsync(ctx, plugin.Event{
		Topic:     topic,
		Source:    "sweep",
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
