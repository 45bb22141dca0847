package sweep

import (
	"context"
	"errors"
	"net"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"

	"github.com/probeworks/lanscope/pkg/models"
)

// dnsTimeout is the maximum time to wait for a reverse DNS lookup.
const dnsTimeout = 500 * time.Millisecond

// probePhase models the two-tier liveness strategy as an explicit state
// machine: try ICMP first, escalate to TCP dialing when ICMP yields nothing.
type probePhase int

const (
	phaseReachability probePhase = iota
	phaseEscalate
	phaseDone
)

// Prober determines liveness for a single address within a bounded window.
type Prober struct {
	probeTimeout  time.Duration
	pingCount     int
	fallbackPorts []int
	logger        *zap.Logger
}

// NewProber creates a host prober from the module configuration.
func NewProber(cfg Config, logger *zap.Logger) *Prober {
	return &Prober{
		probeTimeout:  cfg.ProbeTimeout,
		pingCount:     cfg.PingCount,
		fallbackPorts: cfg.FallbackPorts,
		logger:        logger,
	}
}

// Probe returns a Device for the given address: Online if either the ICMP
// echo or the TCP fallback succeeds within the probe timeout, else Offline.
// Hostname resolution is opportunistic and never blocks the verdict beyond
// its own short budget. Exactly one probe window per host, no retries.
func (p *Prober) Probe(ctx context.Context, address string) models.Device {
	dev := models.Device{Address: address, Status: models.DeviceStatusOffline}

	ctx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	for phase := phaseReachability; phase != phaseDone; {
		switch phase {
		case phaseReachability:
			alive, rtt, ttl := p.pingHost(ctx, address)
			if alive {
				dev.Status = models.DeviceStatusOnline
				dev.Method = models.ProbeICMP
				dev.RTTMillis = float64(rtt.Microseconds()) / 1000.0
				dev.ResponseTTL = ttl
				phase = phaseDone
				break
			}
			// No echo reply, or raw sockets unavailable. Either way the
			// verdict escalates to the TCP strategy.
			phase = phaseEscalate
		case phaseEscalate:
			if p.tcpFallback(ctx, address) {
				dev.Status = models.DeviceStatusOnline
				dev.Method = models.ProbeTCPFallback
			}
			phase = phaseDone
		}
	}

	if dev.Status == models.DeviceStatusOnline {
		dev.Hostname = resolveHostname(address)
	}
	return dev
}

// pingHost sends ICMP echo requests to a single host.
func (p *Prober) pingHost(ctx context.Context, address string) (alive bool, rtt time.Duration, ttl int) {
	pinger, err := probing.NewPinger(address)
	if err != nil {
		p.logger.Debug("failed to create pinger", zap.String("address", address), zap.Error(err))
		return false, 0, 0
	}

	pinger.Count = p.pingCount
	pinger.Timeout = p.probeTimeout
	pinger.SetPrivileged(runtime.GOOS == "windows")

	var receivedTTL int
	pinger.OnRecv = func(pkt *probing.Packet) {
		if receivedTTL == 0 {
			receivedTTL = pkt.TTL
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if runErr := pinger.Run(); runErr != nil {
			p.logger.Debug("ping failed", zap.String("address", address), zap.Error(runErr))
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		pinger.Stop()
		return false, 0, 0
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv > 0 {
		return true, stats.AvgRtt, receivedTTL
	}
	return false, 0, 0
}

// tcpFallback dials a small set of well-known ports. A completed connection
// or an active refusal both prove a host is present; only silence does not.
func (p *Prober) tcpFallback(ctx context.Context, address string) bool {
	if len(p.fallbackPorts) == 0 {
		return false
	}

	verdicts := make(chan bool, len(p.fallbackPorts))
	var d net.Dialer
	for _, port := range p.fallbackPorts {
		go func(port int) {
			conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
			if err == nil {
				conn.Close()
				verdicts <- true
				return
			}
			verdicts <- isConnRefused(err)
		}(port)
	}

	for range p.fallbackPorts {
		if <-verdicts {
			return true
		}
	}
	return false
}

// isConnRefused reports whether a dial error was an active RST-level
// refusal, as opposed to a timeout or unreachable network.
func isConnRefused(err error) bool {
	// errors.Is unwraps through net.OpError and os.SyscallError.
	return errors.Is(err, syscall.ECONNREFUSED)
}

// resolveHostname performs a reverse DNS lookup for the given address.
// Returns an empty string if the lookup fails or times out.
func resolveHostname(address string) string {
	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(ctx, address)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}
