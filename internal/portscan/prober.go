package portscan

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/probeworks/lanscope/pkg/models"
)

// Prober attempts a single TCP connection to one (host, port) pair and
// classifies the result. One attempt per port per run, no retries.
type Prober struct {
	timeout time.Duration
}

// NewProber creates a port prober with the given per-probe timeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &Prober{timeout: timeout}
}

// Probe dials the port once within the timeout. A completed connection is
// Open, an active refusal is Closed, and silence is Filtered. Filtered is
// an ambiguous network condition, not a scan failure, and is reported as a
// verdict rather than an error.
func (p *Prober) Probe(ctx context.Context, address string, port int) models.PortResult {
	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err == nil {
		conn.Close()
		return models.PortResult{Port: port, State: models.PortOpen}
	}
	return models.PortResult{Port: port, State: classifyDialError(err)}
}

// classifyDialError maps a failed dial to Closed or Filtered. Anything that
// is not an explicit refusal (timeouts, unreachable routes, cancelled
// contexts) counts as Filtered: the network gave no definitive answer.
func classifyDialError(err error) models.PortState {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return models.PortClosed
	}
	return models.PortFiltered
}
