package sweep

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ARPTableReader supplies best-effort IP-to-MAC mappings for sweep results.
type ARPTableReader interface {
	ReadTable(ctx context.Context) map[string]string
}

// ARPReader reads the system ARP cache. The cache is consulted once per
// sweep and used to fill hardware addresses opportunistically; a missing or
// unreadable table degrades to empty MACs, never to an error.
type ARPReader struct {
	logger *zap.Logger
}

// NewARPReader creates a new ARP table reader.
func NewARPReader(logger *zap.Logger) *ARPReader {
	return &ARPReader{logger: logger}
}

// ReadTable returns a map of IP address to MAC address from the system ARP
// cache. Returns an empty map (not an error) if the table is unavailable.
func (r *ARPReader) ReadTable(ctx context.Context) map[string]string {
	switch runtime.GOOS {
	case "linux":
		out, err := os.ReadFile("/proc/net/arp")
		if err != nil {
			r.logger.Debug("failed to read /proc/net/arp", zap.Error(err))
			return map[string]string{}
		}
		return ParseARPTable(string(out), "linux")
	case "windows", "darwin":
		out, err := exec.CommandContext(ctx, "arp", "-a").Output()
		if err != nil {
			r.logger.Debug("failed to run arp -a", zap.Error(err))
			return map[string]string{}
		}
		return ParseARPTable(string(out), runtime.GOOS)
	default:
		r.logger.Warn("ARP table reading not supported on this platform",
			zap.String("os", runtime.GOOS))
		return map[string]string{}
	}
}

// ParseARPTable parses platform-specific ARP output. Exported for testing.
func ParseARPTable(output, platform string) map[string]string {
	switch platform {
	case "linux":
		return parseLinuxARP(output)
	case "windows":
		return parseWindowsARP(output)
	case "darwin":
		return parseDarwinARP(output)
	default:
		return map[string]string{}
	}
}

// parseLinuxARP parses /proc/net/arp.
// Format: IP address HW type Flags HW address Mask Device
func parseLinuxARP(output string) map[string]string {
	table := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Scan() // Skip header.
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		mac := strings.ToUpper(fields[3])
		if mac == "00:00:00:00:00:00" {
			continue
		}
		table[fields[0]] = mac
	}
	return table
}

// parseWindowsARP parses `arp -a` output on Windows.
// Lines look like: 192.168.1.1 aa-bb-cc-dd-ee-ff dynamic
func parseWindowsARP(output string) map[string]string {
	table := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) < 3 {
			continue
		}
		ip := fields[0]
		if ip == "" || ip[0] < '0' || ip[0] > '9' {
			continue
		}
		mac := strings.ToUpper(strings.ReplaceAll(fields[1], "-", ":"))
		if mac == "FF:FF:FF:FF:FF:FF" || mac == "00:00:00:00:00:00" {
			continue
		}
		table[ip] = mac
	}
	return table
}

// parseDarwinARP parses `arp -a` output on macOS.
// Format: hostname (ip) at mac on iface [...]
func parseDarwinARP(output string) map[string]string {
	table := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		parenStart := strings.Index(line, "(")
		parenEnd := strings.Index(line, ")")
		if parenStart < 0 || parenEnd < 0 || parenEnd <= parenStart {
			continue
		}
		ip := line[parenStart+1 : parenEnd]

		atIdx := strings.Index(line[parenEnd:], " at ")
		if atIdx < 0 {
			continue
		}
		fields := strings.Fields(line[parenEnd+atIdx+4:])
		if len(fields) == 0 {
			continue
		}
		mac := strings.ToUpper(fields[0])
		if mac == "(INCOMPLETE)" || mac == "FF:FF:FF:FF:FF:FF" {
			continue
		}
		table[ip] = mac
	}
	return table
}
