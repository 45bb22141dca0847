package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/probeworks/lanscope/pkg/models"
	"github.com/probeworks/lanscope/pkg/plugin"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		os.Exit(1)
	}
}

func renderSweep(report *models.SweepReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Address", "Status", "Method", "RTT (ms)", "Hostname", "MAC")

	for i := range report.Devices {
		d := &report.Devices[i]
		rtt := "-"
		if d.Status == models.DeviceStatusOnline {
			rtt = strconv.FormatFloat(d.RTTMillis, 'f', 1, 64)
		}
		_ = table.Append([]string{
			d.Address,
			string(d.Status),
			string(d.Method),
			rtt,
			orDash(d.Hostname),
			orDash(d.MACAddress),
		})
	}
	_ = table.Render()

	fmt.Printf("\n%s: %d online, %d offline (%.1fs)\n",
		report.Subnet, report.OnlineCount, report.OfflineCount,
		float64(report.DurationMS)/1000)
	if report.Capped {
		fmt.Printf("note: swept %d of %d candidate hosts (max_hosts cap)\n",
			len(report.Devices), report.TotalCandidates)
	}
}

func renderPorts(report *models.PortScanReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Port", "State")

	for _, r := range report.Results {
		_ = table.Append([]string{strconv.Itoa(r.Port), string(r.State)})
	}
	_ = table.Render()

	fmt.Printf("\n%s: %d of %d ports open (%.1fs)\n",
		report.Address, report.OpenCount, len(report.Results),
		float64(report.DurationMS)/1000)
}

func renderStatus(health map[string]plugin.HealthStatus) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Module", "Status", "Details")

	names := make([]string, 0, len(health))
	for name := range health {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		status := health[name]
		details := make([]string, 0, len(status.Details))
		for k := range status.Details {
			details = append(details, k)
		}
		sort.Strings(details)
		for i, k := range details {
			details[i] = k + "=" + status.Details[k]
		}
		_ = table.Append([]string{name, status.Status, strings.Join(details, " ")})
	}
	_ = table.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parsePorts parses a comma-separated port list. An empty input returns
// nil, which selects the module's default port set.
func parsePorts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ports := make([]int, 0, len(parts))
	for _, part := range parts {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("port %q is not a number", part)
		}
		ports = append(ports, p)
	}
	return ports, nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
