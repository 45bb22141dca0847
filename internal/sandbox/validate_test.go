package sandbox

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidate_RejectsDisallowedCommands(t *testing.T) {
	cases := []string{
		"rm -rf /",
		"cat /etc/passwd",
		"curl http://example.com",
		"bash",
		"sudo reboot",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			argv, reason, help := validate(raw, false)
			if argv != nil {
				t.Fatalf("validate(%q) produced argv %v, want rejection", raw, argv)
			}
			if help {
				t.Fatalf("validate(%q) flagged help", raw)
			}
			if !strings.Contains(reason, "not allowed") {
				t.Errorf("reason = %q, want mention of not allowed", reason)
			}
		})
	}
}

func TestValidate_RejectsShellMetacharacters(t *testing.T) {
	cases := []string{
		"ping 127.0.0.1; rm -rf /",
		"ping 127.0.0.1 && reboot",
		"ping `hostname`",
		"ping $(hostname)",
		"netstat | grep ssh",
		"nslookup example.com > /tmp/out",
		"ping 'localhost'",
		"ping \"localhost\"",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			argv, reason, _ := validate(raw, false)
			if argv != nil {
				t.Fatalf("validate(%q) produced argv %v, want rejection", raw, argv)
			}
			if !strings.Contains(reason, "metacharacters") {
				t.Errorf("reason = %q, want metacharacter rejection", reason)
			}
		})
	}
}

func TestValidate_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		argv, reason, _ := validate(raw, false)
		if argv != nil {
			t.Fatalf("validate(%q) produced argv %v", raw, argv)
		}
		if !strings.Contains(reason, "empty") {
			t.Errorf("reason = %q, want empty-command rejection", reason)
		}
	}
}

func TestValidate_Help(t *testing.T) {
	argv, reason, help := validate("help", false)
	if argv != nil || !help {
		t.Fatalf("validate(help) = argv %v, help %v", argv, help)
	}
	if !strings.Contains(reason, "ping <host>") || !strings.Contains(reason, "traceroute") {
		t.Errorf("help text missing commands: %q", reason)
	}

	_, winText, _ := validate("HELP", true)
	if !strings.Contains(winText, "tracert") || !strings.Contains(winText, "ipconfig") {
		t.Errorf("windows help text = %q", winText)
	}
}

func TestBuildPing(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		windows bool
		want    []string
	}{
		{"default count", "ping 192.168.1.1", false,
			[]string{"ping", "-c", "4", "-W", "2", "192.168.1.1"}},
		{"explicit count", "ping -c 2 example.com", false,
			[]string{"ping", "-c", "2", "-W", "2", "example.com"}},
		{"count clamped high", "ping -c 100 host", false,
			[]string{"ping", "-c", "10", "-W", "2", "host"}},
		{"count clamped low", "ping -c 0 host", false,
			[]string{"ping", "-c", "1", "-W", "2", "host"}},
		{"windows flags", "ping -n 3 host", true,
			[]string{"ping", "-n", "3", "-w", "1000", "host"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, reason, _ := validate(tt.raw, tt.windows)
			if reason != "" {
				t.Fatalf("validate(%q) rejected: %s", tt.raw, reason)
			}
			if !reflect.DeepEqual(argv, tt.want) {
				t.Errorf("argv = %v, want %v", argv, tt.want)
			}
		})
	}

	argv, reason, _ := validate("ping", false)
	if argv != nil || !strings.Contains(reason, "usage") {
		t.Errorf("ping without host: argv %v, reason %q", argv, reason)
	}
}

func TestBuildTraceroute(t *testing.T) {
	argv, reason, _ := validate("traceroute 10.0.0.1", false)
	if reason != "" {
		t.Fatalf("rejected: %s", reason)
	}
	want := []string{"traceroute", "-n", "10.0.0.1"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}

	argv, _, _ = validate("tracert 10.0.0.1", true)
	want = []string{"tracert", "-d", "10.0.0.1"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("windows argv = %v, want %v", argv, want)
	}

	if argv, _, _ := validate("traceroute", false); argv != nil {
		t.Errorf("traceroute without host produced argv %v", argv)
	}
}

func TestBuildNetstat_FiltersFlags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"netstat", []string{"netstat", "-an"}},
		{"netstat -r", []string{"netstat", "-r"}},
		{"netstat -a -n", []string{"netstat", "-a", "-n"}},
		// unknown flags are dropped, not executed
		{"netstat -p tcp", []string{"netstat", "-an"}},
		{"netstat --wide", []string{"netstat", "-an"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			argv, reason, _ := validate(tt.raw, false)
			if reason != "" {
				t.Fatalf("rejected: %s", reason)
			}
			if !reflect.DeepEqual(argv, tt.want) {
				t.Errorf("argv = %v, want %v", argv, tt.want)
			}
		})
	}
}

func TestBuildIfconfig_DropsArguments(t *testing.T) {
	argv, _, _ := validate("ifconfig eth0 down", false)
	want := []string{"ifconfig"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}

	argv, _, _ = validate("ipconfig /release", true)
	want = []string{"ipconfig"}
	if !reflect.DeepEqual(argv, want) {
		t.Errorf("argv = %v, want %v", argv, want)
	}
}
