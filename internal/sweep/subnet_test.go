package sweep

import (
	"errors"
	"testing"
)

func TestHostAddressesCounts(t *testing.T) {
	tests := []struct {
		name  string
		cidr  string
		count int
		first string
		last  string
	}{
		{"slash30", "192.168.1.0/30", 2, "192.168.1.1", "192.168.1.2"},
		{"slash29", "10.0.0.0/29", 6, "10.0.0.1", "10.0.0.6"},
		{"slash24", "192.168.1.0/24", 254, "192.168.1.1", "192.168.1.254"},
		{"slash23_crosses_octet", "172.16.0.0/23", 510, "172.16.0.1", "172.16.1.254"},
		{"nonzero_host_bits_normalized", "192.168.1.77/24", 254, "192.168.1.1", "192.168.1.254"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosts, total, err := HostAddresses(tt.cidr, 0)
			if err != nil {
				t.Fatalf("HostAddresses(%q): %v", tt.cidr, err)
			}
			if len(hosts) != tt.count {
				t.Fatalf("len = %d, want %d", len(hosts), tt.count)
			}
			if total != tt.count {
				t.Errorf("total = %d, want %d", total, tt.count)
			}
			if hosts[0] != tt.first {
				t.Errorf("first = %q, want %q", hosts[0], tt.first)
			}
			if hosts[len(hosts)-1] != tt.last {
				t.Errorf("last = %q, want %q", hosts[len(hosts)-1], tt.last)
			}
		})
	}
}

func TestHostAddressesCapStopsGeneration(t *testing.T) {
	hosts, total, err := HostAddresses("10.0.0.0/24", 10)
	if err != nil {
		t.Fatalf("HostAddresses: %v", err)
	}
	if len(hosts) != 10 {
		t.Fatalf("len = %d, want the cap of 10", len(hosts))
	}
	if total != 254 {
		t.Errorf("total = %d, want the 254 the prefix implies", total)
	}
	if hosts[9] != "10.0.0.10" {
		t.Errorf("last = %q, want 10.0.0.10 (generation stays ascending)", hosts[9])
	}

	// A cap wider than the subnet changes nothing.
	hosts, total, err = HostAddresses("10.0.0.0/29", 100)
	if err != nil {
		t.Fatalf("HostAddresses: %v", err)
	}
	if len(hosts) != 6 || total != 6 {
		t.Errorf("len = %d, total = %d, want 6/6", len(hosts), total)
	}
}

func TestHostAddressesNoDuplicates(t *testing.T) {
	hosts, _, err := HostAddresses("10.1.0.0/22", 0)
	if err != nil {
		t.Fatalf("HostAddresses: %v", err)
	}
	seen := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if seen[h] {
			t.Fatalf("duplicate address %q", h)
		}
		seen[h] = true
	}
}

func TestHostAddressesInvalid(t *testing.T) {
	tests := []struct {
		name string
		cidr string
	}{
		{"empty", ""},
		{"garbage", "not-a-subnet"},
		{"missing_prefix", "192.168.1.0"},
		{"prefix_zero", "0.0.0.0/0"},
		{"prefix_31", "192.168.1.0/31"},
		{"prefix_32", "192.168.1.1/32"},
		{"octet_out_of_range", "300.1.1.0/24"},
		{"ipv6", "2001:db8::/64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := HostAddresses(tt.cidr, 0)
			if !errors.Is(err, ErrInvalidSubnet) {
				t.Fatalf("HostAddresses(%q) err = %v, want ErrInvalidSubnet", tt.cidr, err)
			}
		})
	}
}

func TestHostAddressesDeterministic(t *testing.T) {
	a, _, err := HostAddresses("192.168.50.0/28", 0)
	if err != nil {
		t.Fatalf("HostAddresses: %v", err)
	}
	b, _, _ := HostAddresses("192.168.50.0/28", 0)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}
