package sweep

import (
	"errors"
	"fmt"
	"net"
)

// ErrInvalidSubnet reports a malformed discovery input: a base address that
// does not parse or a prefix length outside [1,30]. It is the only error
// Discover surfaces to callers.
var ErrInvalidSubnet = errors.New("invalid subnet")

// HostAddresses expands an IPv4 CIDR into its usable host addresses, in
// ascending order, excluding the network and broadcast addresses. total is
// the full usable host count the prefix implies; when max > 0 at most max
// addresses are generated, so a wide prefix never materializes millions of
// strings just to be capped afterwards. Pure function: no I/O, no side
// effects.
func HostAddresses(cidr string, max int) (hosts []string, total int, err error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidSubnet, cidr)
	}

	base := ipNet.IP.To4()
	if base == nil {
		return nil, 0, fmt.Errorf("%w: %q is not an IPv4 subnet", ErrInvalidSubnet, cidr)
	}

	ones, bits := ipNet.Mask.Size()
	if bits != 32 || ones < 1 || ones > 30 {
		return nil, 0, fmt.Errorf("%w: prefix /%d outside supported range /1-/30", ErrInvalidSubnet, ones)
	}

	total = 1<<(bits-ones) - 2
	count := total
	if max > 0 && count > max {
		count = max
	}
	hosts = make([]string, 0, count)
	for i := 1; i <= count; i++ {
		hosts = append(hosts, incrementIP(base, i).String())
	}
	return hosts, total, nil
}

// incrementIP adds offset to a 4-byte base IP.
func incrementIP(base net.IP, offset int) net.IP {
	ip := make(net.IP, 4)
	copy(ip, base.To4())

	carry := offset
	for i := 3; i >= 0 && carry > 0; i-- {
		val := int(ip[i]) + carry
		ip[i] = byte(val % 256)
		carry = val / 256
	}
	return ip
}
