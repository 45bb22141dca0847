package sweep

import "testing"

func TestParseARPTableLinux(t *testing.T) {
	output := `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         a4:2b:b0:c1:d2:e3     *        eth0
192.168.1.50     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.1.22     0x1         0x2         b8:27:eb:11:22:33     *        eth0
`
	table := ParseARPTable(output, "linux")

	if len(table) != 2 {
		t.Fatalf("len = %d, want 2 (incomplete entry skipped)", len(table))
	}
	if got := table["192.168.1.1"]; got != "A4:2B:B0:C1:D2:E3" {
		t.Errorf("gateway MAC = %q", got)
	}
	if _, ok := table["192.168.1.50"]; ok {
		t.Error("incomplete entry should be skipped")
	}
}

func TestParseARPTableWindows(t *testing.T) {
	output := `
Interface: 192.168.1.10 --- 0xb
  Internet Address      Physical Address      Type
  192.168.1.1           a4-2b-b0-c1-d2-e3     dynamic
  192.168.1.255         ff-ff-ff-ff-ff-ff     static
  224.0.0.22            01-00-5e-00-00-16     static
`
	table := ParseARPTable(output, "windows")

	if got := table["192.168.1.1"]; got != "A4:2B:B0:C1:D2:E3" {
		t.Errorf("gateway MAC = %q", got)
	}
	if _, ok := table["192.168.1.255"]; ok {
		t.Error("broadcast entry should be skipped")
	}
}

func TestParseARPTableDarwin(t *testing.T) {
	output := `router.lan (192.168.1.1) at a4:2b:b0:c1:d2:e3 on en0 ifscope [ethernet]
? (192.168.1.40) at (incomplete) on en0 ifscope [ethernet]
nas.lan (192.168.1.30) at b8:27:eb:11:22:33 on en0 ifscope [ethernet]
`
	table := ParseARPTable(output, "darwin")

	if len(table) != 2 {
		t.Fatalf("len = %d, want 2", len(table))
	}
	if got := table["192.168.1.30"]; got != "B8:27:EB:11:22:33" {
		t.Errorf("nas MAC = %q", got)
	}
}

func TestParseARPTableUnknownPlatform(t *testing.T) {
	table := ParseARPTable("anything", "plan9")
	if len(table) != 0 {
		t.Fatalf("len = %d, want 0", len(table))
	}
}
