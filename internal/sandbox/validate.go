package sandbox

import (
	"fmt"
	"strconv"
	"strings"
)

// shellMetaChars never reach process execution: chaining, redirection,
// substitution, and quoting are rejected during validation.
const shellMetaChars = ";|&$><`(){}\\\"'\n\r"

// builder turns validated tokens into an argv list, or returns a rejection
// reason. The argv is always passed to the launcher as a discrete list,
// never concatenated into a shell string.
type builder func(tokens []string, windows bool) (argv []string, reason string)

// allowlist is the closed set of permitted command names. Anything else is
// rejected before any process spawns.
var allowlist = map[string]builder{
	"ping":       buildPing,
	"traceroute": buildTraceroute,
	"tracert":    buildTraceroute,
	"nslookup":   buildNslookup,
	"netstat":    buildNetstat,
	"ifconfig":   buildIfconfig,
	"ipconfig":   buildIfconfig,
}

// validate tokenizes raw operator input and checks the leading token
// against the allowlist. Returns a non-nil argv for execution, or a
// rejection reason. "help" is answered here without spawning anything
// and reported through the help flag.
func validate(raw string, windows bool) (argv []string, reason string, help bool) {
	if strings.ContainsAny(raw, shellMetaChars) {
		return nil, "rejected: shell metacharacters are not allowed", false
	}

	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil, "rejected: empty command", false
	}

	name := strings.ToLower(tokens[0])
	if name == "help" {
		return nil, helpText(windows), true
	}

	build, ok := allowlist[name]
	if !ok {
		return nil, fmt.Sprintf("rejected: command %q not allowed, type 'help' for available commands", name), false
	}
	argv, reason = build(tokens, windows)
	return argv, reason, false
}

// buildPing accepts an optional -c/-n count (clamped to 1..10) and a host.
func buildPing(tokens []string, windows bool) ([]string, string) {
	host := ""
	count := 4
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case (tok == "-c" || tok == "-n") && i+1 < len(tokens):
			if n, err := strconv.Atoi(tokens[i+1]); err == nil {
				count = min(10, max(1, n))
			}
			i++
		case !strings.HasPrefix(tok, "-") && host == "":
			host = tok
		}
	}
	if host == "" {
		return nil, "usage: ping <host> [-c count]"
	}
	if windows {
		return []string{"ping", "-n", strconv.Itoa(count), "-w", "1000", host}, ""
	}
	return []string{"ping", "-c", strconv.Itoa(count), "-W", "2", host}, ""
}

func buildTraceroute(tokens []string, windows bool) ([]string, string) {
	if len(tokens) < 2 || strings.HasPrefix(tokens[1], "-") {
		if windows {
			return nil, "usage: tracert <host>"
		}
		return nil, "usage: traceroute <host>"
	}
	if windows {
		return []string{"tracert", "-d", tokens[1]}, ""
	}
	return []string{"traceroute", "-n", tokens[1]}, ""
}

func buildNslookup(tokens []string, _ bool) ([]string, string) {
	if len(tokens) < 2 || strings.HasPrefix(tokens[1], "-") {
		return nil, "usage: nslookup <host>"
	}
	return []string{"nslookup", tokens[1]}, ""
}

// buildNetstat keeps only flags from a fixed set; no freeform arguments.
func buildNetstat(tokens []string, _ bool) ([]string, string) {
	allowed := map[string]bool{"-a": true, "-n": true, "-an": true, "-r": true, "-s": true}
	argv := []string{"netstat"}
	for _, tok := range tokens[1:] {
		if allowed[tok] {
			argv = append(argv, tok)
		}
	}
	if len(argv) == 1 {
		argv = append(argv, "-an")
	}
	return argv, ""
}

// buildIfconfig permits only the bare interface listing.
func buildIfconfig(tokens []string, _ bool) ([]string, string) {
	return []string{strings.ToLower(tokens[0])}, ""
}

func helpText(windows bool) string {
	trace, iface := "traceroute", "ifconfig"
	if windows {
		trace, iface = "tracert", "ipconfig"
	}
	return strings.Join([]string{
		"available commands:",
		"  ping <host> [-c count]  - ping a host",
		"  " + trace + " <host>       - trace route to host",
		"  nslookup <host>         - resolve a hostname",
		"  netstat [-a|-n|-r|-s]   - show network connections",
		"  " + iface + "                - show network interfaces",
		"  help                    - show this message",
	}, "\n")
}
