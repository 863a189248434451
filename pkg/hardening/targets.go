// pkg/hardening/targets.go

package hardening

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/systemctl"
)

// RemoteAccessService is the Ubuntu unit name for OpenSSH (not "sshd").
const RemoteAccessService = "ssh"

// defaultServices are network-facing daemons an Ubuntu host rarely needs.
// On remote hosts keep "ssh" (--keep ssh) to avoid locking yourself out.
var defaultServices = []string{
	"vsftpd",
	"proftpd",
	RemoteAccessService,
	"postfix",
	"apache2",
	"rpcbind",
	"exim4",
	"avahi-daemon",
	"ModemManager",
}

// DefaultServices returns a copy of the built-in target list.
func DefaultServices() []string {
	return append([]string(nil), defaultServices...)
}

// SelectTargets builds the ordered target list: override replaces base when
// non-empty, names in keep are removed, ".service" suffixes are dropped and
// duplicates keep their first position.
func SelectTargets(base, override, keep []string) []string {
	src := base
	if len(normalize(override)) > 0 {
		src = override
	}

	kept := make(map[string]struct{}, len(keep))
	for _, k := range normalize(keep) {
		kept[k] = struct{}{}
	}

	seen := make(map[string]struct{}, len(src))
	targets := make([]string, 0, len(src))
	for _, name := range normalize(src) {
		if _, skip := kept[name]; skip {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		targets = append(targets, name)
	}
	return targets
}

// RemoteLockoutRisk reports whether ssh is targeted from inside an SSH session.
func RemoteLockoutRisk(targets []string, getenv func(string) string) bool {
	if getenv("SSH_CONNECTION") == "" && getenv("SSH_TTY") == "" {
		return false
	}
	for _, t := range targets {
		if t == RemoteAccessService {
			return true
		}
	}
	return false
}

func normalize(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = systemctl.ServiceName(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
