// pkg/privilege/privilege.go

// Package privilege decides whether state-changing commands need a sudo prefix.
package privilege

import (
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Mode selects how privilege escalation is applied.
type Mode string

const (
	// ModeAuto prefixes with sudo only when the effective uid is not 0.
	ModeAuto Mode = "auto"
	// ModeAlways prefixes with sudo unconditionally.
	ModeAlways Mode = "always"
	// ModeNever never prefixes.
	ModeNever Mode = "never"
)

// Modes lists the accepted values, in help-text order.
var Modes = []Mode{ModeAuto, ModeAlways, ModeNever}

// ParseMode accepts a case-insensitive mode name; empty means auto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeAuto, nil
	}
	names := make([]string, 0, len(Modes))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
		names = append(names, string(known))
	}
	return "", cerr.Newf("unknown sudo mode %q (want one of %s)", s, strings.Join(names, ", "))
}

// Escalator builds command lines for privileged operations.
type Escalator struct {
	mode  Mode
	euid  func() int
	isTTY func() bool
}

// New returns an Escalator that inspects the real process.
func New(mode Mode) *Escalator {
	return &Escalator{
		mode:  mode,
		euid:  unix.Geteuid,
		isTTY: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// NewWith returns an Escalator with caller-supplied uid and terminal probes.
func NewWith(mode Mode, euid func() int, isTTY func() bool) *Escalator {
	return &Escalator{mode: mode, euid: euid, isTTY: isTTY}
}

// Mode reports the configured mode.
func (e *Escalator) Mode() Mode {
	return e.mode
}

// IsRoot reports whether the process runs with effective uid 0.
func (e *Escalator) IsRoot() bool {
	return e.euid() == 0
}

// Prefix returns the argv prefix for a privileged command, or nil.
// sudo gets -n when stdin is not a terminal so it fails instead of hanging on a prompt.
func (e *Escalator) Prefix() []string {
	switch e.mode {
	case ModeNever:
		return nil
	case ModeAlways:
	default:
		if e.IsRoot() {
			return nil
		}
	}
	if e.isTTY() {
		return []string{shared.SudoBinary}
	}
	return []string{shared.SudoBinary, "-n"}
}

// Wrap returns command and args rewritten to run through the prefix.
func (e *Escalator) Wrap(command string, args []string) (string, []string) {
	prefix := e.Prefix()
	if len(prefix) == 0 {
		return command, args
	}
	wrapped := make([]string, 0, len(prefix)+len(args))
	wrapped = append(wrapped, prefix[1:]...)
	wrapped = append(wrapped, command)
	wrapped = append(wrapped, args...)
	return prefix[0], wrapped
}
