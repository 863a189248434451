package hardening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultServices(t *testing.T) {
	got := DefaultServices()
	assert.Equal(t, []string{
		"vsftpd", "proftpd", "ssh", "postfix", "apache2",
		"rpcbind", "exim4", "avahi-daemon", "ModemManager",
	}, got)

	got[0] = "mutated"
	assert.Equal(t, "vsftpd", DefaultServices()[0], "callers get a copy")
}

func TestSelectTargets(t *testing.T) {
	base := DefaultServices()
	tests := []struct {
		name     string
		override []string
		keep     []string
		want     []string
	}{
		{
			name: "defaults",
			want: base,
		},
		{
			name: "keep_ssh",
			keep: []string{"ssh.service"},
			want: []string{"vsftpd", "proftpd", "postfix", "apache2", "rpcbind", "exim4", "avahi-daemon", "ModemManager"},
		},
		{
			name:     "override_replaces_and_dedupes",
			override: []string{"cups", "cups.service", " bluetooth ", "cups"},
			want:     []string{"cups", "bluetooth"},
		},
		{
			name:     "blank_override_falls_back_to_base",
			override: []string{"", "  "},
			keep:     []string{"vsftpd", "proftpd", "ssh", "postfix", "apache2", "rpcbind", "exim4"},
			want:     []string{"avahi-daemon", "ModemManager"},
		},
		{
			name:     "keep_everything",
			override: []string{"ssh"},
			keep:     []string{"ssh"},
			want:     []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTargets(base, tt.override, tt.keep))
		})
	}
}

func TestRemoteLockoutRisk(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	assert.False(t, RemoteLockoutRisk([]string{"ssh"}, env(nil)))
	assert.True(t, RemoteLockoutRisk([]string{"ssh"}, env(map[string]string{"SSH_CONNECTION": "10.0.0.2 5555 10.0.0.1 22"})))
	assert.True(t, RemoteLockoutRisk([]string{"apache2", "ssh"}, env(map[string]string{"SSH_TTY": "/dev/pts/0"})))
	assert.False(t, RemoteLockoutRisk([]string{"apache2"}, env(map[string]string{"SSH_TTY": "/dev/pts/0"})))
}
