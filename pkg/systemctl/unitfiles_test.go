package systemctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitFiles(t *testing.T) {
	units := ParseUnitFiles(listing + "\n\n   \n")
	assert.Equal(t, []string{
		"apache2.service",
		"avahi-daemon.service",
		"ssh.service",
		"sshd.service",
		"systemd-journald.service",
	}, units.Names())
	assert.Equal(t, "alias", units.State("sshd.service"))
	assert.Equal(t, "", units.State("missing.service"))
}

func TestParseUnitFilesSingleColumn(t *testing.T) {
	units := ParseUnitFiles("ModemManager.service\n")
	require.True(t, units.Has("ModemManager.service"))
	assert.Equal(t, "", units.State("ModemManager.service"))
	assert.False(t, units.Has("modemmanager.service"), "unit names are case-sensitive")
}

func TestParseUnitFilesEmpty(t *testing.T) {
	assert.Empty(t, ParseUnitFiles(""))
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "ssh.service", UnitName("ssh"))
	assert.Equal(t, "ssh.service", UnitName("ssh.service"))
	assert.Equal(t, "avahi-daemon.service", UnitName(" avahi-daemon "))
	assert.Equal(t, "ssh", ServiceName("ssh.service"))
	assert.Equal(t, "ssh", ServiceName("ssh"))
}

func TestInterpretExitCode(t *testing.T) {
	tests := []struct {
		cmd  Command
		code int
		want string
	}{
		{CmdIsActive, ExitSuccess, "active"},
		{CmdIsActive, ExitInactive, "inactive"},
		{CmdIsActive, ExitNotLoaded, "not loaded"},
		{CmdIsActive, 9, "unknown exit code 9"},
		{CmdIsEnabled, ExitGenericFail, "disabled"},
		{CmdListUnitFiles, ExitGenericFail, "no unit files matched"},
		{CmdStop, ExitSuccess, "success"},
		{CmdDisable, 1, "failed with exit code 1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.cmd), func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretExitCode(tt.cmd, tt.code))
		})
	}
}

func TestPrivileged(t *testing.T) {
	assert.True(t, CmdStop.Privileged())
	assert.True(t, CmdDisable.Privileged())
	assert.False(t, CmdListUnitFiles.Privileged())
	assert.False(t, CmdIsActive.Privileged())
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("systemd 249 (249.11-0ubuntu3.12)\n+PAM")
	require.NoError(t, err)
	assert.Equal(t, 249, v.Segments()[0])

	_, err = ParseVersion("")
	assert.Error(t, err)
	_, err = ParseVersion("upstart 1.5")
	assert.Error(t, err)
	_, err = ParseVersion("systemd not-a-number")
	assert.Error(t, err)
}
