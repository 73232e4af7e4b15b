package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"testing"

	"voice-assistant/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const freeOutput = `               total        used        free      shared  buff/cache   available
Mem:            15Gi       4.2Gi       6.1Gi       512Mi       5.0Gi        10Gi
Swap:          4.0Gi          0B       4.0Gi
`

const neofetchOutput = `user@arch
---------
OS: Arch Linux x86_64
Host: ThinkPad X1
Kernel: 6.9.7-arch1-1
Uptime: 3 hours, 12 mins
Packages: 1021 (pacman)
`

const nmcliOutput = `IN-USE  BSSID              SSID        MODE   CHAN  RATE        SIGNAL  BARS  SECURITY
*       AA:BB:CC:DD:EE:01  home        Infra  36    540 Mbit/s  82      ▂▄▆█  WPA2
        AA:BB:CC:DD:EE:02  neighbour   Infra  6     130 Mbit/s  40      ▂▄__  WPA2
`

func diagnosticRegistry(runner CommandRunner, catalog Catalog) *Registry {
	r := NewRegistry(catalog, observability.NewLogger())
	r.Register(NewSystemInfoTool(runner))
	r.Register(NewCheckMemoryTool(runner))
	r.Register(NewWifiStatusTool(runner))
	r.Register(NewInstallPackageTool(runner))
	r.Register(NewUpdateSystemTool(runner))
	return r
}

func TestParseFree(t *testing.T) {
	used, total, err := parseFree(freeOutput)
	require.NoError(t, err)
	assert.Equal(t, "4.2Gi", used)
	assert.Equal(t, "15Gi", total)
}

func TestParseFree_Unexpected(t *testing.T) {
	for _, out := range []string{"", "just one line", "header\nMem: 15Gi"} {
		_, _, err := parseFree(out)
		assert.ErrorIs(t, err, ErrUnexpectedData, "output %q", out)
	}
}

func TestCheckMemory(t *testing.T) {
	tests := []struct {
		name   string
		result CommandResult
		err    error
		want   string
		kind   Kind
	}{
		{name: "parsed", result: CommandResult{Stdout: freeOutput}, want: "Memory: 4.2Gi/15Gi used"},
		{name: "unexpected output", result: CommandResult{Stdout: "garbage"}, want: "Memory check नहीं हो सका", kind: KindCommand},
		{name: "non-zero exit", result: CommandResult{ExitCode: 2}, want: "Memory check नहीं हो सका", kind: KindCommand},
		{name: "free missing", err: &exec.Error{Name: "free", Err: exec.ErrNotFound}, want: "Memory check नहीं हो सका", kind: KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := NewMockCommandRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), "free", "-h").Return(tt.result, tt.err).Times(2)

			r := diagnosticRegistry(runner, Hinglish)
			assert.Equal(t, tt.want, r.Invoke(context.Background(), CheckMemoryName, nil))

			_, err := r.Call(context.Background(), CheckMemoryName, nil)
			if tt.kind == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.kind, KindOf(err))
			}
		})
	}
}

func TestSystemInfo(t *testing.T) {
	tests := []struct {
		name   string
		result CommandResult
		err    error
		want   string
	}{
		{
			name:   "summary",
			result: CommandResult{Stdout: neofetchOutput},
			want:   "System info ready: OS Arch Linux x86_64, Kernel 6.9.7-arch1-1, Uptime 3 hours, 12 mins",
		},
		{name: "nothing recognisable", result: CommandResult{Stdout: "user@host\n"}, want: "System info ready"},
		{name: "non-zero exit", result: CommandResult{ExitCode: 1}, want: "System info unavailable"},
		{name: "neofetch missing", err: errors.New("not found"), want: "Neofetch is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := NewMockCommandRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), "neofetch", "--stdout").Return(tt.result, tt.err)

			r := diagnosticRegistry(runner, English)
			assert.Equal(t, tt.want, r.Invoke(context.Background(), SystemInfoName, json.RawMessage(`{}`)))
		})
	}
}

func TestWifiStatus(t *testing.T) {
	tests := []struct {
		name   string
		result CommandResult
		err    error
		want   string
	}{
		{name: "two networks", result: CommandResult{Stdout: nmcliOutput}, want: "WiFi networks मिल गए (2)"},
		{name: "empty", result: CommandResult{Stdout: ""}, want: "WiFi networks मिल गए (0)"},
		{name: "scan failed", result: CommandResult{ExitCode: 8}, want: "WiFi scan नहीं हो सका"},
		{name: "nmcli missing", err: errors.New("not found"), want: "NetworkManager available नहीं है"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := NewMockCommandRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), "nmcli", "dev", "wifi").Return(tt.result, tt.err)

			r := diagnosticRegistry(runner, Hinglish)
			assert.Equal(t, tt.want, r.Invoke(context.Background(), WifiStatusName, nil))
		})
	}
}

func TestInstallPackage(t *testing.T) {
	tests := []struct {
		name   string
		result CommandResult
		err    error
		want   string
	}{
		{name: "installed", result: CommandResult{}, want: "htop install हो गया"},
		{name: "pacman error", result: CommandResult{ExitCode: 1, Stderr: "error: target not found: htop"}, want: "Install में error आया"},
		{name: "sudo missing", err: errors.New("exec: sudo: not found"), want: "Command execute नहीं हो सका"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			runner := NewMockCommandRunner(ctrl)
			runner.EXPECT().
				Run(gomock.Any(), "sudo", "pacman", "-S", "--noconfirm", "htop").
				Return(tt.result, tt.err)

			r := diagnosticRegistry(runner, Hinglish)
			got := r.Invoke(context.Background(), InstallPackageName, json.RawMessage(`{"package_name":"htop"}`))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstallPackage_RequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := diagnosticRegistry(NewMockCommandRunner(ctrl), English)
	got := r.Invoke(context.Background(), InstallPackageName, json.RawMessage(`{"package_name":""}`))
	assert.Equal(t, "Invalid tool arguments: package_name is required", got)
}

func TestUpdateSystem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := NewMockCommandRunner(ctrl)
	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), "sudo", "pacman", "-Syu", "--noconfirm").Return(CommandResult{}, nil),
		runner.EXPECT().Run(gomock.Any(), "sudo", "pacman", "-Syu", "--noconfirm").Return(CommandResult{ExitCode: 1}, nil),
		runner.EXPECT().Run(gomock.Any(), "sudo", "pacman", "-Syu", "--noconfirm").Return(CommandResult{}, errors.New("no sudo")),
	)

	r := diagnosticRegistry(runner, English)
	assert.Equal(t, "System updated", r.Invoke(context.Background(), UpdateSystemName, nil))
	assert.Equal(t, "Update failed", r.Invoke(context.Background(), UpdateSystemName, nil))
	assert.Equal(t, "Update failed", r.Invoke(context.Background(), UpdateSystemName, nil))
}
