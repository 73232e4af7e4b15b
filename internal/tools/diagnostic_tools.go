package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	SystemInfoName  = "system_info"
	CheckMemoryName = "check_memory"
	WifiStatusName  = "wifi_status"
)

// SystemInfoTool summarises neofetch output.
type SystemInfoTool struct {
	runner CommandRunner
}

func NewSystemInfoTool(runner CommandRunner) SystemInfoTool {
	return SystemInfoTool{runner: runner}
}

func (t SystemInfoTool) Specification() Specification {
	return Specification{
		Name:        SystemInfoName,
		Description: "Get system information such as the operating system, kernel and uptime.",
		Inputs:      noInputs(),
	}
}

func (t SystemInfoTool) Run(ctx context.Context, _ json.RawMessage) (Outcome, error) {
	res, err := t.runner.Run(ctx, "neofetch", "--stdout")
	if err != nil {
		return Outcome{}, newError(KindUnavailable, SystemInfoName, err, MsgNeofetchUnavailable)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, SystemInfoName, exitError(res), MsgSystemInfoFailed)
	}

	var out Outcome
	if summary := summarizeNeofetch(res.Stdout); summary != "" {
		out = ok(MsgSystemInfoSummary, summary)
	} else {
		out = ok(MsgSystemInfoReady)
	}
	out.Output = res.Stdout
	return out, nil
}

var neofetchKeys = []string{"OS", "Kernel", "Uptime"}

// summarizeNeofetch picks the OS, Kernel and Uptime lines from `neofetch --stdout`.
func summarizeNeofetch(stdout string) string {
	found := make(map[string]string, len(neofetchKeys))
	for _, line := range strings.Split(stdout, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		found[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	parts := make([]string, 0, len(neofetchKeys))
	for _, key := range neofetchKeys {
		if v := found[key]; v != "" {
			parts = append(parts, fmt.Sprintf("%s %s", key, v))
		}
	}
	return strings.Join(parts, ", ")
}

// CheckMemoryTool reports used and total memory from `free -h`.
type CheckMemoryTool struct {
	runner CommandRunner
}

func NewCheckMemoryTool(runner CommandRunner) CheckMemoryTool {
	return CheckMemoryTool{runner: runner}
}

func (t CheckMemoryTool) Specification() Specification {
	return Specification{
		Name:        CheckMemoryName,
		Description: "Check memory usage.",
		Inputs:      noInputs(),
	}
}

func (t CheckMemoryTool) Run(ctx context.Context, _ json.RawMessage) (Outcome, error) {
	res, err := t.runner.Run(ctx, "free", "-h")
	if err != nil {
		return Outcome{}, newError(KindUnavailable, CheckMemoryName, err, MsgMemoryFailed)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, CheckMemoryName, exitError(res), MsgMemoryFailed)
	}

	used, total, err := parseFree(res.Stdout)
	if err != nil {
		return Outcome{}, newError(KindCommand, CheckMemoryName, err, MsgMemoryFailed)
	}
	out := ok(MsgMemoryUsage, used, total)
	out.Output = res.Stdout
	return out, nil
}

// parseFree reads the second line of `free -h`, whose fields are
// "Mem:", total, used, ...
func parseFree(stdout string) (used, total string, err error) {
	lines := strings.Split(stdout, "\n")
	if len(lines) < 2 {
		return "", "", fmt.Errorf("%w: free printed %d lines", ErrUnexpectedData, len(lines))
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 3 {
		return "", "", fmt.Errorf("%w: memory line %q", ErrUnexpectedData, lines[1])
	}
	return fields[2], fields[1], nil
}

// WifiStatusTool scans for WiFi networks with NetworkManager.
type WifiStatusTool struct {
	runner CommandRunner
}

func NewWifiStatusTool(runner CommandRunner) WifiStatusTool {
	return WifiStatusTool{runner: runner}
}

func (t WifiStatusTool) Specification() Specification {
	return Specification{
		Name:        WifiStatusName,
		Description: "Check available WiFi networks.",
		Inputs:      noInputs(),
	}
}

func (t WifiStatusTool) Run(ctx context.Context, _ json.RawMessage) (Outcome, error) {
	res, err := t.runner.Run(ctx, "nmcli", "dev", "wifi")
	if err != nil {
		return Outcome{}, newError(KindUnavailable, WifiStatusName, err, MsgWifiUnavailable)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, WifiStatusName, exitError(res), MsgWifiFailed)
	}

	out := ok(MsgWifiFound, countNetworks(res.Stdout))
	out.Output = res.Stdout
	return out, nil
}

// countNetworks counts the rows under the nmcli header line.
func countNetworks(stdout string) int {
	rows := 0
	for _, line := range strings.Split(stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			rows++
		}
	}
	if rows == 0 {
		return 0
	}
	return rows - 1
}
