package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	SetVolumeName       = "set_volume"
	KillProcessName     = "kill_process"
	OpenApplicationName = "open_application"
)

const (
	minVolume = 0
	maxVolume = 100
)

// SetVolumeTool sets the ALSA master volume.
type SetVolumeTool struct {
	runner CommandRunner
}

func NewSetVolumeTool(runner CommandRunner) SetVolumeTool {
	return SetVolumeTool{runner: runner}
}

type setVolumeArgs struct {
	Level *int `json:"level" validate:"required,min=0,max=100"`
}

func (t SetVolumeTool) Specification() Specification {
	return Specification{
		Name:        SetVolumeName,
		Description: "Set audio volume (0-100).",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"level"},
			Properties: map[string]ParameterObject{
				"level": {
					Type:        "integer",
					Description: "Volume level in percent, from 0 to 100.",
					Minimum:     intPtr(minVolume),
					Maximum:     intPtr(maxVolume),
				},
			},
		},
	}
}

func (t SetVolumeTool) Run(ctx context.Context, input json.RawMessage) (Outcome, error) {
	var args setVolumeArgs
	if err := decodeArgs(input, &args); err != nil {
		return Outcome{}, newError(KindValidation, SetVolumeName, err, MsgVolumeOutOfRange)
	}
	return t.SetLevel(ctx, *args.Level)
}

// SetLevel applies level after checking it is within [0,100]. Out of range
// levels are rejected before any command runs.
func (t SetVolumeTool) SetLevel(ctx context.Context, level int) (Outcome, error) {
	if level < minVolume || level > maxVolume {
		return Outcome{}, newError(KindValidation, SetVolumeName,
			fmt.Errorf("level %d outside [%d,%d]", level, minVolume, maxVolume), MsgVolumeOutOfRange)
	}

	res, err := t.runner.Run(ctx, "amixer", "set", "Master", fmt.Sprintf("%d%%", level))
	if err != nil {
		return Outcome{}, newError(KindUnavailable, SetVolumeName, err, MsgVolumeFailed)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, SetVolumeName, exitError(res), MsgVolumeFailed)
	}
	return ok(MsgVolumeSet, level), nil
}

// KillProcessTool terminates every process with the given name.
type KillProcessTool struct {
	runner CommandRunner
}

func NewKillProcessTool(runner CommandRunner) KillProcessTool {
	return KillProcessTool{runner: runner}
}

type killProcessArgs struct {
	ProcessName string `json:"process_name" validate:"required"`
}

func (t KillProcessTool) Specification() Specification {
	return Specification{
		Name:        KillProcessName,
		Description: "Kill a process by name.",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"process_name"},
			Properties: map[string]ParameterObject{
				"process_name": {
					Type:        "string",
					Description: "Exact name of the process, as accepted by killall.",
				},
			},
		},
	}
}

func (t KillProcessTool) Run(ctx context.Context, input json.RawMessage) (Outcome, error) {
	var args killProcessArgs
	if err := decodeArgs(input, &args); err != nil {
		return Outcome{}, invalidArgs(KillProcessName, err)
	}

	res, err := t.runner.Run(ctx, "killall", args.ProcessName)
	if err != nil {
		return Outcome{}, newError(KindUnavailable, KillProcessName, err, MsgProcessNotFound, args.ProcessName)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, KillProcessName, exitError(res), MsgProcessNotFound, args.ProcessName)
	}
	return ok(MsgProcessKilled, args.ProcessName), nil
}

// OpenApplicationTool launches an application and returns immediately.
type OpenApplicationTool struct {
	runner CommandRunner
}

func NewOpenApplicationTool(runner CommandRunner) OpenApplicationTool {
	return OpenApplicationTool{runner: runner}
}

type openApplicationArgs struct {
	AppName string `json:"app_name" validate:"required"`
}

func (t OpenApplicationTool) Specification() Specification {
	return Specification{
		Name:        OpenApplicationName,
		Description: "Open an application.",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"app_name"},
			Properties: map[string]ParameterObject{
				"app_name": {
					Type:        "string",
					Description: "Executable name of the application, for example firefox.",
				},
			},
		},
	}
}

func (t OpenApplicationTool) Run(ctx context.Context, input json.RawMessage) (Outcome, error) {
	var args openApplicationArgs
	if err := decodeArgs(input, &args); err != nil {
		return Outcome{}, invalidArgs(OpenApplicationName, err)
	}

	if err := t.runner.Start(ctx, args.AppName); err != nil {
		return Outcome{}, newError(KindUnavailable, OpenApplicationName, err, MsgAppFailed, args.AppName)
	}
	return ok(MsgAppOpened, args.AppName), nil
}
