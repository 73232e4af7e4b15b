package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	InstallPackageName = "install_package"
	UpdateSystemName   = "update_system"
)

// InstallPackageTool installs a package with pacman.
type InstallPackageTool struct {
	runner CommandRunner
}

func NewInstallPackageTool(runner CommandRunner) InstallPackageTool {
	return InstallPackageTool{runner: runner}
}

type installPackageArgs struct {
	PackageName string `json:"package_name" validate:"required"`
}

func (t InstallPackageTool) Specification() Specification {
	return Specification{
		Name:        InstallPackageName,
		Description: "Install a package using pacman.",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"package_name"},
			Properties: map[string]ParameterObject{
				"package_name": {
					Type:        "string",
					Description: "Name of the pacman package to install.",
				},
			},
		},
	}
}

func (t InstallPackageTool) Run(ctx context.Context, input json.RawMessage) (Outcome, error) {
	var args installPackageArgs
	if err := decodeArgs(input, &args); err != nil {
		return Outcome{}, invalidArgs(InstallPackageName, err)
	}

	res, err := t.runner.Run(ctx, "sudo", "pacman", "-S", "--noconfirm", args.PackageName)
	if err != nil {
		return Outcome{}, newError(KindUnavailable, InstallPackageName, err, MsgCommandUnavailable)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, InstallPackageName, exitError(res), MsgInstallFailed)
	}

	out := ok(MsgInstallOK, args.PackageName)
	out.Output = res.Stdout
	return out, nil
}

// UpdateSystemTool runs a full pacman system upgrade.
type UpdateSystemTool struct {
	runner CommandRunner
}

func NewUpdateSystemTool(runner CommandRunner) UpdateSystemTool {
	return UpdateSystemTool{runner: runner}
}

func (t UpdateSystemTool) Specification() Specification {
	return Specification{
		Name:        UpdateSystemName,
		Description: "Update the entire system.",
		Inputs:      noInputs(),
	}
}

func (t UpdateSystemTool) Run(ctx context.Context, _ json.RawMessage) (Outcome, error) {
	res, err := t.runner.Run(ctx, "sudo", "pacman", "-Syu", "--noconfirm")
	if err != nil {
		return Outcome{}, newError(KindUnavailable, UpdateSystemName, err, MsgUpdateFailed)
	}
	if !res.Success() {
		return Outcome{}, newError(KindCommand, UpdateSystemName, exitError(res), MsgUpdateFailed)
	}

	out := ok(MsgUpdateOK)
	out.Output = res.Stdout
	return out, nil
}

// exitError keeps the exit status and stderr of a failed command for the logs.
func exitError(res CommandResult) error {
	if res.Stderr == "" {
		return fmt.Errorf("%w: exit status %d", ErrNonZeroExit, res.ExitCode)
	}
	return fmt.Errorf("%w: exit status %d: %s", ErrNonZeroExit, res.ExitCode, res.Stderr)
}
