package tools

//go:generate go run go.uber.org/mock/mockgen@latest -source=runner.go -destination=mocks_test.go -package=tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResult is what a finished external command left behind.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports a zero exit status.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner runs external commands. Run returns an error only when the
// command could not be executed; a non-zero exit is reported in the result.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
	// Start launches the command without waiting for it to exit.
	Start(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. No shell is involved; every
// argument is passed as a single argv element.
type ExecRunner struct{}

func NewExecRunner() ExecRunner {
	return ExecRunner{}
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to run %s: %w", commandLine(name, args), err)
	}
	return result, nil
}

// Start detaches from the child. The child is reaped in the background so it
// does not linger as a zombie, and it is not tied to ctx: closing a voice
// session must not kill an application the user asked to open.
func (ExecRunner) Start(_ context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", commandLine(name, args), err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
