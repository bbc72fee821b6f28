package hooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ExitCodeShowMessage is used to signal that a message should be shown to Claude.
	ExitCodeShowMessage = 2
)

// exitCoder is satisfied by *exec.ExitError and by any runner error that
// carries a process exit status.
type exitCoder interface {
	error
	ExitCode() int
}

// Command is an external program invocation.
type Command struct {
	Name       string
	Args       []string
	WorkingDir string
}

// NewCommand builds a Command from an argv-style vector plus extra arguments.
func NewCommand(argv []string, extra ...string) *Command {
	if len(argv) == 0 {
		return nil
	}
	args := make([]string, 0, len(argv)-1+len(extra))
	args = append(args, argv[1:]...)
	args = append(args, extra...)
	return &Command{Name: argv[0], Args: args}
}

// String renders the command line for messages.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ExecutorResult represents the result of executing a command.
type ExecutorResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Error    error
	TimedOut bool
	// NotFound is set when the command could not be started at all.
	NotFound bool
}

// CommandExecutor runs one external command at a time under a timeout.
type CommandExecutor struct {
	timeout time.Duration
	debug   bool
	deps    *Dependencies
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor(timeoutSecs int, debug bool, deps *Dependencies) *CommandExecutor {
	if deps == nil {
		deps = NewDefaultDependencies()
	}
	return &CommandExecutor{
		timeout: time.Duration(timeoutSecs) * time.Second,
		debug:   debug,
		deps:    deps,
	}
}

// Timeout returns the per-command timeout.
func (ce *CommandExecutor) Timeout() time.Duration {
	return ce.timeout
}

// Execute runs cmd with the executor's timeout.
func (ce *CommandExecutor) Execute(ctx context.Context, cmd *Command) *ExecutorResult {
	if cmd == nil {
		return &ExecutorResult{
			Success:  false,
			ExitCode: -1,
			Error:    errors.New("no command to execute"),
			NotFound: true,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, ce.timeout)
	defer cancel()

	if ce.debug {
		_, _ = fmt.Fprintf(ce.deps.Stderr, "Running: %s (timeout %v)\n", cmd, ce.timeout)
	}

	output, err := ce.deps.Runner.RunContext(ctx, cmd.WorkingDir, cmd.Name, cmd.Args...)

	var stdout, stderr string
	if output != nil {
		stdout = string(output.Stdout)
		stderr = string(output.Stderr)
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ExecutorResult{
			Success:  false,
			ExitCode: -1,
			Stdout:   stdout,
			Stderr:   stderr,
			Error:    fmt.Errorf("command timed out after %v", ce.timeout),
			TimedOut: true,
		}
	}

	if err == nil {
		return &ExecutorResult{
			Success: true,
			Stdout:  stdout,
			Stderr:  stderr,
		}
	}

	var exitErr exitCoder
	if errors.As(err, &exitErr) {
		return &ExecutorResult{
			Success:  false,
			ExitCode: exitErr.ExitCode(),
			Stdout:   stdout,
			Stderr:   stderr,
			Error:    err,
		}
	}

	return &ExecutorResult{
		Success:  false,
		ExitCode: -1,
		Stdout:   stdout,
		Stderr:   stderr,
		Error:    err,
		NotFound: true,
	}
}
