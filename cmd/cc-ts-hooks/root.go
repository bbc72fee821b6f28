package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/hooks"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// Command group IDs for organizing help output.
const (
	GroupHooks   = "hooks"
	GroupUtility = "utility"
)

// exitError carries a hook exit code out of a command. The hook has already
// printed its own diagnostics.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	debug     bool
	workspace string

	// deps replaces the real process and filesystem access; nil in production.
	deps *hooks.Dependencies
}

// debugEnabled reports whether --debug or CLAUDE_HOOKS_DEBUG=1 is set.
func (o *rootOptions) debugEnabled() bool {
	return o.debug || os.Getenv(shared.DebugEnvVar) == "1"
}

// dependencies returns the injected dependencies, or real ones writing to the
// command's output streams.
func (o *rootOptions) dependencies(cmd *cobra.Command) *hooks.Dependencies {
	if o.deps != nil {
		return o.deps
	}
	deps := hooks.NewDefaultDependencies()
	deps.Stdout = cmd.OutOrStdout()
	deps.Stderr = cmd.ErrOrStderr()
	return deps
}

// loadConfig loads the configuration and applies --workspace on top.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.workspace != "" {
		cfg.WorkspaceDir = o.workspace
	}
	return cfg, nil
}

func newRootCmd(deps *hooks.Dependencies) *cobra.Command {
	opts := &rootOptions{deps: deps}

	cmd := &cobra.Command{
		Use:   "cc-ts-hooks",
		Short: "Format, lint and type check TypeScript edits made by a coding agent",
		Long: `cc-ts-hooks runs the TypeScript toolchain from agent hooks.

The format hook reads a PostToolUse payload on stdin and runs the formatter
and linter on the edited file. The typecheck hook runs when the agent stops
and type checks the project if any TypeScript file changed.

Exit code 2 tells the agent to show the hook's message.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Version:                    versionString(),
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false,
		"Print diagnostics to stderr (same as "+shared.DebugEnvVar+"=1)")
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "",
		"Directory to run in (overrides "+config.WorkspaceEnvVar+")")

	cmd.AddGroup(
		&cobra.Group{ID: GroupHooks, Title: "Hook Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	cmd.AddCommand(newFormatCmd(opts))
	cmd.AddCommand(newTypecheckCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the hook's exit code.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(nil).ExecuteContext(ctx)
	cancel()

	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	_, _ = fmt.Fprintln(os.Stderr, err)
	_, _ = fmt.Fprintln(os.Stderr, "Run 'cc-ts-hooks -h' for help")
	return 1
}
