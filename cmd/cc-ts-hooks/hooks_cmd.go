package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/hooks"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// hookFunc is the signature shared by the hook entry points.
type hookFunc func(ctx context.Context, cfg *config.Config, debug bool, deps *hooks.Dependencies) int

func newFormatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "format",
		Short:   "Format and lint the file named in a PostToolUse payload",
		GroupID: GroupHooks,
		Args:    cobra.NoArgs,
		Long: `Format and lint the file named in a PostToolUse payload.

Reads the hook JSON from stdin, runs the formatter on tool_input.file_path
and then the linter for JavaScript and TypeScript sources. Tool problems are
reported as warnings and never fail the hook.`,
		Example: `  echo '{"tool_input":{"file_path":"src/app.ts"}}' | cc-ts-hooks format`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, opts, hooks.FormatHookName, hooks.RunFormatHook)
		},
	}
}

func newTypecheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "typecheck",
		Short:   "Type check the project if TypeScript files changed",
		GroupID: GroupHooks,
		Args:    cobra.NoArgs,
		Long: `Type check the project if TypeScript files changed.

Lists changed files with git and runs the type checker when any of them is
a .ts or .tsx file. Type errors or a timeout exit with code 2 so the agent
sees them before stopping.`,
		Example: `  cc-ts-hooks typecheck
  cc-ts-hooks typecheck --workspace ~/src/webapp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, opts, hooks.TypecheckHookName, hooks.RunTypecheckHook)
		},
	}
}

// runHook loads configuration and runs hook, turning a non-zero exit code into an exitError.
func runHook(cmd *cobra.Command, opts *rootOptions, hookName string, hook hookFunc) error {
	deps := opts.dependencies(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, shared.Failure("Error in %s hook: %v", hookName, err))
		return &exitError{code: hooks.ExitCodeShowMessage}
	}

	if code := hook(cmd.Context(), cfg, opts.debugEnabled(), deps); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}
