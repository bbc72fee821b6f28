package hooks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// RunTypecheckHook is the entry point for the typecheck-on-stop hook.
// It type checks the project when the working tree has TypeScript changes.
// A failing diff skips the check; a failing or timed out checker returns
// ExitCodeShowMessage so the agent treats the stop as blocked.
func RunTypecheckHook(
	ctx context.Context,
	cfg *config.Config,
	debug bool,
	deps *Dependencies,
) (exitCode int) {
	if deps == nil {
		deps = NewDefaultDependencies()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	defer recoverHook(TypecheckHookName, deps.Stderr, &exitCode)

	if err := enterWorkspace(cfg.WorkspaceDir, debug, deps); err != nil {
		return reportHookError(TypecheckHookName, err, deps.Stderr)
	}

	tc := cfg.Hooks.Typecheck
	diffExec := NewCommandExecutor(tc.DiffTimeoutSeconds, debug, deps)

	diff := diffExec.Execute(ctx, NewCommand(tc.Diff))
	switch {
	case diff.TimedOut:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("%s timed out", commandLabel(tc.Diff)))
		return ExitCodeShowMessage
	case diff.NotFound:
		return reportHookError(TypecheckHookName, diff.Error, deps.Stderr)
	case !diff.Success:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("Could not check git status, skipping type check"))
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "%s exited %d: %s\n",
				commandLabel(tc.Diff), diff.ExitCode, strings.TrimSpace(diff.Stderr))
		}
		return 0
	}

	changed := SplitLines(diff.Stdout)
	if tc.IncludeUntracked {
		changed = append(changed, untrackedFiles(ctx, diffExec, tc.Untracked, debug, deps)...)
	}

	if !HasChangedExtension(changed, tc.Extensions) {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "No %s changes among %d changed files\n",
				strings.Join(tc.Extensions, "/"), len(changed))
		}
		return 0
	}

	if tc.Lock {
		lockMgr := NewLockManager(workspaceKey(cfg.WorkspaceDir), TypecheckHookName, tc.CooldownSeconds, deps)
		if !acquireLock(lockMgr, debug, deps.Stderr) {
			return 0
		}
		defer func() {
			_ = lockMgr.Release()
		}()
	}

	_, _ = fmt.Fprintln(deps.Stdout, shared.Info("TypeScript files modified, running type check..."))

	checkExec := NewCommandExecutor(tc.TimeoutSeconds, debug, deps)
	result := checkExec.Execute(ctx, NewCommand(tc.Checker))

	switch {
	case result.TimedOut:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("Type check timed out"))
		return ExitCodeShowMessage
	case result.NotFound:
		return reportHookError(TypecheckHookName, result.Error, deps.Stderr)
	case result.Success:
		_, _ = fmt.Fprintln(deps.Stdout, shared.Success("Type check passed"))
		return 0
	}

	_, _ = fmt.Fprintln(deps.Stderr, shared.Failure("Type check failed:"))
	_, _ = fmt.Fprintln(deps.Stderr, strings.TrimRight(result.Stdout, "\n"))
	if result.Stderr != "" {
		_, _ = fmt.Fprintln(deps.Stderr, strings.TrimRight(result.Stderr, "\n"))
	}
	return ExitCodeShowMessage
}

// untrackedFiles lists new files git does not know about yet. Failures only
// drop the extra list; the tracked diff still decides.
func untrackedFiles(
	ctx context.Context,
	executor *CommandExecutor,
	argv []string,
	debug bool,
	deps *Dependencies,
) []string {
	result := executor.Execute(ctx, NewCommand(argv))
	if !result.Success {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Ignoring untracked listing failure: %v\n", result.Error)
		}
		return nil
	}
	return SplitLines(result.Stdout)
}

// commandLabel names a version-control command for messages, e.g. "git diff".
func commandLabel(argv []string) string {
	const labelWords = 2
	if len(argv) > labelWords {
		return strings.Join(argv[:labelWords], " ")
	}
	return strings.Join(argv, " ")
}

// workspaceKey identifies the project a type check runs against.
func workspaceKey(dir string) string {
	if dir != "" {
		return lockKey(dir)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
