package hooks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// RunFormatHook is the entry point for the format-and-lint hook.
// It formats the edited file and, for script files, lints it with auto-fix.
// Tool failures are advisory; only internal errors return ExitCodeShowMessage.
func RunFormatHook(
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
	defer recoverHook(FormatHookName, deps.Stderr, &exitCode)

	if err := enterWorkspace(cfg.WorkspaceDir, debug, deps); err != nil {
		return reportHookError(FormatHookName, err, deps.Stderr)
	}

	input, err := ReadHookInput(deps.Input)
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			if debug {
				_, _ = fmt.Fprintln(deps.Stderr, "No hook input on stdin")
			}
			return 0
		}
		return reportHookError(FormatHookName, err, deps.Stderr)
	}

	filePath, err := input.FilePath()
	if err != nil {
		return reportHookError(FormatHookName, err, deps.Stderr)
	}
	if filePath == "" {
		if debug {
			_, _ = fmt.Fprintln(deps.Stderr, "No file path found in input")
		}
		return 0
	}

	if _, statErr := deps.FS.Stat(filePath); statErr != nil {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Skipping missing file %s\n", filePath)
		}
		return 0
	}

	fc := cfg.Hooks.Format
	class := ClassifyFile(filePath, fc.FormatExtensions, fc.LintExtensions)
	if !class.Format {
		if debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Skipping %s: extension not formattable\n", filePath)
		}
		return 0
	}

	if fc.Lock {
		lockMgr := NewLockManager(lockKey(filePath), FormatHookName, fc.CooldownSeconds, deps)
		if !acquireLock(lockMgr, debug, deps.Stderr) {
			return 0
		}
		defer func() {
			_ = lockMgr.Release()
		}()
	}

	executor := NewCommandExecutor(fc.TimeoutSeconds, debug, deps)
	runFormatter(ctx, executor, fc.Formatter, filePath, deps)
	if class.Lint {
		runLinter(ctx, executor, fc.Linter, filePath, deps)
	}

	return 0
}

// runFormatter runs the formatter on path. Every failure is reported as a warning.
func runFormatter(ctx context.Context, executor *CommandExecutor, argv []string, path string, deps *Dependencies) {
	label := ToolLabel(argv)
	result := executor.Execute(ctx, NewCommand(argv, path))

	switch {
	case result.Success:
		_, _ = fmt.Fprintln(deps.Stdout, shared.Success("Formatted %s", path))
	case result.TimedOut:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("%s timed out for %s", label, path))
	case result.NotFound:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("%s error for %s: %v", label, path, result.Error))
	default:
		_, _ = fmt.Fprintln(deps.Stderr,
			shared.Warning("%s warning for %s: %s", label, path, strings.TrimRight(result.Stderr, "\n")))
	}
}

// runLinter runs the linter with auto-fix on path. A non-zero exit is
// expected when problems remain, so its report is echoed rather than failed on.
func runLinter(ctx context.Context, executor *CommandExecutor, argv []string, path string, deps *Dependencies) {
	label := ToolLabel(argv)
	result := executor.Execute(ctx, NewCommand(argv, path))

	switch {
	case result.Success:
		_, _ = fmt.Fprintln(deps.Stdout, shared.Success("Linted %s", path))
	case result.TimedOut:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("%s timed out for %s", label, path))
	case result.NotFound:
		_, _ = fmt.Fprintln(deps.Stderr, shared.Warning("%s error for %s: %v", label, path, result.Error))
	default:
		if result.Stdout != "" {
			_, _ = fmt.Fprintf(deps.Stdout, "%s output for %s:\n%s\n",
				label, path, strings.TrimRight(result.Stdout, "\n"))
		}
	}
}

// lockKey resolves path so relative and absolute spellings share a lock.
func lockKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
