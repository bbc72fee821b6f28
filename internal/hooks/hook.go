package hooks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

// Hook names, used in diagnostics and lock file names.
const (
	FormatHookName    = "format-and-lint"
	TypecheckHookName = "typecheck-on-stop"
)

// enterWorkspace changes into dir when it is set.
func enterWorkspace(dir string, debug bool, deps *Dependencies) error {
	if dir == "" {
		return nil
	}
	if debug {
		_, _ = fmt.Fprintf(deps.Stderr, "Changing to workspace %s\n", dir)
	}
	if err := deps.FS.Chdir(dir); err != nil {
		return fmt.Errorf("enter workspace: %w", err)
	}
	return nil
}

// reportHookError prints the catch-all diagnostic and returns the failure code.
func reportHookError(hookName string, err error, stderr OutputWriter) int {
	_, _ = fmt.Fprintln(stderr, shared.Failure("Error in %s hook: %v", hookName, err))
	return ExitCodeShowMessage
}

// recoverHook converts a panic in a hook body into the failure exit code.
// It must be deferred directly by the hook entry point.
func recoverHook(hookName string, stderr OutputWriter, exitCode *int) {
	if r := recover(); r != nil {
		*exitCode = reportHookError(hookName, fmt.Errorf("panic: %v", r), stderr)
	}
}

// acquireLock tries to acquire the lock for the hook.
func acquireLock(lockMgr *LockManager, debug bool, stderr OutputWriter) bool {
	acquired, err := lockMgr.TryAcquire()
	if err != nil {
		if debug {
			_, _ = fmt.Fprintf(stderr, "Error acquiring lock: %v\n", err)
		}
		return false
	}
	if !acquired {
		if debug {
			_, _ = fmt.Fprintf(stderr, "Another instance is running or in cooldown\n")
		}
		return false
	}
	return true
}

// knownTools maps executable names to the labels used in messages.
var knownTools = map[string]string{
	"prettier": "Prettier",
	"eslint":   "ESLint",
	"biome":    "Biome",
	"dprint":   "dprint",
	"tsc":      "TypeScript",
	"vue-tsc":  "vue-tsc",
}

// toolRunners are launchers whose first positional argument names the real tool.
var toolRunners = map[string]bool{
	"npx":  true,
	"pnpm": true,
	"yarn": true,
	"bunx": true,
	"bun":  true,
	"exec": true,
	"dlx":  true,
	"run":  true,
}

// ToolLabel derives a human-readable tool name from an argv vector,
// looking through launchers such as npx or "pnpm exec".
func ToolLabel(argv []string) string {
	for _, arg := range argv {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		base := filepath.Base(arg)
		if toolRunners[base] {
			continue
		}
		if label, ok := knownTools[base]; ok {
			return label
		}
		return base
	}
	if len(argv) > 0 {
		return filepath.Base(argv[0])
	}
	return "command"
}
