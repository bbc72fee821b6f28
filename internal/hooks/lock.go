package hooks

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strconv"
)

const lockFileMode = 0600 // Read/write for owner only

// LockManager serializes runs of one hook against one key and enforces a
// cooldown after each completed run.
type LockManager struct {
	lockFile     string
	pid          int
	cooldownSecs int
	deps         *Dependencies
}

// NewLockManager creates a lock manager for hookName scoped to key.
// key is the workspace for the typecheck hook and the file for the format hook.
func NewLockManager(key, hookName string, cooldownSecs int, deps *Dependencies) *LockManager {
	if deps == nil {
		deps = NewDefaultDependencies()
	}

	hash := sha256.Sum256([]byte(key))
	lockFileName := fmt.Sprintf("cc-ts-hooks-%s-%x.lock", hookName, hash[:8])

	return &LockManager{
		lockFile:     filepath.Join(deps.FS.TempDir(), lockFileName),
		pid:          deps.Process.GetPID(),
		cooldownSecs: cooldownSecs,
		deps:         deps,
	}
}

// Path returns the lock file location.
func (l *LockManager) Path() string {
	return l.lockFile
}

// TryAcquire attempts to acquire the lock.
// Returns true if lock acquired, false if another process has it or cooldown active.
func (l *LockManager) TryAcquire() (bool, error) {
	data, err := l.deps.FS.ReadFile(l.lockFile)
	if err == nil {
		if l.heldByOther(splitLockLines(string(data))) {
			return false, nil
		}
	}

	content := fmt.Sprintf("%d\n", l.pid)
	if writeErr := l.deps.FS.WriteFile(l.lockFile, []byte(content), lockFileMode); writeErr != nil {
		return false, fmt.Errorf("writing lock file: %w", writeErr)
	}

	return true, nil
}

// heldByOther reports whether a live holder or an unexpired cooldown blocks us.
func (l *LockManager) heldByOther(lines []string) bool {
	if len(lines) >= 1 && lines[0] != "" {
		pid, pidErr := strconv.Atoi(lines[0])
		if pidErr == nil && pid != l.pid && l.deps.Process.ProcessExists(pid) {
			return true
		}
	}

	if len(lines) >= 2 && lines[1] != "" {
		completionTime, parseErr := strconv.ParseInt(lines[1], 10, 64)
		if parseErr == nil {
			timeSinceCompletion := l.deps.Clock.Now().Unix() - completionTime
			if timeSinceCompletion < int64(l.cooldownSecs) {
				return true
			}
		}
	}

	return false
}

// Release releases the lock and starts the cooldown period.
func (l *LockManager) Release() error {
	content := fmt.Sprintf("\n%d\n", l.deps.Clock.Now().Unix())
	if err := l.deps.FS.WriteFile(l.lockFile, []byte(content), lockFileMode); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// splitLockLines splits lock file content into lines, handling both \n and \r\n.
// Unlike SplitLines it keeps empty lines, which carry meaning in the lock format.
func splitLockLines(s string) []string {
	var lines []string
	var current []byte

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, string(current))
			current = nil
		} else if s[i] != '\r' {
			current = append(current, s[i])
		}
	}

	if len(current) > 0 {
		lines = append(lines, string(current))
	}

	return lines
}
