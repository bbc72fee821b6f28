package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// mockFileSystem implements FileSystem for testing.
type mockFileSystem struct {
	statFunc      func(name string) (os.FileInfo, error)
	readFileFunc  func(name string) ([]byte, error)
	writeFileFunc func(name string, data []byte, perm os.FileMode) error
	tempDirFunc   func() string
	chdirFunc     func(dir string) error
}

func (m *mockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.statFunc != nil {
		return m.statFunc(name)
	}
	return nil, fmt.Errorf("stat %s: %w", name, fs.ErrNotExist)
}

func (m *mockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.readFileFunc != nil {
		return m.readFileFunc(name)
	}
	return nil, fmt.Errorf("read file %s: %w", name, fs.ErrNotExist)
}

func (m *mockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.writeFileFunc != nil {
		return m.writeFileFunc(name, data, perm)
	}
	return nil
}

func (m *mockFileSystem) TempDir() string {
	if m.tempDirFunc != nil {
		return m.tempDirFunc()
	}
	return "/tmp"
}

func (m *mockFileSystem) Chdir(dir string) error {
	if m.chdirFunc != nil {
		return m.chdirFunc(dir)
	}
	return nil
}

// existingFiles returns a statFunc that only knows the given paths.
func existingFiles(paths ...string) func(string) (os.FileInfo, error) {
	return func(name string) (os.FileInfo, error) {
		for _, p := range paths {
			if p == name {
				return fakeFileInfo{name: name}, nil
			}
		}
		return nil, fmt.Errorf("stat %s: %w", name, fs.ErrNotExist)
	}
}

type fakeFileInfo struct {
	name string
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0o644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

type commandCall struct {
	dir  string
	name string
	args []string
}

func (c commandCall) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// mockCommandRunner implements CommandRunner for testing.
type mockCommandRunner struct {
	runContextFunc func(ctx context.Context, dir, name string, args ...string) (*CommandOutput, error)
	lookPathFunc   func(file string) (string, error)
	calls          []commandCall
	mu             sync.Mutex
}

func (m *mockCommandRunner) RunContext(
	ctx context.Context,
	dir, name string,
	args ...string,
) (*CommandOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, commandCall{dir: dir, name: name, args: append([]string{}, args...)})
	m.mu.Unlock()

	if m.runContextFunc != nil {
		return m.runContextFunc(ctx, dir, name, args...)
	}
	return &CommandOutput{}, nil
}

func (m *mockCommandRunner) LookPath(file string) (string, error) {
	if m.lookPathFunc != nil {
		return m.lookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// commandLines returns every recorded call rendered as a command line.
func (m *mockCommandRunner) commandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		lines = append(lines, c.String())
	}
	return lines
}

// mockProcessManager implements ProcessManager for testing.
type mockProcessManager struct {
	getPIDFunc        func() int
	processExistsFunc func(pid int) bool
}

func (m *mockProcessManager) GetPID() int {
	if m.getPIDFunc != nil {
		return m.getPIDFunc()
	}
	return 12345
}

func (m *mockProcessManager) ProcessExists(pid int) bool {
	if m.processExistsFunc != nil {
		return m.processExistsFunc(pid)
	}
	return false
}

// mockClock implements Clock for testing.
type mockClock struct {
	nowFunc func() time.Time
}

func (m *mockClock) Now() time.Time {
	if m.nowFunc != nil {
		return m.nowFunc()
	}
	return time.Unix(1700000000, 0)
}

// mockInputReader implements InputReader for testing.
type mockInputReader struct {
	readAllFunc    func() ([]byte, error)
	isTerminalFunc func() bool
}

func (m *mockInputReader) ReadAll() ([]byte, error) {
	if m.readAllFunc != nil {
		return m.readAllFunc()
	}
	return nil, nil
}

func (m *mockInputReader) IsTerminal() bool {
	if m.isTerminalFunc != nil {
		return m.isTerminalFunc()
	}
	return false
}

// jsonInput returns an input reader that yields payload.
func jsonInput(payload string) *mockInputReader {
	return &mockInputReader{
		readAllFunc: func() ([]byte, error) { return []byte(payload), nil },
	}
}

// exitError mimics *exec.ExitError for a process that ran and exited non-zero.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e *exitError) ExitCode() int { return e.code }

// exitWith returns a runner error carrying exit status code.
func exitWith(name string, code int) error {
	return fmt.Errorf("run command %s: %w", name, &exitError{code: code})
}

// notFound returns the runner error for a program missing from PATH.
func notFound(name string) error {
	return fmt.Errorf("run command %s: %w", name, &exec.Error{Name: name, Err: exec.ErrNotFound})
}

// testDependencies bundles the mocks behind a Dependencies value.
type testDependencies struct {
	*Dependencies
	MockFS      *mockFileSystem
	MockRunner  *mockCommandRunner
	MockProcess *mockProcessManager
	MockClock   *mockClock
	MockInput   *mockInputReader
	StdoutBuf   *bytes.Buffer
	StderrBuf   *bytes.Buffer
}

func createTestDependencies() *testDependencies {
	td := &testDependencies{
		MockFS:      &mockFileSystem{},
		MockRunner:  &mockCommandRunner{},
		MockProcess: &mockProcessManager{},
		MockClock:   &mockClock{},
		MockInput:   &mockInputReader{},
		StdoutBuf:   &bytes.Buffer{},
		StderrBuf:   &bytes.Buffer{},
	}
	td.Dependencies = &Dependencies{
		FS:      td.MockFS,
		Runner:  td.MockRunner,
		Process: td.MockProcess,
		Clock:   td.MockClock,
		Input:   td.MockInput,
		Stdout:  td.StdoutBuf,
		Stderr:  td.StderrBuf,
	}
	return td
}

// withInput swaps in an input reader yielding payload.
func (td *testDependencies) withInput(payload string) *testDependencies {
	td.MockInput = jsonInput(payload)
	td.Input = td.MockInput
	return td
}
