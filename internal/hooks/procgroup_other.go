//go:build !unix

package hooks

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills only cmd's
// process. WaitDelay still bounds the wait on inherited pipes.
func killProcessGroup(_ *exec.Cmd) {}
