// Package main implements the typecheck-on-stop Stop hook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/hooks"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

func main() {
	os.Exit(run())
}

func run() int {
	debug := os.Getenv(shared.DebugEnvVar) == "1"

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, shared.Failure("Error in %s hook: %v", hooks.TypecheckHookName, err))
		return hooks.ExitCodeShowMessage
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return hooks.RunTypecheckHook(ctx, cfg, debug, nil)
}
