package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cc-ts-hooks/internal/config"
	"github.com/Veraticus/cc-ts-hooks/internal/hooks"
	"github.com/Veraticus/cc-ts-hooks/internal/output"
	"github.com/Veraticus/cc-ts-hooks/internal/shared"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   "Show the effective configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Show the effective configuration.

Settings come from built-in defaults, then the first config.toml or
config.yaml found in /etc/cc-ts-hooks, $XDG_CONFIG_HOME/cc-ts-hooks or the
current directory, then CC_TS_HOOKS_* environment variables. The workspace
also honors CLAUDE_WORKSPACE_DIR and --workspace.

Each external program is resolved on PATH so missing tools show up before
a hook runs.`,
		Example: `  cc-ts-hooks config
  CC_TS_HOOKS_HOOKS_TYPECHECK_TIMEOUT_SECONDS=120 cc-ts-hooks config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderConfig(cfg, opts.dependencies(cmd).Runner))
			return err
		},
	}
}

// renderConfig formats cfg as titled sections followed by tool availability.
func renderConfig(cfg *config.Config, runner hooks.CommandRunner) string {
	l := output.NewListRenderer()

	source := cfg.File
	if source == "" {
		source = "(defaults and environment)"
	}
	workspace := cfg.WorkspaceDir
	if workspace == "" {
		workspace = "(current directory)"
	}

	fc := cfg.Hooks.Format
	tc := cfg.Hooks.Typecheck

	var sb strings.Builder
	sb.WriteString(l.RenderMap("General", map[string]string{
		"config_file":   source,
		"workspace_dir": workspace,
	}))
	sb.WriteString("\n")
	sb.WriteString(l.RenderMap("Format hook", map[string]string{
		"formatter":         strings.Join(fc.Formatter, " "),
		"linter":            strings.Join(fc.Linter, " "),
		"timeout_seconds":   strconv.Itoa(fc.TimeoutSeconds),
		"format_extensions": strings.Join(fc.FormatExtensions, " "),
		"lint_extensions":   strings.Join(fc.LintExtensions, " "),
		"lock":              strconv.FormatBool(fc.Lock),
		"cooldown_seconds":  strconv.Itoa(fc.CooldownSeconds),
	}))
	sb.WriteString("\n")
	sb.WriteString(l.RenderMap("Typecheck hook", map[string]string{
		"diff":                 strings.Join(tc.Diff, " "),
		"untracked":            strings.Join(tc.Untracked, " "),
		"checker":              strings.Join(tc.Checker, " "),
		"diff_timeout_seconds": strconv.Itoa(tc.DiffTimeoutSeconds),
		"timeout_seconds":      strconv.Itoa(tc.TimeoutSeconds),
		"extensions":           strings.Join(tc.Extensions, " "),
		"include_untracked":    strconv.FormatBool(tc.IncludeUntracked),
		"lock":                 strconv.FormatBool(tc.Lock),
		"cooldown_seconds":     strconv.Itoa(tc.CooldownSeconds),
	}))
	sb.WriteString("\n")
	sb.WriteString(l.Render("Tools", toolStatus(cfg, runner)))

	return sb.String()
}

// toolStatus resolves each distinct program named in cfg on PATH.
func toolStatus(cfg *config.Config, runner hooks.CommandRunner) []string {
	argvs := [][]string{
		cfg.Hooks.Format.Formatter,
		cfg.Hooks.Format.Linter,
		cfg.Hooks.Typecheck.Diff,
		cfg.Hooks.Typecheck.Checker,
	}
	if cfg.Hooks.Typecheck.IncludeUntracked {
		argvs = append(argvs, cfg.Hooks.Typecheck.Untracked)
	}

	seen := make(map[string]bool)
	var lines []string
	for _, argv := range argvs {
		if len(argv) == 0 || seen[argv[0]] {
			continue
		}
		seen[argv[0]] = true

		path, err := runner.LookPath(argv[0])
		if err != nil {
			lines = append(lines, shared.ErrorStyle.Render(argv[0]+": not found"))
			continue
		}
		lines = append(lines, argv[0]+": "+shared.DebugStyle.Render(path))
	}
	return lines
}
