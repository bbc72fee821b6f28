package shared

// DebugEnvVar enables debug diagnostics on stderr when set to "1".
const DebugEnvVar = "CLAUDE_HOOKS_DEBUG"
