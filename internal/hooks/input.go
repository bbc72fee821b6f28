// Package hooks implements the format-and-lint and typecheck-on-stop agent hooks.
package hooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoInput is returned when stdin is a terminal and nothing was piped in.
var ErrNoInput = errors.New("no input provided")

var jsonNull = []byte("null")

// HookInput is the JSON payload an agent runtime pipes to a hook.
type HookInput struct {
	HookEventName  string          `json:"hook_event_name"`
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	CWD            string          `json:"cwd"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
}

// editToolInput is the subset of tool_input the hooks care about.
type editToolInput struct {
	FilePath string `json:"file_path"`
}

// FilePath returns tool_input.file_path. It is empty when tool_input or the
// field is absent. An error means tool_input is null or has the wrong shape.
func (h *HookInput) FilePath() (string, error) {
	raw := bytes.TrimSpace(h.ToolInput)
	if len(raw) == 0 {
		return "", nil
	}
	if bytes.Equal(raw, jsonNull) {
		return "", errors.New("parse tool_input: tool_input is null")
	}

	var ti editToolInput
	if err := json.Unmarshal(raw, &ti); err != nil {
		return "", fmt.Errorf("parse tool_input: %w", err)
	}
	return ti.FilePath, nil
}

// ReadHookInput reads and decodes the hook payload from reader.
func ReadHookInput(reader InputReader) (*HookInput, error) {
	if reader.IsTerminal() {
		return nil, ErrNoInput
	}

	data, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read hook input: %w", err)
	}

	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil, errors.New("parse hook input: payload is null")
	}

	var input HookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}
	return &input, nil
}
