package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"coding-agent/internal/application/port/output"
	"coding-agent/internal/domain/entity"
)

const DefaultCommandTimeout = 30 * time.Second

// dangerousKeywords is a coarse case-insensitive substring denylist. It both
// over-blocks (any command containing "dd") and under-blocks; it is a speed
// bump, not a security boundary.
var dangerousKeywords = []string{"rm -rf /", "dd", "mkfs", "format", ":(){:|:&};:"}

type ExecuteCommandTool struct {
	logger  output.LoggerPort
	timeout time.Duration
}

var _ output.ToolPort = (*ExecuteCommandTool)(nil)

func NewExecuteCommandTool(logger output.LoggerPort, timeout time.Duration) *ExecuteCommandTool {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &ExecuteCommandTool{logger: logger, timeout: timeout}
}

func (t *ExecuteCommandTool) Name() entity.ToolName { return entity.ToolExecuteCommand }

func (t *ExecuteCommandTool) Description() string {
	return "Execute a shell command."
}

func (t *ExecuteCommandTool) InputFormat() string {
	return "command (string)"
}

func (t *ExecuteCommandTool) Execute(ctx context.Context, input string) (string, error) {
	command := input

	lowered := strings.ToLower(command)
	for _, keyword := range dangerousKeywords {
		if strings.Contains(lowered, keyword) {
			if t.logger != nil {
				t.logger.Warn("command blocked by denylist", "command", command, "keyword", keyword)
			}
			return "Error: Command blocked for safety reasons", nil
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("Error: Command timed out after %d seconds", int(t.timeout.Seconds())), nil
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return fmt.Sprintf("Error executing command: %v", err), nil
		}
	}

	var sections []string
	if stdout.Len() > 0 {
		sections = append(sections, "STDOUT:\n"+stdout.String())
	}
	if stderr.Len() > 0 {
		sections = append(sections, "STDERR:\n"+stderr.String())
	}
	if exitCode != 0 {
		sections = append(sections, fmt.Sprintf("Exit code: %d", exitCode))
	}
	if len(sections) == 0 {
		return "(No output)", nil
	}
	return strings.Join(sections, "\n"), nil
}
