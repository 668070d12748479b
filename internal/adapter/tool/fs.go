package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"coding-agent/internal/application/port/output"
	"coding-agent/internal/domain/entity"
)

// Delimiter separates fields of compound tool inputs.
const Delimiter = "|||"

type ReadFileTool struct {
	logger output.LoggerPort
}

var _ output.ToolPort = (*ReadFileTool)(nil)

func NewReadFileTool(logger output.LoggerPort) *ReadFileTool {
	return &ReadFileTool{logger: logger}
}

func (t *ReadFileTool) Name() entity.ToolName { return entity.ToolReadFile }

func (t *ReadFileTool) Description() string {
	return "Read the contents of a file."
}

func (t *ReadFileTool) InputFormat() string {
	return "file_path (string)"
}

func (t *ReadFileTool) Execute(ctx context.Context, input string) (string, error) {
	path := input

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Error: File '%s' does not exist", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err), nil
	}
	if !info.Mode().IsRegular() {
		return fmt.Sprintf("Error: '%s' is not a file", path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err), nil
	}
	if !utf8.Valid(data) {
		return fmt.Sprintf("Error reading file: '%s' is not valid UTF-8 text", path), nil
	}
	if len(data) == 0 {
		return "(Empty file)", nil
	}
	return string(data), nil
}

type WriteFileTool struct {
	logger output.LoggerPort
}

var _ output.ToolPort = (*WriteFileTool)(nil)

func NewWriteFileTool(logger output.LoggerPort) *WriteFileTool {
	return &WriteFileTool{logger: logger}
}

func (t *WriteFileTool) Name() entity.ToolName { return entity.ToolWriteFile }

func (t *WriteFileTool) Description() string {
	return "Write content to a file (creates or overwrites)."
}

func (t *WriteFileTool) InputFormat() string {
	return "file_path|||content (separated by |||)"
}

func (t *WriteFileTool) Execute(ctx context.Context, input string) (string, error) {
	parts := strings.SplitN(input, Delimiter, 2)
	if len(parts) != 2 {
		return "Error writing file: expected input as file_path|||content", nil
	}
	path, content := parts[0], parts[1]

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Sprintf("Error writing file: %v", err), nil
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Sprintf("Error writing file: %v", err), nil
	}

	// Character count, not byte count.
	return fmt.Sprintf("Successfully wrote %d characters to '%s'", utf8.RuneCountInString(content), path), nil
}

type CreateDirectoryTool struct {
	logger output.LoggerPort
}

var _ output.ToolPort = (*CreateDirectoryTool)(nil)

func NewCreateDirectoryTool(logger output.LoggerPort) *CreateDirectoryTool {
	return &CreateDirectoryTool{logger: logger}
}

func (t *CreateDirectoryTool) Name() entity.ToolName { return entity.ToolCreateDirectory }

func (t *CreateDirectoryTool) Description() string {
	return "Create a new directory (and parent directories)."
}

func (t *CreateDirectoryTool) InputFormat() string {
	return "directory_path (string)"
}

func (t *CreateDirectoryTool) Execute(ctx context.Context, input string) (string, error) {
	path := input

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Sprintf("Directory '%s' already exists", path), nil
		}
		return fmt.Sprintf("Error: '%s' exists but is not a directory", path), nil
	}
	if !os.IsNotExist(err) {
		return fmt.Sprintf("Error creating directory: %v", err), nil
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Sprintf("Error creating directory: %v", err), nil
	}
	return fmt.Sprintf("Successfully created directory '%s'", path), nil
}

type ListFilesTool struct {
	logger output.LoggerPort
}

var _ output.ToolPort = (*ListFilesTool)(nil)

func NewListFilesTool(logger output.LoggerPort) *ListFilesTool {
	return &ListFilesTool{logger: logger}
}

func (t *ListFilesTool) Name() entity.ToolName { return entity.ToolListFiles }

func (t *ListFilesTool) Description() string {
	return "List files and directories."
}

func (t *ListFilesTool) InputFormat() string {
	return "directory_path (string, default \".\")"
}

func (t *ListFilesTool) Execute(ctx context.Context, input string) (string, error) {
	path := input
	if path == "" {
		path = "."
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Error: Directory '%s' does not exist", path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error listing directory: %v", err), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("Error: '%s' is not a directory", path), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Sprintf("Error listing directory: %v", err), nil
	}
	if len(entries) == 0 {
		return fmt.Sprintf("Directory '%s' is empty", path), nil
	}

	// ReadDir returns entries sorted by name.
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			lines = append(lines, fmt.Sprintf("[DIR]  %s/", entry.Name()))
			continue
		}
		var size int64
		if fi, err := entry.Info(); err == nil {
			size = fi.Size()
		}
		lines = append(lines, fmt.Sprintf("[FILE] %s (%d bytes)", entry.Name(), size))
	}
	return strings.Join(lines, "\n"), nil
}
