package tool

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"coding-agent/internal/application/port/output"
	"coding-agent/internal/domain/entity"
)

const maxSearchMatches = 50

type SearchCodeTool struct {
	logger output.LoggerPort
}

var _ output.ToolPort = (*SearchCodeTool)(nil)

func NewSearchCodeTool(logger output.LoggerPort) *SearchCodeTool {
	return &SearchCodeTool{logger: logger}
}

func (t *SearchCodeTool) Name() entity.ToolName { return entity.ToolSearchCode }

func (t *SearchCodeTool) Description() string {
	return "Search for a pattern in code files."
}

func (t *SearchCodeTool) InputFormat() string {
	return "pattern|||directory_path|||file_extension (separated by |||, last two are optional)"
}

func (t *SearchCodeTool) Execute(ctx context.Context, input string) (string, error) {
	pattern, root, extension := splitSearchInput(input)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return fmt.Sprintf("Error: Directory '%s' does not exist", root), nil
	} else if err != nil {
		return fmt.Sprintf("Error searching code: %v", err), nil
	}

	lowered := strings.ToLower(pattern)
	var matches []string
	scanned := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		hidden := strings.HasPrefix(d.Name(), ".") && path != root
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		if extension != "" && !strings.HasSuffix(d.Name(), extension) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			// Unreadable or binary files do not count as scanned.
			return nil
		}
		scanned++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), lowered) {
				matches = append(matches, fmt.Sprintf("%s:%d: %s", rel, i+1, strings.TrimSpace(line)))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Sprintf("Error searching code: %v", err), nil
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No matches found for '%s' in %d files", pattern, scanned), nil
	}
	if len(matches) > maxSearchMatches {
		return strings.Join(matches[:maxSearchMatches], "\n") +
			fmt.Sprintf("\n... (%d more matches)", len(matches)-maxSearchMatches), nil
	}
	return strings.Join(matches, "\n"), nil
}

func splitSearchInput(input string) (pattern, root, extension string) {
	parts := strings.SplitN(input, Delimiter, 3)
	pattern = parts[0]
	root = "."
	if len(parts) > 1 && parts[1] != "" {
		root = parts[1]
	}
	if len(parts) > 2 {
		extension = parts[2]
	}
	return pattern, root, extension
}
