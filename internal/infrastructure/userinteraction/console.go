package userinteraction

import (
	"context"
	"fmt"
	"strings"

	"coding-agent/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*Console)(nil)

// Console renders agent steps to stdout as the loop runs.
type Console struct{}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) ShowStart(ctx context.Context, content string) {
	magenta := color.New(color.FgMagenta)
	magenta.Printf("🔥 %s\n", content)
}

func (c *Console) ShowPlan(ctx context.Context, content string) {
	cyan := color.New(color.FgCyan)
	cyan.Printf("🧠 %s\n", content)
}

func (c *Console) ShowToolStart(ctx context.Context, toolName, input string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("🔧 Calling: %s(%s)\n", toolName, truncate(input, 50))
}

func (c *Console) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Printf("❌ %s\n", truncate(result, 300))
		return
	}
	dim := color.New(color.Faint)
	dim.Printf("🔧 Result: %s\n", truncate(result, 200))
}

func (c *Console) ShowOutput(ctx context.Context, content string) {
	green := color.New(color.FgGreen)
	green.Printf("🤖 %s\n", content)
}

// ShowFailure reports a query that died before producing an OUTPUT step.
func (c *Console) ShowFailure(ctx context.Context, err error) {
	red := color.New(color.FgRed)
	red.Printf("❌ %v\n", err)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ShowQueryHeader prints the banner that frames one query run.
func (c *Console) ShowQueryHeader(ctx context.Context, query string) {
	line := strings.Repeat("=", 50)
	fmt.Printf("\n%s\n", line)
	fmt.Printf("User Query: %s\n", query)
	fmt.Printf("%s\n\n", line)
}
