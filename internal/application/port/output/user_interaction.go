package output

import "context"

// UserInteractionPort renders agent progress to the user as the loop runs.
type UserInteractionPort interface {
	ShowStart(ctx context.Context, content string)
	ShowPlan(ctx context.Context, content string)
	ShowToolStart(ctx context.Context, toolName, input string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
	ShowOutput(ctx context.Context, content string)
}
