package input

import "context"

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
}

// TaskExecutor runs one user query through the agent loop to completion.
type TaskExecutor interface {
	Execute(ctx context.Context, query string) (*ExecuteResult, error)
}
