package output

import (
	"context"

	"coding-agent/internal/domain/entity"
)

// ToolPort is a single named operation the model may invoke. Input is one
// pre-packed string; compound inputs use the ||| delimiter documented by
// InputFormat. Execute encodes its own failures into the result string, so a
// non-nil error is reserved for faults the tool could not convert itself.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	InputFormat() string
	Execute(ctx context.Context, input string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
