package output

import (
	"context"

	"coding-agent/internal/domain/entity"
)

// LLMPort asks the model for the next protocol step given the transcript so
// far. The reply is constrained to the four-variant step schema; Raw carries
// the unparsed assistant text for transcript bookkeeping.
type LLMPort interface {
	NextStep(ctx context.Context, req StepRequest) (*StepResponse, error)
}

type StepRequest struct {
	Messages    []entity.Message
	Temperature float32
}

type StepResponse struct {
	Step entity.Step
	Raw  string
}
