package entity

import "encoding/json"

// StepKind discriminates the four structured replies the model may produce.
type StepKind string

const (
	StepStart  StepKind = "START"
	StepPlan   StepKind = "PLAN"
	StepTool   StepKind = "TOOL"
	StepOutput StepKind = "OUTPUT"
)

// Step is one structured unit of model output. Kind selects which fields are
// meaningful: Content for START/PLAN/OUTPUT, Tool and Input for TOOL.
// Consumers must switch on Kind exhaustively.
type Step struct {
	Kind    StepKind
	Content string
	Tool    ToolName
	Input   string
}

// Observation reports a tool result back to the model. It is generated by the
// executor, never by the model, and is appended to the transcript as a user
// message immediately after the TOOL step that triggered it.
type Observation struct {
	Step   string `json:"step"`
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func NewObservation(tool ToolName, input, output string) Observation {
	return Observation{
		Step:   "OBSERVE",
		Tool:   tool.String(),
		Input:  input,
		Output: output,
	}
}

func (o Observation) Marshal() (string, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
