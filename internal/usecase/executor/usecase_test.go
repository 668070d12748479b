package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"coding-agent/internal/application/port/output"
	"coding-agent/internal/application/service"
	"coding-agent/internal/domain/entity"
)

type scriptedLLM struct {
	steps    []entity.Step
	err      error
	calls    int
	requests [][]entity.Message
}

func (s *scriptedLLM) NextStep(ctx context.Context, req output.StepRequest) (*output.StepResponse, error) {
	s.requests = append(s.requests, append([]entity.Message(nil), req.Messages...))
	if s.calls >= len(s.steps) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, errors.New("script exhausted")
	}
	step := s.steps[s.calls]
	s.calls++
	return &output.StepResponse{
		Step: step,
		Raw:  fmt.Sprintf(`{"step":%q}`, step.Kind),
	}, nil
}

type stubTool struct {
	name      entity.ToolName
	result    string
	calls     int
	lastInput string
}

func (t *stubTool) Name() entity.ToolName { return t.name }
func (t *stubTool) Description() string   { return "stub" }
func (t *stubTool) InputFormat() string   { return "string" }
func (t *stubTool) Execute(ctx context.Context, input string) (string, error) {
	t.calls++
	t.lastInput = input
	return t.result, nil
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                 {}
func (nopLogger) Info(msg string, args ...any)                  {}
func (nopLogger) Warn(msg string, args ...any)                  {}
func (nopLogger) Error(msg string, args ...any)                 {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

type nopConsole struct{}

func (nopConsole) ShowStart(context.Context, string)                    {}
func (nopConsole) ShowPlan(context.Context, string)                     {}
func (nopConsole) ShowToolStart(context.Context, string, string)        {}
func (nopConsole) ShowToolResult(context.Context, string, string, bool) {}
func (nopConsole) ShowOutput(context.Context, string)                   {}

func newTestUseCase(llm output.LLMPort, tools output.ToolRegistry, cfg Config) *UseCase {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = "test system prompt"
	}
	return New(llm, tools, nopLogger{}, nopConsole{}, cfg)
}

func TestExecute_ScriptedRun(t *testing.T) {
	listTool := &stubTool{name: entity.ToolListFiles, result: "[FILE] main.go (10 bytes)"}
	tools := service.NewToolRegistry()
	tools.Register(listTool)

	llm := &scriptedLLM{steps: []entity.Step{
		{Kind: entity.StepStart, Content: "User wants a listing"},
		{Kind: entity.StepPlan, Content: "Use list_files"},
		{Kind: entity.StepTool, Tool: entity.ToolListFiles, Input: "."},
		{Kind: entity.StepPlan, Content: "Summarize"},
		{Kind: entity.StepOutput, Content: "done"},
	}}

	uc := newTestUseCase(llm, tools, Config{MaxIterations: DefaultMaxIterations})

	result, err := uc.Execute(context.Background(), "list the files")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FinalAnswer != "done" {
		t.Errorf("Expected final answer 'done', got %q", result.FinalAnswer)
	}
	if result.Iterations != 5 {
		t.Errorf("Expected 5 iterations, got %d", result.Iterations)
	}
	if listTool.calls != 1 {
		t.Errorf("Expected exactly one tool invocation, got %d", listTool.calls)
	}
	if listTool.lastInput != "." {
		t.Errorf("Expected tool input '.', got %q", listTool.lastInput)
	}

	// The final request carries the whole transcript: system + user query,
	// three assistant replies, one observation, one more assistant reply.
	final := llm.requests[len(llm.requests)-1]
	if len(final) != 7 {
		t.Fatalf("Expected 7 transcript messages, got %d", len(final))
	}

	obsMsg := final[5]
	if obsMsg.Role != entity.RoleUser {
		t.Errorf("Expected observation with user role, got %q", obsMsg.Role)
	}
	var obs entity.Observation
	if err := json.Unmarshal([]byte(obsMsg.Content), &obs); err != nil {
		t.Fatalf("Observation is not valid JSON: %v", err)
	}
	if obs.Step != "OBSERVE" || obs.Tool != "list_files" || obs.Input != "." {
		t.Errorf("Unexpected observation header: %+v", obs)
	}
	if obs.Output != "[FILE] main.go (10 bytes)" {
		t.Errorf("Unexpected observation output: %q", obs.Output)
	}
}

func TestExecute_UnknownToolContinues(t *testing.T) {
	tools := service.NewToolRegistry()

	llm := &scriptedLLM{steps: []entity.Step{
		{Kind: entity.StepStart, Content: "start"},
		{Kind: entity.StepTool, Tool: "bogus_tool", Input: "x"},
		{Kind: entity.StepOutput, Content: "recovered"},
	}}

	uc := newTestUseCase(llm, tools, Config{MaxIterations: DefaultMaxIterations})

	result, err := uc.Execute(context.Background(), "do something")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FinalAnswer != "recovered" {
		t.Errorf("Expected loop to continue past unknown tool, got %q", result.FinalAnswer)
	}

	final := llm.requests[len(llm.requests)-1]
	var obs entity.Observation
	if err := json.Unmarshal([]byte(final[len(final)-1].Content), &obs); err != nil {
		t.Fatalf("Observation is not valid JSON: %v", err)
	}
	if obs.Output != "Error: unknown tool 'bogus_tool'" {
		t.Errorf("Unexpected observation output: %q", obs.Output)
	}
}

func TestExecute_ProviderErrorAborts(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("connection refused")}
	uc := newTestUseCase(llm, service.NewToolRegistry(), Config{MaxIterations: DefaultMaxIterations})

	_, err := uc.Execute(context.Background(), "anything")
	if err == nil {
		t.Fatal("Expected error from provider failure")
	}
	if !strings.Contains(err.Error(), "failed to get response from LLM") {
		t.Errorf("Unexpected error: %v", err)
	}
	if llm.calls != 0 {
		t.Errorf("Expected no successful steps, got %d", llm.calls)
	}
}

func TestExecute_StepCeiling(t *testing.T) {
	steps := make([]entity.Step, 10)
	for i := range steps {
		steps[i] = entity.Step{Kind: entity.StepPlan, Content: "thinking"}
	}
	llm := &scriptedLLM{steps: steps}

	uc := newTestUseCase(llm, service.NewToolRegistry(), Config{MaxIterations: 3})

	_, err := uc.Execute(context.Background(), "loop forever")
	if err == nil || !strings.Contains(err.Error(), "max iterations") {
		t.Fatalf("Expected max iterations error, got %v", err)
	}
	if llm.calls != 3 {
		t.Errorf("Expected 3 model calls, got %d", llm.calls)
	}
}

func TestExecute_ObservationTruncated(t *testing.T) {
	bigTool := &stubTool{name: entity.ToolReadFile, result: strings.Repeat("x", 100)}
	tools := service.NewToolRegistry()
	tools.Register(bigTool)

	llm := &scriptedLLM{steps: []entity.Step{
		{Kind: entity.StepTool, Tool: entity.ToolReadFile, Input: "big.txt"},
		{Kind: entity.StepOutput, Content: "ok"},
	}}

	uc := newTestUseCase(llm, tools, Config{MaxIterations: 10, MaxObservationLen: 10})

	if _, err := uc.Execute(context.Background(), "read it"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	final := llm.requests[len(llm.requests)-1]
	var obs entity.Observation
	if err := json.Unmarshal([]byte(final[len(final)-1].Content), &obs); err != nil {
		t.Fatalf("Observation is not valid JSON: %v", err)
	}
	if obs.Output != strings.Repeat("x", 10)+"\n... (truncated)" {
		t.Errorf("Unexpected truncated output: %q", obs.Output)
	}
}
