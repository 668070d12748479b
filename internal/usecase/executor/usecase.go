package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coding-agent/internal/application/port/input"
	"coding-agent/internal/application/port/output"
	"coding-agent/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const (
	DefaultMaxIterations     = 50
	DefaultMaxObservationLen = 20000
)

// Config tunes one executor instance. MaxIterations of 0 disables the step
// ceiling entirely.
type Config struct {
	SystemPrompt      string
	Temperature       float32
	MaxIterations     int
	MaxObservationLen int
}

// UseCase drives the START -> PLAN -> TOOL -> OBSERVE -> OUTPUT protocol for
// one query at a time. The transcript lives only for the duration of Execute.
type UseCase struct {
	llm     output.LLMPort
	tools   output.ToolRegistry
	logger  output.LoggerPort
	console output.UserInteractionPort
	cfg     Config
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	console output.UserInteractionPort,
	cfg Config,
) *UseCase {
	return &UseCase{
		llm:     llm,
		tools:   tools,
		logger:  logger,
		console: console,
		cfg:     cfg,
	}
}

func (uc *UseCase) Execute(ctx context.Context, query string) (*input.ExecuteResult, error) {
	runLogger := uc.logger.WithField("run_id", uuid.NewString())
	runLogger.Info("agent run started", "query", query)
	start := time.Now()

	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.cfg.SystemPrompt},
		{Role: entity.RoleUser, Content: query},
	}

	for iteration := 1; uc.cfg.MaxIterations == 0 || iteration <= uc.cfg.MaxIterations; iteration++ {
		runLogger.Debug("requesting next step", "iteration", iteration, "messages", len(messages))

		resp, err := uc.llm.NextStep(ctx, output.StepRequest{
			Messages:    messages,
			Temperature: uc.cfg.Temperature,
		})
		if err != nil {
			runLogger.Error("llm request failed", "iteration", iteration, "error", err)
			return nil, fmt.Errorf("failed to get response from LLM: %w", err)
		}

		messages = append(messages, entity.Message{
			Role:    entity.RoleAssistant,
			Content: resp.Raw,
		})

		step := resp.Step
		switch step.Kind {
		case entity.StepStart:
			uc.console.ShowStart(ctx, step.Content)

		case entity.StepPlan:
			uc.console.ShowPlan(ctx, step.Content)

		case entity.StepTool:
			observation := uc.executeTool(ctx, runLogger, step)

			payload, err := entity.NewObservation(step.Tool, step.Input, observation).Marshal()
			if err != nil {
				return nil, fmt.Errorf("marshal observation: %w", err)
			}
			messages = append(messages, entity.Message{
				Role:    entity.RoleUser,
				Content: payload,
			})

		case entity.StepOutput:
			uc.console.ShowOutput(ctx, step.Content)
			runLogger.Info("agent run completed",
				"iterations", iteration,
				"durationMs", time.Since(start).Milliseconds())
			return &input.ExecuteResult{
				FinalAnswer: step.Content,
				Iterations:  iteration,
			}, nil

		default:
			return nil, fmt.Errorf("unknown step kind %q", step.Kind)
		}
	}

	runLogger.Error("step ceiling exceeded", "maxIterations", uc.cfg.MaxIterations)
	return nil, fmt.Errorf("max iterations (%d) exceeded without OUTPUT step", uc.cfg.MaxIterations)
}

// executeTool resolves and runs one TOOL step. Failures never propagate; they
// become the observation text so the model can react to them.
func (uc *UseCase) executeTool(ctx context.Context, log output.LoggerPort, step entity.Step) string {
	uc.console.ShowToolStart(ctx, step.Tool.String(), step.Input)

	tool, ok := uc.tools.Get(step.Tool)
	if !ok {
		log.Warn("unknown tool called", "name", step.Tool)
		result := fmt.Sprintf("Error: unknown tool '%s'", step.Tool)
		uc.console.ShowToolResult(ctx, step.Tool.String(), result, true)
		return result
	}

	start := time.Now()
	result, err := tool.Execute(ctx, step.Input)
	if err != nil {
		log.Error("tool execution failed", "name", step.Tool, "error", err)
		result = "Error executing tool: " + err.Error()
	}

	if uc.cfg.MaxObservationLen > 0 && len(result) > uc.cfg.MaxObservationLen {
		result = result[:uc.cfg.MaxObservationLen] + "\n... (truncated)"
	}

	isError := err != nil || strings.HasPrefix(result, "Error")
	uc.console.ShowToolResult(ctx, step.Tool.String(), result, isError)
	log.Info("tool completed",
		"name", step.Tool,
		"durationMs", time.Since(start).Milliseconds(),
		"resultLen", len(result),
		"isError", isError)

	return result
}
