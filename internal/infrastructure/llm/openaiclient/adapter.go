package openaiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"coding-agent/internal/application/port/output"
	"coding-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey: apiKey,
		Model:  model,
	}
}

func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// stepSchema constrains replies to the flattened four-variant step union.
// Strict mode requires every property listed under required, so the fields
// that do not apply to a variant are nullable instead of absent.
var stepSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"step": {
			"type": "string",
			"enum": ["START", "PLAN", "TOOL", "OUTPUT"]
		},
		"content": {"type": ["string", "null"]},
		"tool": {"type": ["string", "null"]},
		"input": {"type": ["string", "null"]}
	},
	"required": ["step", "content", "tool", "input"],
	"additionalProperties": false
}`)

func (a *Adapter) NextStep(ctx context.Context, req output.StepRequest) (*output.StepResponse, error) {
	if a.logger != nil {
		totalChars := 0
		for _, msg := range req.Messages {
			totalChars += len(msg.Content)
		}
		a.logger.Debug("requesting chat completion",
			"model", a.model,
			"messagesCount", len(req.Messages),
			"totalChars", totalChars)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "agent_step",
				Schema: stepSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	raw := resp.Choices[0].Message.Content
	step, err := parseStep(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid step response: %w", err)
	}

	return &output.StepResponse{Step: *step, Raw: raw}, nil
}

type stepPayload struct {
	Step    string  `json:"step"`
	Content *string `json:"content"`
	Tool    *string `json:"tool"`
	Input   *string `json:"input"`
}

func parseStep(raw string) (*entity.Step, error) {
	var payload stepPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}

	kind := entity.StepKind(strings.ToUpper(strings.TrimSpace(payload.Step)))
	switch kind {
	case entity.StepStart, entity.StepPlan, entity.StepOutput:
		if payload.Content == nil {
			return nil, fmt.Errorf("%s step missing content", kind)
		}
		return &entity.Step{Kind: kind, Content: *payload.Content}, nil
	case entity.StepTool:
		if payload.Tool == nil || *payload.Tool == "" {
			return nil, fmt.Errorf("TOOL step missing tool name")
		}
		var input string
		if payload.Input != nil {
			input = *payload.Input
		}
		return &entity.Step{Kind: entity.StepTool, Tool: entity.ToolName(*payload.Tool), Input: input}, nil
	default:
		return nil, fmt.Errorf("unknown step kind %q", payload.Step)
	}
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}
