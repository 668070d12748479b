package di

import (
	"fmt"
	"time"

	"coding-agent/internal/adapter/tool"
	"coding-agent/internal/application/port/input"
	"coding-agent/internal/application/port/output"
	"coding-agent/internal/application/service"
	"coding-agent/internal/infrastructure/llm/openaiclient"
	"coding-agent/internal/infrastructure/logger"
	"coding-agent/internal/infrastructure/prompts"
	"coding-agent/internal/infrastructure/userinteraction"
	"coding-agent/internal/usecase/executor"
)

type Container struct {
	LLM          output.LLMPort
	Logger       output.LoggerPort
	Tools        output.ToolRegistry
	Console      *userinteraction.Console
	TaskExecutor input.TaskExecutor
}

type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Temperature       float32
	MaxIterations     int
	MaxObservationLen int
	CommandTimeout    time.Duration
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openaiclient.DefaultConfig(cfg.APIKey, cfg.Model)
	llmCfg.BaseURL = cfg.BaseURL
	llmCfg.Logger = log
	llm := openaiclient.NewAdapter(llmCfg)

	tools := service.NewToolRegistry()
	registerCodingTools(tools, log, cfg.CommandTimeout)

	systemPrompt, err := prompts.GenerateSystemPrompt(tools.Definitions())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to generate system prompt: %w", err)
	}

	console := userinteraction.NewConsole()

	uc := executor.New(llm, tools, log, console, executor.Config{
		SystemPrompt:      systemPrompt,
		Temperature:       cfg.Temperature,
		MaxIterations:     cfg.MaxIterations,
		MaxObservationLen: cfg.MaxObservationLen,
	})

	return &Container{
		LLM:          llm,
		Logger:       log,
		Tools:        tools,
		Console:      console,
		TaskExecutor: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func registerCodingTools(registry *service.ToolRegistryImpl, log output.LoggerPort, commandTimeout time.Duration) {
	registry.Register(tool.NewReadFileTool(log))
	registry.Register(tool.NewWriteFileTool(log))
	registry.Register(tool.NewCreateDirectoryTool(log))
	registry.Register(tool.NewListFilesTool(log))
	registry.Register(tool.NewExecuteCommandTool(log, commandTimeout))
	registry.Register(tool.NewSearchCodeTool(log))
}
