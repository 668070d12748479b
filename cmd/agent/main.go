package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"coding-agent/internal/di"
	"coding-agent/internal/infrastructure/config"
	"coding-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if v := envService.Get("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := envService.Get("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	container, err := di.NewContainer(di.Config{
		APIKey:            envService.MustGet("OPENAI_API_KEY"),
		Model:             cfg.Model,
		BaseURL:           cfg.BaseURL,
		Temperature:       cfg.Temperature,
		MaxIterations:     cfg.MaxIterations,
		MaxObservationLen: cfg.MaxObservationLen,
		CommandTimeout:    time.Duration(cfg.CommandTimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	fmt.Println("Coding Agent (type 'quit' to exit)")
	fmt.Println(strings.Repeat("-", 40))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nYou: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			log.Fatalf("Failed to read input: %v", err)
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		switch strings.ToLower(query) {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		}

		runQuery(container, query)
	}
}

// runQuery executes one agent run. A failed run only kills the query, not the
// process; the REPL keeps prompting.
func runQuery(container *di.Container, query string) {
	ctx := context.Background()

	container.Console.ShowQueryHeader(ctx, query)
	container.Logger.Info("query received", "query", query)

	if _, err := container.TaskExecutor.Execute(ctx, query); err != nil {
		container.Logger.Error("query failed", "error", err)
		container.Console.ShowFailure(ctx, err)
	}
}
