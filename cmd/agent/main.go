package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pantry-ai/internal/adapter/embedding"
	"pantry-ai/internal/adapter/llm"
	"pantry-ai/internal/adapter/retriever"
	"pantry-ai/internal/adapter/tool"
	"pantry-ai/internal/domain"
	"pantry-ai/internal/infra/config"
	"pantry-ai/internal/infra/logger"
	"pantry-ai/internal/infra/tracer"
	"pantry-ai/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	// 1. Config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Logger & Tracer
	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser()

	ctx := context.Background()
	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer tracerShutdown(ctx)

	// 3. Embedding provider
	embedder := embedding.NewOllamaProvider(
		embedding.WithOllamaBaseURL(cfg.Retriever.Embedding.BaseURL),
		embedding.WithOllamaModel(cfg.Retriever.Embedding.Model),
	)

	// 4. Document store
	if err := os.MkdirAll(cfg.Retriever.DataDir, 0o755); err != nil {
		return fmt.Errorf("store: create data dir: %w", err)
	}
	store, err := retriever.New(filepath.Join(cfg.Retriever.DataDir, "inventory.db"), embedder, log)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer store.Close()

	// 5. Knowledge base
	if err := store.LoadKnowledgeBase(ctx, cfg.Retriever.KnowledgeDir); err != nil {
		return fmt.Errorf("knowledge base: %w", err)
	}

	// 6. LLM gateway
	generator := llm.NewOllamaClient(cfg.LLM, log)
	if !generator.IsHealthy(ctx) {
		log.Warn("llm server not reachable at startup, queries will fail until it is up",
			"base_url", cfg.LLM.BaseURL)
	}

	// 7. Agent
	agent := usecase.NewAgent(usecase.AgentDeps{
		Generator:    generator,
		Tools:        tool.NewDispatcher(store, cfg.Retriever.TopK, log),
		History:      domain.NewHistory(),
		Logger:       log,
		SystemPrompt: cfg.Agent.SystemPrompt,
		Temperature:  cfg.Agent.Temperature,
		MaxTokens:    cfg.Agent.MaxTokens,
	})

	// 8. Graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("pantry-ai starting",
		"model", cfg.LLM.Model,
		"embedding_model", cfg.Retriever.Embedding.Model,
		"data_dir", cfg.Retriever.DataDir,
	)

	return runREPL(ctx, agent, os.Stdin, os.Stdout)
}
