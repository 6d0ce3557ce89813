package main

import (
	"Go2FlowTag/internal/config"
	"Go2FlowTag/internal/pipeline"
	"context"
	"flag"
	"fmt"
	"log"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Build the runner and its writers
	ctx := context.Background()
	runner, err := pipeline.NewRunnerFromConfig(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	defer runner.Close()

	// 3. Load, classify, write
	result, err := runner.Run(ctx)
	if err != nil {
		log.Printf("Run did not complete: %v", err)
		return
	}

	if msg, ok := successMessage(cfg, result); ok {
		fmt.Println(msg)
	}
}

// successMessage names the report file when a text report was configured and
// written without error.
func successMessage(cfg *config.Config, result *pipeline.Result) (string, bool) {
	path := cfg.ReportPath()
	if path == "" || result.WriterFailed("text") {
		return "", false
	}
	return "Output written to: " + path, true
}
