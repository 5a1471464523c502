package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/store"
	"github.com/jonathan/resume-forge/internal/style"
)

// structuredRetryAttempts bounds re-prompting when the model's structured
// output fails to parse.
const structuredRetryAttempts = 3

const structuredRetryBackoff = 2 * time.Second

// resolveConfig merges an optional config file, the environment, and the
// built-in defaults, then validates the result.
func resolveConfig(configPath string, apply func(*config.Config)) (config.Config, error) {
	cfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if apply != nil {
		apply(&cfg)
	}
	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore connects to the configured database.
func openStore(ctx context.Context, cfg config.Config) (*store.Postgres, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (--db, config, or DATABASE_URL)")
	}
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// buildRenderer infers a style sheet from the configured fingerprint and
// wires it to a PDF renderer with any fonts found in the font directory.
func buildRenderer(cfg config.Config) *render.Renderer {
	fonts := render.ScanFontDir(cfg.FontDir)

	fp := style.DefaultFingerprint()
	if cfg.FormatFile != "" {
		fp = style.Load(cfg.FormatFile)
	}

	registered := make(map[string]bool, len(fonts))
	for _, f := range fonts {
		registered[f.Family] = true
	}
	opts := &style.Options{
		RegisteredFont: func(family string) bool {
			return registered[family] || style.DefaultRegistered(family)
		},
	}

	sheet := style.InferSheet(fp, opts)
	return render.NewRenderer(sheet, style.LeftMargin(fp), fonts...)
}

// buildPipeline assembles the full processing pipeline. The caller must
// invoke the returned cleanup function when done.
func buildPipeline(ctx context.Context, cfg config.Config) (*pipeline.Pipeline, func(), error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	client = llm.WithRetry(client, structuredRetryAttempts, structuredRetryBackoff)

	p := pipeline.New(st, client, buildRenderer(cfg), cfg.OutputDir)
	if cfg.Concurrency > 0 {
		p.Concurrency = cfg.Concurrency
	}

	cleanup := func() {
		_ = client.Close()
		st.Close()
	}
	return p, cleanup, nil
}
