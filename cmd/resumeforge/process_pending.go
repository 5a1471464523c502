package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/observability"
	"github.com/jonathan/resume-forge/internal/profile"
)

var processPendingCmd = &cobra.Command{
	Use:   "process-pending",
	Short: "Generate resumes for all eligible tracked jobs",
	Long:  "Fetch jobs that cleared the eligibility gate (analyzed with a match score above 0.5) and generate a tailored resume for each. Per-job failures are logged and skipped.",
	RunE:  runProcessPending,
}

var (
	processPendingConfig      string
	processPendingProfile     string
	processPendingFormat      string
	processPendingFonts       string
	processPendingOutput      string
	processPendingDB          string
	processPendingLimit       int
	processPendingConcurrency int
	processPendingVerbose     bool
)

func init() {
	processPendingCmd.Flags().StringVarP(&processPendingConfig, "config", "c", "", "Path to JSON config file")
	processPendingCmd.Flags().StringVarP(&processPendingProfile, "profile", "p", "", "Path to candidate profile JSON")
	processPendingCmd.Flags().StringVar(&processPendingFormat, "format", "", "Path to formatting fingerprint JSON")
	processPendingCmd.Flags().StringVar(&processPendingFonts, "fonts", "", "Directory holding TTF font files")
	processPendingCmd.Flags().StringVarP(&processPendingOutput, "out", "o", "", "Directory for generated PDFs")
	processPendingCmd.Flags().StringVar(&processPendingDB, "db", "", "PostgreSQL connection URL")
	processPendingCmd.Flags().IntVarP(&processPendingLimit, "limit", "l", 0, "Maximum jobs to process in this batch")
	processPendingCmd.Flags().IntVar(&processPendingConcurrency, "concurrency", 0, "Concurrent jobs per batch")
	processPendingCmd.Flags().BoolVarP(&processPendingVerbose, "verbose", "v", false, "Print batch details")

	rootCmd.AddCommand(processPendingCmd)
}

func runProcessPending(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(processPendingConfig, func(c *config.Config) {
		applyFlag(&c.Profile, processPendingProfile)
		applyFlag(&c.FormatFile, processPendingFormat)
		applyFlag(&c.FontDir, processPendingFonts)
		applyFlag(&c.OutputDir, processPendingOutput)
		applyFlag(&c.DatabaseURL, processPendingDB)
		if processPendingLimit > 0 {
			c.Limit = processPendingLimit
		}
		if processPendingConcurrency > 0 {
			c.Concurrency = processPendingConcurrency
		}
		c.Verbose = c.Verbose || processPendingVerbose
	})
	if err != nil {
		return err
	}
	if cfg.Profile == "" {
		return fmt.Errorf("a candidate profile is required (--profile or config)")
	}

	candidate, err := profile.Load(cfg.Profile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	p, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	summaries, err := p.ProcessPendingJobs(ctx, candidate, cfg.Limit)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSummaries(summaries)
	} else {
		fmt.Fprintf(os.Stdout, "Generated %d resume(s)\n", len(summaries))
		for _, s := range summaries {
			fmt.Fprintf(os.Stdout, "  %s -> %s (score %.2f)\n", s.JobID, s.ResumePath, s.MatchScore)
		}
	}

	return nil
}
