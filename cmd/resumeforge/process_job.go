package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/observability"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/profile"
)

var processJobCmd = &cobra.Command{
	Use:   "process-job",
	Short: "Generate a tailored resume for one tracked job",
	Long:  "Extract requirements for one job (reusing a stored analysis when present), match them against the candidate profile, and render a tailored PDF resume.",
	RunE:  runProcessJob,
}

var (
	processJobConfig  string
	processJobID      string
	processJobProfile string
	processJobFormat  string
	processJobFonts   string
	processJobOutput  string
	processJobDB      string
	processJobVerbose bool
)

func init() {
	processJobCmd.Flags().StringVarP(&processJobConfig, "config", "c", "", "Path to JSON config file")
	processJobCmd.Flags().StringVarP(&processJobID, "job", "j", "", "Job ID (required)")
	processJobCmd.Flags().StringVarP(&processJobProfile, "profile", "p", "", "Path to candidate profile JSON")
	processJobCmd.Flags().StringVar(&processJobFormat, "format", "", "Path to formatting fingerprint JSON")
	processJobCmd.Flags().StringVar(&processJobFonts, "fonts", "", "Directory holding TTF font files")
	processJobCmd.Flags().StringVarP(&processJobOutput, "out", "o", "", "Directory for the generated PDF")
	processJobCmd.Flags().StringVar(&processJobDB, "db", "", "PostgreSQL connection URL")
	processJobCmd.Flags().BoolVarP(&processJobVerbose, "verbose", "v", false, "Print match details")

	_ = processJobCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(processJobCmd)
}

func runProcessJob(cmd *cobra.Command, args []string) error {
	jobID, err := uuid.Parse(processJobID)
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", processJobID, err)
	}

	cfg, err := resolveConfig(processJobConfig, func(c *config.Config) {
		applyFlag(&c.Profile, processJobProfile)
		applyFlag(&c.FormatFile, processJobFormat)
		applyFlag(&c.FontDir, processJobFonts)
		applyFlag(&c.OutputDir, processJobOutput)
		applyFlag(&c.DatabaseURL, processJobDB)
		c.Verbose = c.Verbose || processJobVerbose
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

	summary, err := p.ProcessJob(ctx, jobID, candidate)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSummaries([]*pipeline.Summary{summary})
	}

	fmt.Fprintf(os.Stdout, "Generated resume for job %s\n", summary.JobID)
	fmt.Fprintf(os.Stdout, "Match score: %.2f\n", summary.MatchScore)
	fmt.Fprintf(os.Stdout, "Output: %s\n", summary.ResumePath)
	if summary.MatchExplanation != "" {
		fmt.Fprintf(os.Stdout, "Reasoning: %s\n", summary.MatchExplanation)
	}

	return nil
}

// applyFlag overrides a config value when the flag was set.
func applyFlag(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
