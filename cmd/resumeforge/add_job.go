package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/ingest"
	"github.com/jonathan/resume-forge/internal/store"
)

var addJobCmd = &cobra.Command{
	Use:   "add-job",
	Short: "Track a job posting from a text file or URL",
	Long:  "Ingest a job posting from either a text file or URL, normalize its text, and store it as a tracked job. An intake score above the eligibility threshold marks the job ready for batch processing.",
	RunE:  runAddJob,
}

var (
	addJobConfig   string
	addJobCompany  string
	addJobTitle    string
	addJobTextFile string
	addJobURL      string
	addJobDB       string
	addJobScore    float64
)

func init() {
	addJobCmd.Flags().StringVarP(&addJobConfig, "config", "c", "", "Path to JSON config file")
	addJobCmd.Flags().StringVar(&addJobCompany, "company", "", "Company name (required)")
	addJobCmd.Flags().StringVar(&addJobTitle, "title", "", "Job title (required)")
	addJobCmd.Flags().StringVarP(&addJobTextFile, "text-file", "t", "", "Path to text file containing the posting")
	addJobCmd.Flags().StringVarP(&addJobURL, "url", "u", "", "URL to fetch the posting from")
	addJobCmd.Flags().StringVar(&addJobDB, "db", "", "PostgreSQL connection URL")
	addJobCmd.Flags().Float64Var(&addJobScore, "score", 0, "Intake match score (0.0-1.0); above 0.5 marks the job analyzed-eligible")

	_ = addJobCmd.MarkFlagRequired("company")
	_ = addJobCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(addJobCmd)
}

func runAddJob(cmd *cobra.Command, args []string) error {
	if addJobTextFile == "" && addJobURL == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if addJobTextFile != "" && addJobURL != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}
	if addJobScore < 0 || addJobScore > 1 {
		return fmt.Errorf("--score must be between 0.0 and 1.0")
	}

	cfg, err := resolveConfig(addJobConfig, func(c *config.Config) {
		if addJobDB != "" {
			c.DatabaseURL = addJobDB
		}
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var description string
	if addJobTextFile != "" {
		description, err = ingest.ReadPostingFile(addJobTextFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		description, err = ingest.FetchPosting(ctx, addJobURL, nil)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	job := &store.JobRecord{
		Company:     addJobCompany,
		Title:       addJobTitle,
		URL:         addJobURL,
		Description: description,
		Analysis:    store.JobAnalysis{MatchScore: addJobScore},
	}
	if addJobScore > 0 {
		job.Status = store.StatusAnalyzed
	}
	if err := st.InsertJob(ctx, job); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Tracked job %s\n", job.ID)
	fmt.Fprintf(os.Stdout, "Company: %s\n", job.Company)
	fmt.Fprintf(os.Stdout, "Status:  %s\n", job.Status)

	return nil
}
