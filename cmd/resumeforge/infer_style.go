package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/style"
)

var inferStyleCmd = &cobra.Command{
	Use:   "infer-style",
	Short: "Show the style sheet inferred from a formatting fingerprint",
	Long:  "Load a formatting fingerprint, run style inference for every role, and print the resolved style sheet as JSON. Useful for checking what a reference document's sample yields before generating resumes.",
	RunE:  runInferStyle,
}

var (
	inferStyleFormat string
	inferStyleFonts  string
)

func init() {
	inferStyleCmd.Flags().StringVar(&inferStyleFormat, "format", "", "Path to formatting fingerprint JSON (required)")
	inferStyleCmd.Flags().StringVar(&inferStyleFonts, "fonts", "", "Directory holding TTF font files")

	_ = inferStyleCmd.MarkFlagRequired("format")

	rootCmd.AddCommand(inferStyleCmd)
}

func runInferStyle(cmd *cobra.Command, args []string) error {
	fp := style.Load(inferStyleFormat)

	fonts := render.ScanFontDir(inferStyleFonts)
	registered := make(map[string]bool, len(fonts))
	for _, f := range fonts {
		registered[f.Family] = true
	}

	sheet := style.InferSheet(fp, &style.Options{
		RegisteredFont: func(family string) bool {
			return registered[family] || style.DefaultRegistered(family)
		},
	})

	out := struct {
		LeftMargin float64                       `json:"left_margin"`
		PageCount  int                           `json:"page_count"`
		Roles      map[style.Role]style.StyleDef `json:"roles"`
	}{
		LeftMargin: style.LeftMargin(fp),
		PageCount:  fp.PageCount,
		Roles:      sheet,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode style sheet: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))

	return nil
}
