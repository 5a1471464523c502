// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeItems(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintRequirements outputs a human-readable summary of an extracted
// requirement record.
func (p *Printer) PrintRequirements(reqs *types.Requirements) {
	if reqs == nil {
		return
	}

	var sb strings.Builder

	if reqs.JobLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:       %s\n", reqs.JobLevel))
	}
	if reqs.YearsExperience > 0 {
		sb.WriteString(fmt.Sprintf("Experience:  %g years\n", reqs.YearsExperience))
	}
	if reqs.EducationRequirements != "" {
		sb.WriteString(fmt.Sprintf("Education:   %s\n", reqs.EducationRequirements))
	}
	sb.WriteString("\n")

	writeItems(&sb, "Required Skills", reqs.RequiredSkills, maxItemsToShow)
	writeItems(&sb, "Preferred Skills", reqs.PreferredSkills, 3)
	writeItems(&sb, "Key Responsibilities", reqs.KeyResponsibilities, 3)

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTailoredContent outputs the matcher's selection with its score.
func (p *Printer) PrintTailoredContent(content *types.TailoredContent) {
	if content == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %.2f\n\n", content.MatchScore))

	count := min(len(content.HighlightedExperiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := content.HighlightedExperiences[i]
		sb.WriteString(fmt.Sprintf("#%d  %s @ %s\n", i+1, exp.Position, exp.Company))
		sb.WriteString(fmt.Sprintf("    Bullets: %d\n", len(exp.BulletPoints)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(content.HighlightedExperiences) > 0 {
		sb.WriteString("\n")
	}

	writeItems(&sb, "Skills to Emphasize", content.SkillsToEmphasize, maxItemsToShow)

	if content.RelevanceReasoning != "" {
		sb.WriteString("Reasoning: " + content.RelevanceReasoning + "\n")
	}

	p.printBox("TAILORED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummaries outputs the batch result table.
func (p *Printer) PrintSummaries(summaries []*pipeline.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resumes generated: %d\n", len(summaries)))

	for _, s := range summaries {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Job:    %s\n", s.JobID))
		sb.WriteString(fmt.Sprintf("Score:  %.2f\n", s.MatchScore))
		sb.WriteString(fmt.Sprintf("Output: %s\n", s.ResumePath))
	}

	p.printBox("BATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
