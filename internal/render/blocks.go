package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/style"
	"github.com/jonathan/resume-forge/internal/types"
)

// Segment is one run of text with a single weight.
type Segment struct {
	Text string
	Bold bool
}

// Block is one laid-out line group. Bullet blocks get the marker glyph and
// the bullet indentation; SpacerAfter adds extra vertical space below the
// block on top of the style's own spacing.
type Block struct {
	Role        style.Role
	Segments    []Segment
	Bullet      bool
	SpacerAfter float64
}

// Section heading labels in their fixed order.
const (
	headingSummary        = "Professional Summary"
	headingSkills         = "Skills"
	headingExperience     = "Professional Experience"
	headingEducation      = "Education"
	headingCertifications = "Certifications"
)

// Vertical gaps between repeated entries, in points.
const (
	experienceGap = 6.0
	educationGap  = 4.0
)

// summaryBoldTerms are phrases bolded inside the professional summary when
// they occur verbatim.
var summaryBoldTerms = []string{
	"Results-driven",
	"10 years of experience",
	"high-volume",
	"manufacturing",
	"distribution operations",
	"Lean techniques, team development",
	"quality and process improvements",
	"operational excellence",
	"optimizing fulfillment",
	"building strong cross-functional collaboration",
}

// skillCategories are the labels paired with emphasized skills, with filler
// detail used when the tailored content supplies too few skills.
var skillCategories = []struct {
	Label  string
	Filler string
}{
	{"Operations Management", "Fulfillment center operations, inventory control, staffing lifecycle, KPI-driven performance, multi-site management."},
	{"Leadership & Development", "Team leadership, coaching and mentoring, cross-functional collaboration, leadership bench strength."},
	{"Process Improvement", "Lean Manufacturing, Six Sigma principles, continuous improvement, process change initiatives."},
	{"Technical Skills", "SQL, Power BI, VBA, Python, ERP systems integration, advanced Excel, data-driven decision-making."},
	{"Strategic Execution", "Strategic planning, forecasting, budget management, cost optimization, quality and safety compliance."},
}

// BuildBlocks lays the document out as an ordered block list. It validates
// first and performs no I/O, so layout is testable without a PDF writer.
// Sections appear in a fixed order; education and certifications are omitted
// entirely when the profile has none.
func BuildBlocks(doc *Document) ([]Block, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var blocks []Block

	blocks = append(blocks, plain(style.RoleName, doc.PersonalInfo.Name))
	if doc.PersonalInfo.JobTitle != "" {
		blocks = append(blocks, plain(style.RoleJobTitle, doc.PersonalInfo.JobTitle))
	}
	blocks = append(blocks, plain(style.RoleContact, doc.contactLine()))

	blocks = append(blocks, plain(style.RoleHeading, headingSummary))
	blocks = append(blocks, Block{Role: style.RoleBody, Segments: boldTerms(doc.Summary, summaryBoldTerms)})

	blocks = append(blocks, plain(style.RoleHeading, headingSkills))
	blocks = append(blocks, skillBlocks(doc.Skills)...)

	blocks = append(blocks, plain(style.RoleHeading, headingExperience))
	for _, exp := range doc.Experiences {
		blocks = append(blocks, experienceBlocks(exp)...)
	}

	if len(doc.Education) > 0 {
		blocks = append(blocks, plain(style.RoleHeading, headingEducation))
		for _, edu := range doc.Education {
			blocks = append(blocks,
				Block{Role: style.RoleEmphasis, Segments: []Segment{
					{Text: edu.Degree, Bold: true},
					{Text: " in " + edu.Field},
				}},
				Block{Role: style.RoleBody, Segments: []Segment{{Text: educationDetail(edu)}}, SpacerAfter: educationGap},
			)
		}
	}

	if len(doc.Certifications) > 0 {
		blocks = append(blocks, plain(style.RoleHeading, headingCertifications))
		for _, cert := range doc.Certifications {
			blocks = append(blocks, Block{
				Role:     style.RoleBulletContent,
				Bullet:   true,
				Segments: []Segment{{Text: cert.Name}},
			})
		}
	}

	return blocks, nil
}

func plain(role style.Role, text string) Block {
	return Block{Role: role, Segments: []Segment{{Text: text}}}
}

// skillBlocks pairs category labels with the emphasized skills. With five or
// more skills each label gets one skill; with fewer, the filler detail keeps
// the section at full width.
func skillBlocks(skills []string) []Block {
	blocks := make([]Block, 0, len(skillCategories))
	if len(skills) >= len(skillCategories) {
		for i, category := range skillCategories {
			blocks = append(blocks, skillBullet(category.Label, skills[i]))
		}
		return blocks
	}
	for _, category := range skillCategories {
		blocks = append(blocks, skillBullet(category.Label, category.Filler))
	}
	return blocks
}

func skillBullet(label, detail string) Block {
	return Block{
		Role:   style.RoleBulletContent,
		Bullet: true,
		Segments: []Segment{
			{Text: label, Bold: true},
			{Text: ": " + detail},
		},
	}
}

// experienceBlocks lays out one experience: bold position, bold date range,
// company line, then highlight-bolded bullets with a trailing gap.
func experienceBlocks(exp types.HighlightedExperience) []Block {
	blocks := []Block{
		{Role: style.RoleEmphasis, Segments: []Segment{{Text: exp.Position, Bold: true}}},
	}
	if exp.DateRange != "" {
		blocks = append(blocks, Block{Role: style.RoleDateRange, Segments: []Segment{{Text: exp.DateRange, Bold: true}}})
	}
	blocks = append(blocks, plain(style.RoleBody, exp.Company))

	for i, bullet := range exp.BulletPoints {
		block := Block{
			Role:     style.RoleBulletContent,
			Bullet:   true,
			Segments: boldTerms(bullet, exp.Highlights),
		}
		if i == len(exp.BulletPoints)-1 {
			block.SpacerAfter = experienceGap
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func educationDetail(edu types.Education) string {
	detail := edu.Institution
	if edu.Location != "" {
		detail = fmt.Sprintf("%s, %s", detail, edu.Location)
	}
	if edu.DateRange != "" {
		detail += " | " + edu.DateRange
	}
	return detail
}

// boldTerms splits text into segments, bolding each verbatim occurrence of
// any term. Terms are matched in list order against the remaining text.
func boldTerms(text string, terms []string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	rest := text
	for rest != "" {
		term, idx := earliestTerm(rest, terms)
		if idx < 0 {
			segments = append(segments, Segment{Text: rest})
			break
		}
		if idx > 0 {
			segments = append(segments, Segment{Text: rest[:idx]})
		}
		segments = append(segments, Segment{Text: term, Bold: true})
		rest = rest[idx+len(term):]
	}
	return segments
}

// earliestTerm finds the term with the lowest occurrence index, preferring
// the longer term on ties so nested phrases bold as one run.
func earliestTerm(text string, terms []string) (string, int) {
	best := ""
	bestIdx := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		idx := strings.Index(text, term)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(term) > len(best)) {
			best, bestIdx = term, idx
		}
	}
	return best, bestIdx
}
