package style

import "testing"

func sampleFingerprint() *Fingerprint {
	fp := &Fingerprint{
		PageCount: 1,
		PageSizes: []PageSize{{Width: 612, Height: 792}},
		Spans: []TextSpan{
			{Page: 1, Text: "Jordan Rivera", Font: "Calibri-Bold", Size: 22, Bold: true, BBox: BBox{X0: 54, Y0: 40, X1: 300, Y1: 62}},
			{Page: 1, Text: "Staff Engineer", Font: "Calibri-Bold", Size: 13, Bold: true, BBox: BBox{X0: 54, Y0: 64, X1: 220, Y1: 78}},
			{Page: 1, Text: "jordan@example.com | (555) 867-5309", Font: "Calibri", Size: 10, BBox: BBox{X0: 54, Y0: 80, X1: 340, Y1: 92}},
			{Page: 1, Text: "EXPERIENCE", Font: "Calibri-Bold", Size: 13, Bold: true, BBox: BBox{X0: 54, Y0: 110, X1: 160, Y1: 124}},
			{Page: 1, Text: "06/2019 - Present", Font: "Calibri", Size: 10, BBox: BBox{X0: 420, Y0: 130, X1: 540, Y1: 142}},
			{Page: 1, Text: "•", Font: "Calibri", Size: 11, BBox: BBox{X0: 60, Y0: 150, X1: 66, Y1: 162}},
			{Page: 1, Text: "Led the platform migration", Font: "Calibri", Size: 11, BBox: BBox{X0: 72, Y0: 150, X1: 400, Y1: 162}},
			{Page: 1, Text: "Shipped the billing rewrite", Font: "Calibri", Size: 11, BBox: BBox{X0: 72, Y0: 166, X1: 400, Y1: 178}},
			{Page: 1, Text: "SKILLS", Font: "Calibri-Bold", Size: 13, Bold: true, BBox: BBox{X0: 54, Y0: 200, X1: 120, Y1: 214}},
			{Page: 1, Text: "Go, Postgres", Font: "Calibri-Bold", Size: 11, Bold: true, BBox: BBox{X0: 54, Y0: 220, X1: 200, Y1: 232}},
		},
	}
	normalize(fp)
	return fp
}

func TestInferName(t *testing.T) {
	style := Infer(sampleFingerprint(), RoleName, nil)
	if style.Size != 22 {
		t.Fatalf("name size = %v, want 22", style.Size)
	}
	if !style.Bold {
		t.Fatal("name style should be bold")
	}
	// Calibri is not a core face, so the family falls back.
	if style.Font != GenericFamily {
		t.Fatalf("name font = %q, want %q", style.Font, GenericFamily)
	}
}

func TestInferNameWithRegisteredFont(t *testing.T) {
	opts := &Options{RegisteredFont: func(family string) bool { return family == "Calibri" }}
	style := Infer(sampleFingerprint(), RoleName, opts)
	if style.Font != "Calibri" {
		t.Fatalf("name font = %q, want Calibri", style.Font)
	}
}

func TestInferContact(t *testing.T) {
	style := Infer(sampleFingerprint(), RoleContact, nil)
	if style.Size != 10 {
		t.Fatalf("contact size = %v, want 10", style.Size)
	}
	if style.Bold {
		t.Fatal("contact style should not be bold")
	}
}

func TestInferBodyUsesModalSize(t *testing.T) {
	style := Infer(sampleFingerprint(), RoleBody, nil)
	if style.Size != 11 {
		t.Fatalf("body size = %v, want 11", style.Size)
	}
}

func TestInferHeadingUsesModalBoldSize(t *testing.T) {
	// 13pt bold appears three times (title plus two headings), which beats
	// the single 22pt name span.
	style := Infer(sampleFingerprint(), RoleHeading, nil)
	if style.Size != 13 {
		t.Fatalf("heading size = %v, want 13", style.Size)
	}
	if !style.Bold {
		t.Fatal("heading style should be bold")
	}
}

func TestInferBulletRoles(t *testing.T) {
	fp := sampleFingerprint()

	marker := Infer(fp, RoleBulletMarker, nil)
	if marker.Size != 11 {
		t.Fatalf("bullet marker size = %v, want 11", marker.Size)
	}
	if marker.Indent != spacingProfiles[RoleBulletMarker].Indent {
		t.Fatalf("bullet marker indent = %v, want %v", marker.Indent, spacingProfiles[RoleBulletMarker].Indent)
	}

	content := Infer(fp, RoleBulletContent, nil)
	if content.Size != 11 || content.Bold {
		t.Fatalf("bullet content = %+v, want 11pt regular", content)
	}
}

func TestInferDateRange(t *testing.T) {
	style := Infer(sampleFingerprint(), RoleDateRange, nil)
	if style.Size != 10 {
		t.Fatalf("date range size = %v, want 10", style.Size)
	}
}

func TestInferFallsBackToDefaults(t *testing.T) {
	// An empty fingerprint matches no role; every role must still resolve
	// to its complete built-in style.
	fp := &Fingerprint{PageCount: 1}
	for _, role := range AllRoles {
		got := Infer(fp, role, nil)
		want := DefaultStyle(role)
		if got != want {
			t.Fatalf("role %s: got %+v, want default %+v", role, got, want)
		}
		if got.Size <= 0 || got.Font == "" {
			t.Fatalf("role %s resolved to an unusable style: %+v", role, got)
		}
	}
}

func TestInferOverrideWinsOverClassifier(t *testing.T) {
	fp := sampleFingerprint()
	opts := &Options{Overrides: map[Role]string{RoleName: "Staff Engineer"}}
	style := Infer(fp, RoleName, opts)
	if style.Size != 13 {
		t.Fatalf("override name size = %v, want 13", style.Size)
	}
}

func TestInferSheetCoversAllRoles(t *testing.T) {
	sheet := InferSheet(sampleFingerprint(), nil)
	if len(sheet) != len(AllRoles) {
		t.Fatalf("sheet has %d roles, want %d", len(sheet), len(AllRoles))
	}
	for _, role := range AllRoles {
		if sheet[role].Size <= 0 {
			t.Fatalf("role %s has zero size", role)
		}
	}
}

func TestLeftMargin(t *testing.T) {
	tests := []struct {
		name string
		fp   *Fingerprint
		want float64
	}{
		{"sampled minimum", sampleFingerprint(), 54},
		{"no spans", &Fingerprint{}, 72},
		{"nil fingerprint", nil, 72},
		{"clamped to one inch", &Fingerprint{Spans: []TextSpan{{BBox: BBox{X0: 120}}}}, 72},
		{"negative rejected", &Fingerprint{Spans: []TextSpan{{BBox: BBox{X0: -4}}}}, 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeftMargin(tt.fp); got != tt.want {
				t.Fatalf("LeftMargin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeFontName(t *testing.T) {
	tests := []struct {
		in     string
		family string
		bold   bool
	}{
		{"Calibri-Bold", "Calibri", true},
		{"AAAAAA+Calibri", "Calibri", false},
		{"ArialMT", "Arial", false},
		{"Arial-BoldMT", "Arial", true},
		{"TimesNewRomanPS-BoldMT", "TimesNewRoman", true},
		{"Helvetica", "Helvetica", false},
		{"", "", false},
	}
	for _, tt := range tests {
		family, bold := NormalizeFontName(tt.in)
		if family != tt.family || bold != tt.bold {
			t.Fatalf("NormalizeFontName(%q) = (%q, %v), want (%q, %v)", tt.in, family, bold, tt.family, tt.bold)
		}
	}
}
