package style

// Role is a semantic rendering slot, independent of any specific font.
type Role string

// The nine semantic roles a resume sheet carries.
const (
	RoleName          Role = "name"
	RoleJobTitle      Role = "job_title"
	RoleContact       Role = "contact"
	RoleHeading       Role = "section_heading"
	RoleBody          Role = "body"
	RoleEmphasis      Role = "emphasized_body"
	RoleBulletMarker  Role = "bullet_marker"
	RoleBulletContent Role = "bullet_content"
	RoleDateRange     Role = "date_range"
)

// AllRoles lists every role in a stable order.
var AllRoles = []Role{
	RoleName,
	RoleJobTitle,
	RoleContact,
	RoleHeading,
	RoleBody,
	RoleEmphasis,
	RoleBulletMarker,
	RoleBulletContent,
	RoleDateRange,
}

// Alignment values for StyleDef.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// StyleDef is the resolved style for one semantic role.
type StyleDef struct {
	// Font is a renderer-registered family name.
	Font      string  `json:"font"`
	Bold      bool    `json:"bold"`
	Size      float64 `json:"size"`
	Alignment string  `json:"alignment"`
	// Indent is the left indent in points relative to the page margin.
	Indent float64 `json:"indent"`
	// HangingIndent pulls the first line back, used by bullet lists.
	HangingIndent float64 `json:"hanging_indent"`
	SpaceBefore   float64 `json:"space_before"`
	SpaceAfter    float64 `json:"space_after"`
}

// Sheet maps each semantic role to its resolved style.
type Sheet map[Role]StyleDef

// spacingProfile holds the layout portion of a style. Spacing is a layout
// decision, not a font property, so these values are fixed per role and
// never sampled from the fingerprint.
type spacingProfile struct {
	Indent        float64
	HangingIndent float64
	SpaceBefore   float64
	SpaceAfter    float64
}

// spacingProfiles is the fixed per-role layout table.
var spacingProfiles = map[Role]spacingProfile{
	RoleName:          {SpaceAfter: 2},
	RoleJobTitle:      {SpaceAfter: 2},
	RoleContact:       {SpaceAfter: 16},
	RoleHeading:       {SpaceBefore: 14, SpaceAfter: 4},
	RoleBody:          {SpaceAfter: 3},
	RoleEmphasis:      {SpaceAfter: 3},
	RoleBulletMarker:  {Indent: 18, HangingIndent: -18, SpaceAfter: 3},
	RoleBulletContent: {Indent: 18, SpaceAfter: 3},
	RoleDateRange:     {SpaceAfter: 8},
}

// defaultFonts carries the built-in face and size per role, used when no
// sampled span matches the role's classifier.
var defaultFonts = map[Role]struct {
	Family string
	Bold   bool
	Size   float64
}{
	RoleName:          {Family: GenericFamily, Bold: true, Size: 14},
	RoleJobTitle:      {Family: GenericFamily, Bold: true, Size: 11},
	RoleContact:       {Family: GenericFamily, Size: 10},
	RoleHeading:       {Family: GenericFamily, Bold: true, Size: 13},
	RoleBody:          {Family: GenericFamily, Size: 11},
	RoleEmphasis:      {Family: GenericFamily, Bold: true, Size: 11},
	RoleBulletMarker:  {Family: GenericFamily, Size: 11},
	RoleBulletContent: {Family: GenericFamily, Size: 11},
	RoleDateRange:     {Family: GenericFamily, Bold: true, Size: 11},
}

// DefaultStyle returns the documented built-in style for a role. It is the
// guaranteed fallback: every role always resolves to a usable style.
func DefaultStyle(role Role) StyleDef {
	font := defaultFonts[role]
	spacing := spacingProfiles[role]
	return StyleDef{
		Font:          font.Family,
		Bold:          font.Bold,
		Size:          font.Size,
		Alignment:     AlignLeft,
		Indent:        spacing.Indent,
		HangingIndent: spacing.HangingIndent,
		SpaceBefore:   spacing.SpaceBefore,
		SpaceAfter:    spacing.SpaceAfter,
	}
}
