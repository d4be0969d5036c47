// Package format turns remote contact records into flat frontmatter
// fields. Field adapters extract typed values from a contact, a naming
// strategy maps each value to an output key, and the Formatter merges
// everything into one ordered field set.
package format

import "peoplesync/internal/people"

// Convention selects the output key naming rules.
type Convention int

const (
	// ConventionDefault produces prefixed, index-suffixed keys
	// ("gc_email", "gc_email_2").
	ConventionDefault Convention = iota

	// ConventionVCF produces vCard property names ("EMAIL", "ADR.CITY",
	// "TEL[2]") with no user prefix.
	ConventionVCF
)

func (c Convention) String() string {
	if c == ConventionVCF {
		return "vcf"
	}
	return "default"
}

// ParseConvention maps a configuration value to a Convention. Unknown
// values fall back to the default convention.
func ParseConvention(s string) Convention {
	switch s {
	case "vcf", "VCF":
		return ConventionVCF
	default:
		return ConventionDefault
	}
}

// Context carries the per-sync inputs adapters need beyond the contact
// itself.
type Context struct {
	Convention Convention

	// LabelMap maps group IDs to human-readable label names.
	LabelMap map[string]string

	// OrgAsLink wraps organization names in [[...]] wiki links.
	OrgAsLink bool

	// RelationAsLink wraps related persons in [[...]] wiki links.
	RelationAsLink bool
}

// Result is one extracted value. Either Value or List is set, never both.
// Suffix names a subfield of a structured record (e.g. "CITY"), and Index
// groups all subfields emitted for the same repeated sub-record.
type Result struct {
	Value  string
	List   []string
	Suffix string

	Index    int
	HasIndex bool
}

func scalar(v string) Result {
	return Result{Value: v}
}

func subfield(v, suffix string, index int) Result {
	return Result{Value: v, Suffix: suffix, Index: index, HasIndex: true}
}

// FieldAdapter extracts zero or more results for one semantic field.
// Implementations are pure and tolerate missing or empty input by
// returning an empty slice.
type FieldAdapter interface {
	Extract(c people.Contact, ctx Context) []Result
}
