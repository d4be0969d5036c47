package format

import (
	"fmt"
	"strings"
)

// NamingStrategy maps a (field id, value index, prefix, subfield suffix)
// tuple to an output key name.
type NamingStrategy interface {
	Key(fieldID string, index int, prefix, suffix string) string
}

// DefaultNaming produces prefixed keys with an underscore index suffix:
// the first value is unsuffixed, later ones get _2, _3, ... The subfield
// suffix is accepted but ignored.
type DefaultNaming struct{}

func (DefaultNaming) Key(fieldID string, index int, prefix, _ string) string {
	if index == 0 {
		return prefix + fieldID
	}
	return fmt.Sprintf("%s%s_%d", prefix, fieldID, index+1)
}

// vcfProperties maps field ids to canonical vCard property names. Field
// ids absent from the table fall back to their upper-cased form.
var vcfProperties = map[string]string{
	"name":         "FN",
	"email":        "EMAIL",
	"phone":        "TEL",
	"address":      "ADR",
	"organization": "ORG",
	"jobtitle":     "TITLE",
	"department":   "ROLE",
	"bio":          "NOTE",
	"birthday":     "BDAY",
	"website":      "URL",
	"labels":       "CATEGORIES",
	"relations":    "RELATED",
	"uid":          "UID",
	"googleId":     "X-GOOGLE-ID",
}

// VCFNaming produces vCard property names with bracket-indexed repetition
// (EMAIL, EMAIL[2]) and dotted subfield notation (ADR.CITY, ADR[2].CITY).
// vCard output never carries a user-configured prefix, so the prefix
// parameter is ignored.
type VCFNaming struct{}

func (VCFNaming) Key(fieldID string, index int, _, suffix string) string {
	key, ok := vcfProperties[fieldID]
	if !ok {
		key = strings.ToUpper(fieldID)
	}
	if index > 0 {
		key = fmt.Sprintf("%s[%d]", key, index+1)
	}
	if suffix != "" {
		key += "." + suffix
	}
	return key
}

func strategyFor(c Convention) NamingStrategy {
	if c == ConventionVCF {
		return VCFNaming{}
	}
	return DefaultNaming{}
}
