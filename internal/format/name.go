package format

import "peoplesync/internal/people"

// NameAdapter extracts contact names. Under the default convention it
// emits one display name per name entry, falling back to the primary
// organization name. Under the vCard convention it emits one suffixed
// result per present structured component, grouped by name entry.
type NameAdapter struct{}

func (NameAdapter) Extract(c people.Contact, ctx Context) []Result {
	if ctx.Convention == ConventionVCF {
		return extractStructuredNames(c)
	}
	return extractDisplayNames(c)
}

func extractDisplayNames(c people.Contact) []Result {
	var results []Result
	for _, n := range c.Names {
		if n.DisplayName != "" {
			results = append(results, scalar(n.DisplayName))
		}
	}
	if len(results) == 0 && len(c.Names) == 0 {
		if org := primaryOrgName(c); org != "" {
			results = append(results, scalar(org))
		}
	}
	return results
}

func extractStructuredNames(c people.Contact) []Result {
	if len(c.Names) == 0 {
		if org := primaryOrgName(c); org != "" {
			return []Result{scalar(org)}
		}
		return nil
	}

	var results []Result
	for i, n := range c.Names {
		parts := []struct {
			value  string
			suffix string
		}{
			{n.GivenName, "GN"},
			{n.MiddleName, "MN"},
			{n.FamilyName, "FN"},
			{n.HonorificPrefix, "PREFIX"},
			{n.HonorificSuffix, "SUFFIX"},
			{n.PhoneticFullName, "PHONETIC_FULL"},
			{n.PhoneticGivenName, "PHONETIC_GN"},
			{n.PhoneticMiddleName, "PHONETIC_MN"},
			{n.PhoneticFamilyName, "PHONETIC_FN"},
			{n.PhoneticHonorificPrefix, "PHONETIC_PREFIX"},
			{n.PhoneticHonorificSuffix, "PHONETIC_SUFFIX"},
		}
		for _, p := range parts {
			if p.value != "" {
				results = append(results, subfield(p.value, p.suffix, i))
			}
		}
	}
	return results
}

// FormattedNameAdapter emits the resolved display name as a single result,
// used to populate the vCard full-name property separately from the
// structured components. It is inactive under the default convention.
type FormattedNameAdapter struct{}

func (FormattedNameAdapter) Extract(c people.Contact, ctx Context) []Result {
	if ctx.Convention != ConventionVCF {
		return nil
	}
	if len(c.Names) > 0 && c.Names[0].DisplayName != "" {
		return []Result{scalar(c.Names[0].DisplayName)}
	}
	if org := primaryOrgName(c); org != "" {
		return []Result{scalar(org)}
	}
	return nil
}

func primaryOrgName(c people.Contact) string {
	if len(c.Organizations) == 0 {
		return ""
	}
	return c.Organizations[0].Name
}
