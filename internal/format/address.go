package format

import "peoplesync/internal/people"

// AddressAdapter extracts postal addresses. Under the default convention
// each address with a pre-formatted value yields one result (addresses
// without one are dropped). Under the vCard convention each present
// subfield yields its own suffixed result, with all subfields of one
// address sharing that address's index.
type AddressAdapter struct{}

func (AddressAdapter) Extract(c people.Contact, ctx Context) []Result {
	if ctx.Convention == ConventionVCF {
		return extractStructuredAddresses(c)
	}

	var results []Result
	for _, addr := range c.Addresses {
		if addr.FormattedValue != "" {
			results = append(results, scalar(addr.FormattedValue))
		}
	}
	return results
}

func extractStructuredAddresses(c people.Contact) []Result {
	var results []Result
	for i, addr := range c.Addresses {
		parts := []struct {
			value  string
			suffix string
		}{
			{addr.StreetAddress, "STREET"},
			{addr.City, "CITY"},
			{addr.Country, "COUNTRY"},
			{addr.PostalCode, "POSTALCODE"},
			{addr.ExtendedAddress, "EXTENDED"},
			{addr.FormattedType, "TYPE"},
		}
		for _, p := range parts {
			if p.value != "" {
				results = append(results, subfield(p.value, p.suffix, i))
			}
		}
	}
	return results
}
