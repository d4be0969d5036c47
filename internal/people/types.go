// Package people provides the remote address-book domain types and a
// read-only client for the contacts and contact-groups endpoints.
package people

import "strings"

// Contact is a single contact record as returned by the remote API.
// All repeated sub-records are optional; absent means an empty slice.
type Contact struct {
	// ResourceName is the opaque resource path, e.g. "people/c1234567890".
	ResourceName string `json:"resourceName"`

	Names          []Name         `json:"names,omitempty"`
	EmailAddresses []TypedValue   `json:"emailAddresses,omitempty"`
	PhoneNumbers   []TypedValue   `json:"phoneNumbers,omitempty"`
	Addresses      []Address      `json:"addresses,omitempty"`
	Birthdays      []Birthday     `json:"birthdays,omitempty"`
	Biographies    []TypedValue   `json:"biographies,omitempty"`
	Organizations  []Organization `json:"organizations,omitempty"`
	Relations      []Relation     `json:"relations,omitempty"`
	Memberships    []Membership   `json:"memberships,omitempty"`
}

// ExternalID derives the stable join key from the resource path by taking
// the segment after the last slash. Returns "" when no segment exists.
func (c Contact) ExternalID() string {
	if c.ResourceName == "" {
		return ""
	}
	idx := strings.LastIndexByte(c.ResourceName, '/')
	return c.ResourceName[idx+1:]
}

// Name holds both the display forms and the structured name components.
type Name struct {
	DisplayName          string `json:"displayName,omitempty"`
	DisplayNameLastFirst string `json:"displayNameLastFirst,omitempty"`

	GivenName       string `json:"givenName,omitempty"`
	MiddleName      string `json:"middleName,omitempty"`
	FamilyName      string `json:"familyName,omitempty"`
	HonorificPrefix string `json:"honorificPrefix,omitempty"`
	HonorificSuffix string `json:"honorificSuffix,omitempty"`

	PhoneticFullName        string `json:"phoneticFullName,omitempty"`
	PhoneticGivenName       string `json:"phoneticGivenName,omitempty"`
	PhoneticMiddleName      string `json:"phoneticMiddleName,omitempty"`
	PhoneticFamilyName      string `json:"phoneticFamilyName,omitempty"`
	PhoneticHonorificPrefix string `json:"phoneticHonorificPrefix,omitempty"`
	PhoneticHonorificSuffix string `json:"phoneticHonorificSuffix,omitempty"`
}

// TypedValue is the common shape of emails, phones, and biographies.
type TypedValue struct {
	Value string `json:"value,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Address is a postal address with both a pre-formatted form and
// structured subfields.
type Address struct {
	FormattedValue  string `json:"formattedValue,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	ExtendedAddress string `json:"extendedAddress,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	Country         string `json:"country,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
	Type            string `json:"type,omitempty"`
	FormattedType   string `json:"formattedType,omitempty"`
}

// Birthday carries an optional structured date and a free-form fallback.
type Birthday struct {
	Date *Date  `json:"date,omitempty"`
	Text string `json:"text,omitempty"`
}

// Date is a partial calendar date. Year may be zero (unknown year).
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// Organization is an employer record.
type Organization struct {
	Name       string `json:"name,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
}

// Relation links a contact to another person ("spouse", "manager", ...).
type Relation struct {
	Person string `json:"person,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Membership records that the contact belongs to a contact group.
type Membership struct {
	ContactGroupMembership *ContactGroupMembership `json:"contactGroupMembership,omitempty"`
}

// ContactGroupMembership identifies the group of a membership.
type ContactGroupMembership struct {
	ContactGroupID           string `json:"contactGroupId,omitempty"`
	ContactGroupResourceName string `json:"contactGroupResourceName,omitempty"`
}

// GroupID returns the membership's group ID, or "" if the membership does
// not reference a contact group.
func (m Membership) GroupID() string {
	if m.ContactGroupMembership == nil {
		return ""
	}
	return m.ContactGroupMembership.ContactGroupID
}

// ContactGroup is a group (label) record from the groups endpoint.
type ContactGroup struct {
	Name         string `json:"name,omitempty"`
	ResourceName string `json:"resourceName,omitempty"`
}
