package format

import "peoplesync/internal/people"

// Fields is the flat metadata produced for one contact. Keys are unique;
// values are string or []string. Insertion order is preserved so that
// generated frontmatter comes out in adapter-registration order.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty field set.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	return f.keys
}

// Get returns the value for key (string or []string) and whether it exists.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Set stores a value, replacing any previous value for the key.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// add inserts a value, coalescing on key collision: the existing entry is
// converted to (or extended as) a list so no independently-extracted value
// is lost.
func (f *Fields) add(key string, value any) {
	existing, ok := f.values[key]
	if !ok {
		f.Set(key, value)
		return
	}
	f.values[key] = append(toList(existing), toList(value)...)
}

func toList(v any) []string {
	switch v := v.(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

type registeredAdapter struct {
	fieldID string
	adapter FieldAdapter
}

// Formatter runs an ordered adapter registry against a contact and merges
// the results into one field set. Registration order decides coalescing
// order on key collisions, so the two factory configurations below are a
// contract surface, not an implementation detail.
type Formatter struct {
	convention Convention
	strategy   NamingStrategy
	adapters   []registeredAdapter
}

// NewFormatter builds the formatter for the given convention.
//
// The default convention registers name, email, phone, address, bio,
// organization, job title, department, birthday, relations, labels, and
// the external ID under the plain "id" field. The vCard convention swaps
// the plain ID for the provider-specific X-GOOGLE-ID property, adds the
// formatted-name and UID adapters, and produces no plain "id" key.
func NewFormatter(convention Convention) *Formatter {
	f := &Formatter{convention: convention, strategy: strategyFor(convention)}

	f.register("name", NameAdapter{})
	if convention == ConventionVCF {
		f.register("name", FormattedNameAdapter{})
	}
	f.register("email", EmailAdapter{})
	f.register("phone", PhoneAdapter{})
	f.register("address", AddressAdapter{})
	f.register("bio", BioAdapter{})
	f.register("organization", OrganizationAdapter{})
	f.register("jobtitle", JobTitleAdapter{})
	f.register("department", DepartmentAdapter{})
	f.register("birthday", BirthdayAdapter{})
	f.register("relations", RelationsAdapter{})
	f.register("labels", LabelAdapter{})

	if convention == ConventionVCF {
		f.register("googleId", ExternalIDAdapter{})
		f.register("uid", UIDAdapter{})
	} else {
		f.register("id", ExternalIDAdapter{})
	}

	return f
}

func (f *Formatter) register(fieldID string, adapter FieldAdapter) {
	f.adapters = append(f.adapters, registeredAdapter{fieldID: fieldID, adapter: adapter})
}

// Convention returns the convention the formatter was built for.
func (f *Formatter) Convention() Convention {
	return f.convention
}

// Generate runs every registered adapter against the contact and returns
// the merged field set. Each result's key index is its explicit grouping
// index when present, else its position in the adapter's own result list.
func (f *Formatter) Generate(c people.Contact, prefix string, ctx Context) *Fields {
	ctx.Convention = f.convention

	fields := NewFields()
	for _, reg := range f.adapters {
		for i, r := range reg.adapter.Extract(c, ctx) {
			index := i
			if r.HasIndex {
				index = r.Index
			}
			key := f.strategy.Key(reg.fieldID, index, prefix, r.Suffix)
			if r.List != nil {
				fields.add(key, r.List)
			} else {
				fields.add(key, r.Value)
			}
		}
	}
	return fields
}
