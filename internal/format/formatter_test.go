package format

import (
	"reflect"
	"strings"
	"testing"

	"peoplesync/internal/people"
)

func fieldsToMap(f *Fields) map[string]any {
	out := make(map[string]any, f.Len())
	for _, k := range f.Keys() {
		v, _ := f.Get(k)
		out[k] = v
	}
	return out
}

func TestFormatterEmptyContact(t *testing.T) {
	contact := people.Contact{}
	for _, conv := range []Convention{ConventionDefault, ConventionVCF} {
		fields := NewFormatter(conv).Generate(contact, "gc_", Context{})
		// The vCard formatter always emits a generated UID; nothing else
		// may appear for a contact with no populated fields.
		got := fieldsToMap(fields)
		delete(got, "UID")
		if len(got) != 0 {
			t.Errorf("%v: Generate() on empty contact = %v, want empty", conv, got)
		}
	}
}

func TestFormatterDefaultConvention(t *testing.T) {
	contact := people.Contact{
		ResourceName: "people/c42",
		Names:        []people.Name{{DisplayName: "Alice Smith"}},
		EmailAddresses: []people.TypedValue{
			{Value: "alice@example.com"},
			{Value: "a.smith@work.example"},
		},
		PhoneNumbers: []people.TypedValue{{Value: "+371 20000000"}},
		Birthdays:    []people.Birthday{{Date: &people.Date{Year: 1990, Month: 5, Day: 15}}},
	}

	fields := NewFormatter(ConventionDefault).Generate(contact, "gc_", Context{})
	want := map[string]any{
		"gc_name":     "Alice Smith",
		"gc_email":    "alice@example.com",
		"gc_email_2":  "a.smith@work.example",
		"gc_phone":    "+371 20000000",
		"gc_birthday": "1990-05-15",
		"gc_id":       "c42",
	}
	if got := fieldsToMap(fields); !reflect.DeepEqual(got, want) {
		t.Errorf("Generate() = %v, want %v", got, want)
	}
}

func TestFormatterVCFConvention(t *testing.T) {
	contact := people.Contact{
		ResourceName: "people/c42",
		Names: []people.Name{{
			DisplayName: "Alice Smith",
			GivenName:   "Alice",
			FamilyName:  "Smith",
		}},
		EmailAddresses: []people.TypedValue{{Value: "alice@example.com"}},
		Addresses: []people.Address{{
			StreetAddress:  "Salaspils iela 18",
			City:           "Riga",
			Country:        "Latvia",
			PostalCode:     "LV-1000",
			FormattedValue: "Salaspils iela 18\nRiga\nLatvia",
		}},
	}

	fields := NewFormatter(ConventionVCF).Generate(contact, "gc_", Context{})
	got := fieldsToMap(fields)

	want := map[string]string{
		"FN":             "Alice Smith",
		"FN.GN":          "Alice",
		"FN.FN":          "Smith",
		"EMAIL":          "alice@example.com",
		"ADR.STREET":     "Salaspils iela 18",
		"ADR.CITY":       "Riga",
		"ADR.COUNTRY":    "Latvia",
		"ADR.POSTALCODE": "LV-1000",
		"X-GOOGLE-ID":    "c42",
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("Generate()[%q] = %v, want %q", key, got[key], value)
		}
	}
	if _, ok := got["gc_id"]; ok {
		t.Error("vcf output must not contain a plain prefixed id key")
	}
	if uid, ok := got["UID"].(string); !ok || uid == "" {
		t.Errorf("expected generated UID, got %v", got["UID"])
	}
}

func TestFormatterCoalescesKeyCollisions(t *testing.T) {
	// Two biography entries land on NOTE and NOTE[2]; but two name entries
	// with only display names under the default convention land on name
	// and name_2. Collision coalescing is exercised through the vcf
	// formatter's shared FN field id: the formatted name and an
	// organization-fallback structured name both target FN.
	contact := people.Contact{
		ResourceName:  "people/c7",
		Organizations: []people.Organization{{Name: "Acme Corp"}},
	}

	fields := NewFormatter(ConventionVCF).Generate(contact, "", Context{})
	v, ok := fields.Get("FN")
	if !ok {
		t.Fatal("expected FN key")
	}
	list, isList := v.([]string)
	if !isList || len(list) != 2 {
		t.Fatalf("FN = %v, want two coalesced values", v)
	}
	for _, item := range list {
		if item != "Acme Corp" {
			t.Errorf("FN entry = %q, want %q", item, "Acme Corp")
		}
	}
}

func TestFormatterLabelList(t *testing.T) {
	membership := func(id string) people.Membership {
		return people.Membership{ContactGroupMembership: &people.ContactGroupMembership{ContactGroupID: id}}
	}
	contact := people.Contact{
		ResourceName: "people/c9",
		Memberships:  []people.Membership{membership("g1"), membership("g2")},
	}
	labelMap := map[string]string{"g1": "Friends", "g2": "Work"}

	fields := NewFormatter(ConventionDefault).Generate(contact, "gc_", Context{LabelMap: labelMap})
	v, _ := fields.Get("gc_labels")
	if !reflect.DeepEqual(v, []string{"Friends", "Work"}) {
		t.Errorf("gc_labels = %v, want list", v)
	}

	fields = NewFormatter(ConventionVCF).Generate(contact, "gc_", Context{LabelMap: labelMap})
	v, _ = fields.Get("CATEGORIES")
	if s, ok := v.(string); !ok || !strings.Contains(s, ", ") {
		t.Errorf("CATEGORIES = %v, want comma-joined string", v)
	}
}

func TestFieldsPreserveInsertionOrder(t *testing.T) {
	f := NewFields()
	f.add("b", "1")
	f.add("a", "2")
	f.add("b", "3")

	if got := f.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", got)
	}
	v, _ := f.Get("b")
	if !reflect.DeepEqual(v, []string{"1", "3"}) {
		t.Errorf("coalesced value = %v, want [1 3]", v)
	}
}
