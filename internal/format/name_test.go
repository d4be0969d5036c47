package format

import (
	"reflect"
	"testing"

	"peoplesync/internal/people"
)

func TestNameAdapterDefault(t *testing.T) {
	tests := []struct {
		name    string
		contact people.Contact
		want    []Result
	}{
		{
			name: "display names in order",
			contact: people.Contact{
				Names: []people.Name{{DisplayName: "John Smith"}, {DisplayName: "Jane Doe"}},
			},
			want: []Result{scalar("John Smith"), scalar("Jane Doe")},
		},
		{
			name: "organization fallback",
			contact: people.Contact{
				Organizations: []people.Organization{{Name: "Acme Corp"}},
			},
			want: []Result{scalar("Acme Corp")},
		},
		{
			name:    "nothing available",
			contact: people.Contact{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameAdapter{}.Extract(tt.contact, Context{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNameAdapterStructured(t *testing.T) {
	contact := people.Contact{
		Names: []people.Name{{
			DisplayName:     "Dr. John Michael Smith Jr.",
			GivenName:       "John",
			MiddleName:      "Michael",
			FamilyName:      "Smith",
			HonorificPrefix: "Dr.",
			HonorificSuffix: "Jr.",
		}},
	}

	got := NameAdapter{}.Extract(contact, Context{Convention: ConventionVCF})
	want := []Result{
		subfield("John", "GN", 0),
		subfield("Michael", "MN", 0),
		subfield("Smith", "FN", 0),
		subfield("Dr.", "PREFIX", 0),
		subfield("Jr.", "SUFFIX", 0),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestNameAdapterStructuredPhonetic(t *testing.T) {
	contact := people.Contact{
		Names: []people.Name{{
			PhoneticFullName:   "Jon Sumisu",
			PhoneticGivenName:  "Jon",
			PhoneticFamilyName: "Sumisu",
		}},
	}

	got := NameAdapter{}.Extract(contact, Context{Convention: ConventionVCF})
	want := []Result{
		subfield("Jon Sumisu", "PHONETIC_FULL", 0),
		subfield("Jon", "PHONETIC_GN", 0),
		subfield("Sumisu", "PHONETIC_FN", 0),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestNameAdapterStructuredGroupsByEntry(t *testing.T) {
	contact := people.Contact{
		Names: []people.Name{
			{GivenName: "John", FamilyName: "Smith"},
			{GivenName: "Jane", FamilyName: "Doe"},
		},
	}

	got := NameAdapter{}.Extract(contact, Context{Convention: ConventionVCF})
	want := []Result{
		subfield("John", "GN", 0),
		subfield("Smith", "FN", 0),
		subfield("Jane", "GN", 1),
		subfield("Doe", "FN", 1),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestNameAdapterStructuredOrgFallback(t *testing.T) {
	contact := people.Contact{
		Organizations: []people.Organization{{Name: "Acme Corp"}},
	}

	got := NameAdapter{}.Extract(contact, Context{Convention: ConventionVCF})
	want := []Result{scalar("Acme Corp")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestFormattedNameAdapter(t *testing.T) {
	tests := []struct {
		name    string
		contact people.Contact
		ctx     Context
		want    []Result
	}{
		{
			name:    "display name under vcf",
			contact: people.Contact{Names: []people.Name{{DisplayName: "John Smith"}}},
			ctx:     Context{Convention: ConventionVCF},
			want:    []Result{scalar("John Smith")},
		},
		{
			name:    "organization fallback",
			contact: people.Contact{Organizations: []people.Organization{{Name: "Acme Corp"}}},
			ctx:     Context{Convention: ConventionVCF},
			want:    []Result{scalar("Acme Corp")},
		},
		{
			name:    "inactive under default convention",
			contact: people.Contact{Names: []people.Name{{DisplayName: "John Smith"}}},
			ctx:     Context{},
			want:    nil,
		},
		{
			name:    "nothing available",
			contact: people.Contact{},
			ctx:     Context{Convention: ConventionVCF},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormattedNameAdapter{}.Extract(tt.contact, tt.ctx)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
