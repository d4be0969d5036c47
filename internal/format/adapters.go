package format

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"peoplesync/internal/people"
)

// EmailAdapter emits one result per non-empty email address, preserving
// source order.
type EmailAdapter struct{}

func (EmailAdapter) Extract(c people.Contact, _ Context) []Result {
	return typedValues(c.EmailAddresses)
}

// PhoneAdapter emits one result per non-empty phone number.
type PhoneAdapter struct{}

func (PhoneAdapter) Extract(c people.Contact, _ Context) []Result {
	return typedValues(c.PhoneNumbers)
}

// BioAdapter emits one result per non-empty biography entry.
type BioAdapter struct{}

func (BioAdapter) Extract(c people.Contact, _ Context) []Result {
	return typedValues(c.Biographies)
}

func typedValues(items []people.TypedValue) []Result {
	var results []Result
	for _, item := range items {
		if item.Value == "" {
			continue
		}
		results = append(results, scalar(item.Value))
	}
	return results
}

// OrganizationAdapter emits one result per organization with a name.
// Names are wrapped as [[wiki links]] when the context asks for it, except
// under the vCard convention, which never applies link decoration.
type OrganizationAdapter struct{}

func (OrganizationAdapter) Extract(c people.Contact, ctx Context) []Result {
	asLink := ctx.OrgAsLink && ctx.Convention != ConventionVCF

	var results []Result
	for _, org := range c.Organizations {
		if org.Name == "" {
			continue
		}
		value := org.Name
		if asLink {
			value = "[[" + value + "]]"
		}
		results = append(results, scalar(value))
	}
	return results
}

// JobTitleAdapter emits one result per organization with a title.
type JobTitleAdapter struct{}

func (JobTitleAdapter) Extract(c people.Contact, _ Context) []Result {
	var results []Result
	for _, org := range c.Organizations {
		if org.Title != "" {
			results = append(results, scalar(org.Title))
		}
	}
	return results
}

// DepartmentAdapter emits one result per organization with a department.
type DepartmentAdapter struct{}

func (DepartmentAdapter) Extract(c people.Contact, _ Context) []Result {
	var results []Result
	for _, org := range c.Organizations {
		if org.Department != "" {
			results = append(results, scalar(org.Department))
		}
	}
	return results
}

// BirthdayAdapter formats each structured birthday as YYYY-MM-DD, with the
// literal token XXXX standing in for an unknown year. Entries without a
// structured date are skipped.
type BirthdayAdapter struct{}

func (BirthdayAdapter) Extract(c people.Contact, _ Context) []Result {
	var results []Result
	for _, b := range c.Birthdays {
		if b.Date == nil {
			continue
		}
		year := "XXXX"
		if b.Date.Year != 0 {
			year = fmt.Sprintf("%d", b.Date.Year)
		}
		results = append(results, scalar(fmt.Sprintf("%s-%02d-%02d", year, b.Date.Month, b.Date.Day)))
	}
	return results
}

// RelationsAdapter emits one "type; person" result per relation with a
// person. The person is wrapped as a [[wiki link]] when the context asks
// for it, never under the vCard convention.
type RelationsAdapter struct{}

func (RelationsAdapter) Extract(c people.Contact, ctx Context) []Result {
	asLink := ctx.RelationAsLink && ctx.Convention != ConventionVCF

	var results []Result
	for _, rel := range c.Relations {
		if rel.Person == "" {
			continue
		}
		person := rel.Person
		if asLink {
			person = "[[" + person + "]]"
		}
		results = append(results, scalar(fmt.Sprintf("%s; %s", rel.Type, person)))
	}
	return results
}

// LabelAdapter resolves group memberships to label names through the
// context's label map. The default convention gets a single list-valued
// result; the vCard convention gets a single comma-joined string.
type LabelAdapter struct{}

func (LabelAdapter) Extract(c people.Contact, ctx Context) []Result {
	if len(c.Memberships) == 0 || len(ctx.LabelMap) == 0 {
		return nil
	}

	var labels []string
	for _, m := range c.Memberships {
		if name, ok := ctx.LabelMap[m.GroupID()]; ok && m.GroupID() != "" {
			labels = append(labels, name)
		}
	}
	if len(labels) == 0 {
		return nil
	}

	if ctx.Convention == ConventionVCF {
		return []Result{scalar(strings.Join(labels, ", "))}
	}
	return []Result{{List: labels}}
}

// ExternalIDAdapter emits the contact's stable external ID, derived from
// the segment after the last slash of the resource path.
type ExternalIDAdapter struct{}

func (ExternalIDAdapter) Extract(c people.Contact, _ Context) []Result {
	id := c.ExternalID()
	if id == "" {
		return nil
	}
	return []Result{scalar(id)}
}

// UIDAdapter generates a fresh random UID. The value is not stable across
// syncs; the note writer preserves an already-written UID instead of
// letting this one through.
type UIDAdapter struct{}

func (UIDAdapter) Extract(_ people.Contact, _ Context) []Result {
	return []Result{scalar(uuid.NewString())}
}
