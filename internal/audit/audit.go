// Package audit checks local contact notes against the remote account
// and reports notes whose external ID no longer resolves to a contact.
package audit

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"peoplesync/internal/note"
	"peoplesync/internal/people"
	"peoplesync/internal/sync"
	"peoplesync/internal/vault"
)

// ReportPath is the vault path of the audit report note. The report is
// overwritten on every run.
const ReportPath = "Contact Audit Report.md"

// Fetcher is the remote surface the auditor needs. *people.Client
// satisfies it.
type Fetcher interface {
	FetchContacts(ctx context.Context, token string) ([]people.Contact, error)
	FetchGroups(ctx context.Context, token string) (map[string]string, error)
}

// Config carries the audit parameters. They mirror the sync settings so
// the audit validates exactly what the sync would manage.
type Config struct {
	Folder         string
	PropertyPrefix string
	SyncLabel      string
}

// Orphan is a note whose stored external ID matched no remote contact.
type Orphan struct {
	Path string
	ID   string
}

// Auditor runs orphan audits over a vault.
type Auditor struct {
	fetcher Fetcher
	vault   *vault.Vault

	// Now is the report timestamp clock; replaceable in tests.
	Now func() time.Time
}

// New creates an auditor.
func New(fetcher Fetcher, v *vault.Vault) *Auditor {
	return &Auditor{fetcher: fetcher, vault: v, Now: time.Now}
}

// Run fetches the remote state, flags orphaned notes, and writes the
// report note. A fetch error aborts before anything is written. Notes
// without an ID field are neither flagged nor validated.
func (a *Auditor) Run(ctx context.Context, token string, cfg Config) ([]Orphan, error) {
	labelMap, err := a.fetcher.FetchGroups(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact groups: %w", err)
	}
	contacts, err := a.fetcher.FetchContacts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	validIDs := make(map[string]bool)
	for _, c := range contacts {
		if !sync.HasSyncLabel(c, cfg.SyncLabel, labelMap) {
			continue
		}
		if id := c.ExternalID(); id != "" {
			validIDs[id] = true
		}
	}

	if !a.vault.FolderExists(cfg.Folder) {
		return nil, fmt.Errorf("%w: %s", sync.ErrFolderMissing, cfg.Folder)
	}
	orphans, err := a.findOrphans(cfg, validIDs)
	if err != nil {
		return nil, err
	}

	report := a.renderReport(cfg, orphans)
	if err := a.vault.Write(ReportPath, []byte(report)); err != nil {
		return nil, fmt.Errorf("failed to write audit report: %w", err)
	}
	return orphans, nil
}

func (a *Auditor) findOrphans(cfg Config, validIDs map[string]bool) ([]Orphan, error) {
	files, err := a.vault.ListMarkdown(cfg.Folder)
	if err != nil {
		return nil, err
	}

	idKey := cfg.PropertyPrefix + "id"
	var orphans []Orphan
	for _, p := range files {
		content, err := a.vault.Read(p)
		if err != nil {
			continue
		}
		fm := note.Parse(content).Frontmatter
		id := fm.GetString(idKey)
		if id == "" {
			id = fm.GetString("X-GOOGLE-ID")
		}
		if id == "" {
			continue
		}
		if !validIDs[id] {
			orphans = append(orphans, Orphan{Path: p, ID: id})
		}
	}
	return orphans, nil
}

func (a *Auditor) renderReport(cfg Config, orphans []Orphan) string {
	var b strings.Builder
	b.WriteString("# Contact Audit Report\n\n")
	fmt.Fprintf(&b, "Date: %s\n", a.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Checked Folder: `%s`\n", cfg.Folder)
	label := cfg.SyncLabel
	if label == "" {
		label = "(None)"
	}
	fmt.Fprintf(&b, "Sync Label: %s\n\n", label)

	if len(orphans) == 0 {
		b.WriteString("**No orphaned contacts found.**\n")
		b.WriteString("All contact notes in the folder match existing remote contacts.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Found %d orphaned contact notes**\n", len(orphans))
	b.WriteString("These notes have a contact ID that was not found in the remote account (filtered by label).\n\n")
	b.WriteString("| File | Contact ID |\n")
	b.WriteString("| :--- | :--- |\n")
	for _, o := range orphans {
		fmt.Fprintf(&b, "| [%s](%s) | `%s` |\n", noteBasename(o.Path), encodePath(o.Path), o.ID)
	}
	return b.String()
}

func noteBasename(p string) string {
	return strings.TrimSuffix(path.Base(p), ".md")
}

func encodePath(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}
