// Package sync reconciles remote contact batches against the vault's
// note folder: it matches existing notes by external ID, decides
// create/update/rename per contact, and merges generated frontmatter into
// each note while preserving user content.
package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"peoplesync/internal/format"
	"peoplesync/internal/note"
	"peoplesync/internal/people"
	"peoplesync/internal/vault"
)

// ErrFolderMissing reports that the configured contacts folder does not
// exist and the batch was not processed.
var ErrFolderMissing = errors.New("contacts folder missing")

// vcfIDKey is the provider-specific ID property written by the vCard
// convention; the note index recognizes it alongside the generic id key
// so notes survive a convention switch.
const vcfIDKey = "X-GOOGLE-ID"

// uidKey is the vCard UID property. A UID already stored in a note wins
// over the freshly generated one, keeping the field stable across syncs.
const uidKey = "UID"

// Config bundles the per-sync settings for the note writer.
type Config struct {
	// Folder is the vault folder holding contact notes.
	Folder string

	// FilePrefix is prepended to generated note filenames.
	FilePrefix string

	// PropertyPrefix is prepended to generated frontmatter keys under the
	// default convention.
	PropertyPrefix string

	// SyncLabel restricts the sync to contacts carrying this label.
	// Empty means all contacts.
	SyncLabel string

	// Convention selects the frontmatter key naming rules.
	Convention format.Convention

	// NoteBody seeds the body of newly created notes.
	NoteBody string

	OrgAsLink      bool
	RelationAsLink bool

	// TrackSyncTime writes a synced-at timestamp key. Suppressed under
	// the vCard convention, which has no room for a non-canonical
	// property.
	TrackSyncTime bool

	// RenameFiles renames an existing note when the contact's computed
	// filename changes.
	RenameFiles bool

	// LastNameFirst prefers the "Last, First" display form for
	// filenames.
	LastNameFirst bool
}

// Stats summarizes one reconciliation pass.
type Stats struct {
	Created int
	Updated int
	Renamed int
	Skipped int
}

// NoteWriter reconciles contacts into vault notes.
type NoteWriter struct {
	vault *vault.Vault

	// Now is the clock used for sync timestamps; replaceable in tests.
	Now func() time.Time

	// DryRun computes every change and emits unified diffs to DiffOut
	// instead of writing.
	DryRun  bool
	DiffOut io.Writer
}

// NewNoteWriter creates a writer over the given vault.
func NewNoteWriter(v *vault.Vault) *NoteWriter {
	return &NoteWriter{vault: v, Now: time.Now, DiffOut: io.Discard}
}

// WriteNotesForContacts reconciles the contact batch into the configured
// folder. Contacts are processed strictly in input order; the note index
// is mutated on rename so later contacts observe the new path. A missing
// folder aborts the whole batch.
func (w *NoteWriter) WriteNotesForContacts(ctx context.Context, cfg Config, labelMap map[string]string, contacts []people.Contact) (*Stats, error) {
	if err := w.vault.EnsureFolder(cfg.Folder); err != nil {
		return nil, err
	}
	if !w.vault.FolderExists(cfg.Folder) {
		return nil, fmt.Errorf("%w: %s", ErrFolderMissing, cfg.Folder)
	}

	index, err := w.buildNoteIndex(cfg)
	if err != nil {
		return nil, err
	}

	formatter := format.NewFormatter(cfg.Convention)
	fctx := format.Context{
		LabelMap:       invertLabelMap(labelMap),
		OrgAsLink:      cfg.OrgAsLink,
		RelationAsLink: cfg.RelationAsLink,
	}

	stats := &Stats{}
	for _, contact := range contacts {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := w.processContact(cfg, formatter, fctx, labelMap, index, contact, stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// buildNoteIndex maps external IDs to existing note paths, recognizing
// both the generic prefixed id key and the vCard ID property. Notes whose
// frontmatter cannot be parsed simply do not appear in the index.
func (w *NoteWriter) buildNoteIndex(cfg Config) (map[string]string, error) {
	files, err := w.vault.ListMarkdown(cfg.Folder)
	if err != nil {
		return nil, err
	}

	index := make(map[string]string)
	idKey := cfg.PropertyPrefix + "id"
	for _, path := range files {
		content, err := w.vault.Read(path)
		if err != nil {
			log.Printf("sync: skipping unreadable note %s: %v", path, err)
			continue
		}
		fm := note.Parse(content).Frontmatter
		id := fm.GetString(idKey)
		if id == "" {
			id = fm.GetString(vcfIDKey)
		}
		if id != "" {
			index[id] = path
		}
	}
	return index, nil
}

func (w *NoteWriter) processContact(cfg Config, formatter *format.Formatter, fctx format.Context, labelMap map[string]string, index map[string]string, contact people.Contact, stats *Stats) error {
	if !HasSyncLabel(contact, cfg.SyncLabel, labelMap) {
		stats.Skipped++
		return nil
	}

	id := contact.ExternalID()
	if id == "" {
		stats.Skipped++
		return nil
	}

	filename := noteFilename(contact, id, cfg)
	if filename == "" {
		stats.Skipped++
		return nil
	}

	if cfg.RenameFiles {
		if existing, ok := index[id]; ok && existing != filename {
			if w.DryRun {
				fmt.Fprintf(w.DiffOut, "would rename %s -> %s\n", existing, filename)
			} else {
				if err := w.vault.Rename(existing, filename); err != nil {
					return err
				}
				// Later contacts must observe the new path.
				index[id] = filename
			}
			stats.Renamed++
		}
	}

	target, isNew := w.resolveTarget(index, id, filename)
	existing, err := w.loadNote(target, isNew, cfg.NoteBody)
	if err != nil {
		return err
	}

	generated := generatedFrontmatter(formatter, fctx, contact, cfg, w.Now)
	preserveUID(existing.Frontmatter, generated)

	merged := &note.Note{
		Frontmatter: note.Merge(existing.Frontmatter, generated),
		Body:        existing.Body,
	}
	if err := w.writeNote(target, existing, merged, isNew); err != nil {
		return err
	}

	if isNew {
		index[id] = target
		stats.Created++
	} else {
		stats.Updated++
	}
	return nil
}

func (w *NoteWriter) resolveTarget(index map[string]string, id, filename string) (path string, isNew bool) {
	if path, ok := index[id]; ok {
		return path, false
	}
	if w.vault.Exists(filename) {
		return filename, false
	}
	return filename, true
}

func (w *NoteWriter) loadNote(path string, isNew bool, body string) (*note.Note, error) {
	if isNew {
		return &note.Note{Frontmatter: note.NewFrontmatter(), Body: body}, nil
	}
	content, err := w.vault.Read(path)
	if err != nil {
		return nil, err
	}
	return note.Parse(content), nil
}

func (w *NoteWriter) writeNote(path string, before, after *note.Note, isNew bool) error {
	rendered, err := after.Render()
	if err != nil {
		return err
	}

	if w.DryRun {
		var old string
		if !isNew {
			prev, err := before.Render()
			if err != nil {
				return err
			}
			old = string(prev)
		}
		return w.writeDiff(path, old, string(rendered))
	}
	return w.vault.Write(path, rendered)
}

func (w *NoteWriter) writeDiff(path, old, new string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(new),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("failed to compute diff for %s: %w", path, err)
	}
	if text != "" {
		fmt.Fprint(w.DiffOut, text)
	}
	return nil
}

// generatedFrontmatter runs the formatter and appends the sync timestamp
// when tracking is on and the convention allows it.
func generatedFrontmatter(formatter *format.Formatter, fctx format.Context, contact people.Contact, cfg Config, now func() time.Time) *note.Frontmatter {
	fields := formatter.Generate(contact, cfg.PropertyPrefix, fctx)

	fm := note.NewFrontmatter()
	for _, key := range fields.Keys() {
		v, _ := fields.Get(key)
		fm.Set(key, v)
	}
	if cfg.TrackSyncTime && cfg.Convention != format.ConventionVCF {
		fm.Set(cfg.PropertyPrefix+"synced", now().UTC().Format(time.RFC3339))
	}
	return fm
}

// preserveUID keeps a UID already stored in the note instead of the
// freshly generated one, so the field stays stable across syncs.
func preserveUID(existing, generated *note.Frontmatter) {
	if _, ok := generated.Get(uidKey); !ok {
		return
	}
	if prior := existing.GetString(uidKey); prior != "" {
		generated.Set(uidKey, prior)
	}
}

// noteFilename computes the candidate note path for a contact: the
// "Last, First" display form when enabled, else the display name, else
// the primary organization name, else the external ID.
func noteFilename(contact people.Contact, id string, cfg Config) string {
	name := ""
	if cfg.LastNameFirst && len(contact.Names) > 0 {
		name = strings.ReplaceAll(contact.Names[0].DisplayNameLastFirst, ",", "")
	}
	if name == "" && len(contact.Names) > 0 {
		name = contact.Names[0].DisplayName
	}
	if name == "" && len(contact.Organizations) > 0 {
		name = contact.Organizations[0].Name
	}
	if name == "" {
		name = id
	}
	if name == "" {
		return ""
	}
	return cfg.Folder + "/" + cfg.FilePrefix + vault.SafeFileName(name) + ".md"
}

// HasSyncLabel reports whether the contact carries the configured label.
// An empty label admits every contact. The label map keys are the
// case-folded label names returned by the groups endpoint.
func HasSyncLabel(contact people.Contact, syncLabel string, labelMap map[string]string) bool {
	if syncLabel == "" {
		return true
	}
	targetGroupID := labelMap[strings.ToLower(syncLabel)]
	if targetGroupID == "" {
		return false
	}
	for _, m := range contact.Memberships {
		if m.GroupID() == targetGroupID {
			return true
		}
	}
	return false
}

func invertLabelMap(labelMap map[string]string) map[string]string {
	inverted := make(map[string]string, len(labelMap))
	for name, id := range labelMap {
		inverted[id] = name
	}
	return inverted
}
