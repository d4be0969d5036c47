// Package vault provides filesystem access to the folder of managed
// notes. Paths passed to and returned from Vault methods are relative to
// the vault root and use forward slashes.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Vault is rooted at a directory holding markdown notes.
type Vault struct {
	root string
}

// New creates a vault rooted at the given path, expanding a leading ~.
func New(root string) *Vault {
	if strings.HasPrefix(root, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	return &Vault{root: root}
}

// Root returns the vault root directory.
func (v *Vault) Root() string {
	return v.root
}

// Abs resolves a vault-relative path to an absolute one.
func (v *Vault) Abs(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(rel))
}

// EnsureFolder creates a folder (and parents) inside the vault if it does
// not already exist.
func (v *Vault) EnsureFolder(rel string) error {
	if err := os.MkdirAll(v.Abs(rel), 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", rel, err)
	}
	return nil
}

// FolderExists reports whether the given vault folder exists.
func (v *Vault) FolderExists(rel string) bool {
	info, err := os.Stat(v.Abs(rel))
	return err == nil && info.IsDir()
}

// Exists reports whether a note exists at the given path.
func (v *Vault) Exists(rel string) bool {
	info, err := os.Stat(v.Abs(rel))
	return err == nil && !info.IsDir()
}

// ListMarkdown walks a vault folder recursively and returns the relative
// paths of all markdown files, skipping hidden directories.
func (v *Vault) ListMarkdown(rel string) ([]string, error) {
	base := v.Abs(rel)

	var files []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != base {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		relPath, err := filepath.Rel(v.root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes under %s: %w", rel, err)
	}
	return files, nil
}

// Read returns a note's content.
func (v *Vault) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(v.Abs(rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", rel, err)
	}
	return data, nil
}

// Write stores a note's content, creating parent folders as needed.
func (v *Vault) Write(rel string, data []byte) error {
	abs := v.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create folder for note %s: %w", rel, err)
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", rel, err)
	}
	return nil
}

// Rename moves a note to a new path inside the vault.
func (v *Vault) Rename(oldRel, newRel string) error {
	if err := os.Rename(v.Abs(oldRel), v.Abs(newRel)); err != nil {
		return fmt.Errorf("failed to rename note %s to %s: %w", oldRel, newRel, err)
	}
	return nil
}

// unsafeChars are characters that cannot appear in note filenames.
const unsafeChars = `\/:*?"<>|`

// SafeFileName replaces filesystem-unsafe characters in a note name with
// underscores.
func SafeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(unsafeChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
