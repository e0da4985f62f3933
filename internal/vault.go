package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Vault is the folder-based knowledge store. The filesystem is the source
// of truth: there is no in-memory cache, every operation re-reads disk, and
// files edited outside this process are first-class citizens.
type Vault struct {
	root string
	log  *slog.Logger
	now  func() time.Time
}

// NewVault opens the vault at root, creating the category, audit and
// digest folders if they are missing.
func NewVault(root string, logger *slog.Logger) (*Vault, error) {
	if logger == nil {
		logger = slog.Default()
	}

	folders := []string{AuditFolder, DigestFolder}
	for _, cat := range Categories {
		folders = append(folders, cat.Folder())
	}
	for _, folder := range folders {
		if err := os.MkdirAll(filepath.Join(root, folder), 0755); err != nil {
			return nil, fmt.Errorf("create vault folder %s: %w", folder, err)
		}
	}

	return &Vault{root: root, log: logger, now: time.Now}, nil
}

func (v *Vault) Root() string {
	return v.root
}

// EntryPath returns the absolute path of an entry file.
func (v *Vault) EntryPath(cat Category, stem string) string {
	return filepath.Join(v.root, cat.Folder(), stem+".md")
}

func (v *Vault) relPath(path string) string {
	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// entry serialization

func entryMeta(e *Entry) map[string]any {
	meta := map[string]any{}
	for k, val := range e.Extra {
		meta[k] = val
	}

	meta["type"] = string(e.Category)
	meta["name"] = e.Name
	meta["source_id"] = e.SourceID
	meta["confidence"] = e.Confidence
	meta["last_touched"] = e.LastTouched
	if len(e.Tags) > 0 {
		meta["tags"] = e.Tags
	}
	if e.Attributes.Status != "" {
		meta["status"] = e.Attributes.Status
	}
	if e.Attributes.NextAction != "" {
		meta["next_action"] = e.Attributes.NextAction
	}
	if e.Attributes.DueDate != "" {
		meta["due_date"] = e.Attributes.DueDate
	}
	return meta
}

var ownedEntryKeys = map[string]bool{
	"type": true, "name": true, "source_id": true, "confidence": true,
	"last_touched": true, "tags": true, "status": true,
	"next_action": true, "due_date": true,
}

func entryFromDocument(cat Category, stem string, meta map[string]any, body string) *Entry {
	e := &Entry{
		Category:    cat,
		Name:        metaString(meta, "name"),
		SourceID:    metaString(meta, "source_id"),
		Confidence:  metaFloat(meta, "confidence"),
		Tags:        metaStrings(meta, "tags"),
		LastTouched: metaString(meta, "last_touched"),
		Attributes: Attributes{
			Status:     metaString(meta, "status"),
			NextAction: metaString(meta, "next_action"),
			DueDate:    metaString(meta, "due_date"),
		},
		Body: body,
	}
	if e.Name == "" {
		e.Name = stem
	}

	for k, val := range meta {
		if ownedEntryKeys[k] {
			continue
		}
		if e.Extra == nil {
			e.Extra = map[string]any{}
		}
		e.Extra[k] = val
	}
	return e
}

// WriteEntry validates the entry against its category schema, refreshes
// last_touched, and writes the document atomically. The returned path is
// relative to the vault root. The file stem is derived from the entry name.
func (v *Vault) WriteEntry(e *Entry) (string, error) {
	if _, ok := ParseCategory(string(e.Category)); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if err := e.Attributes.Validate(e.Category); err != nil {
		return "", err
	}

	e.LastTouched = v.now().Format(DateLayout)

	stem := SanitizeName(e.Name, e.SourceID)
	path := v.EntryPath(e.Category, stem)

	data, err := encodeDocument(entryMeta(e), e.Body)
	if err != nil {
		return "", fmt.Errorf("encode entry: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write entry: %w", err)
	}

	return v.relPath(path), nil
}

// ReadEntry loads one entry by category and file stem.
func (v *Vault) ReadEntry(cat Category, stem string) (*Entry, error) {
	path := v.EntryPath(cat, stem)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read entry: %w", err)
	}

	meta, body, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", stem, err)
	}

	return entryFromDocument(cat, stem, meta, body), nil
}

// ReadAll enumerates every readable entry, grouped in fixed category order
// and sorted by file name within a category. Unreadable files are skipped
// with a warning so one corrupt document never hides the rest of the store.
func (v *Vault) ReadAll() ([]*Entry, error) {
	var entries []*Entry
	for _, cat := range Categories {
		catEntries, err := v.readCategory(cat)
		if err != nil {
			return nil, err
		}
		entries = append(entries, catEntries...)
	}
	return entries, nil
}

func (v *Vault) readCategory(cat Category) ([]*Entry, error) {
	dir := filepath.Join(v.root, cat.Folder())

	names, err := listMarkdown(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", cat.Folder(), err)
	}

	var entries []*Entry
	for _, name := range names {
		stem := strings.TrimSuffix(name, ".md")
		e, err := v.ReadEntry(cat, stem)
		if err != nil {
			v.log.Warn("skipping unreadable vault file",
				"category", string(cat), "file", name, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func listMarkdown(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".md") {
			continue
		}
		names = append(names, item.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FindBySourceID scans all categories for the entry created by the given
// capture. Returns the entry and its vault-relative path. The path is the
// file the entry was actually read from, not one re-derived from its name,
// since files may have been renamed externally while the frontmatter
// stayed put.
func (v *Vault) FindBySourceID(sourceID string) (*Entry, string, error) {
	for _, cat := range Categories {
		dir := filepath.Join(v.root, cat.Folder())

		names, err := listMarkdown(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("list %s: %w", cat.Folder(), err)
		}

		for _, name := range names {
			stem := strings.TrimSuffix(name, ".md")
			e, err := v.ReadEntry(cat, stem)
			if err != nil {
				v.log.Warn("skipping unreadable vault file",
					"category", string(cat), "file", name, "error", err)
				continue
			}
			if e.SourceID == sourceID {
				return e, v.relPath(v.EntryPath(cat, stem)), nil
			}
		}
	}
	return nil, "", ErrNotFound
}

// DeleteEntry removes the entry filed for the given capture.
func (v *Vault) DeleteEntry(sourceID string) (*Entry, error) {
	e, rel, err := v.FindBySourceID(sourceID)
	if err != nil {
		return nil, err
	}
	if err := os.Remove(filepath.Join(v.root, filepath.FromSlash(rel))); err != nil {
		return nil, fmt.Errorf("delete entry: %w", err)
	}
	return e, nil
}

// Remove deletes the entry document at a vault-relative path, tolerating
// files already removed by an external edit.
func (v *Vault) Remove(relPath string) error {
	err := os.Remove(filepath.Join(v.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	return nil
}

// Recent returns entries of a category touched within the last days.
func (v *Vault) Recent(cat Category, days int) ([]*Entry, error) {
	cutoff := v.now().AddDate(0, 0, -days).Format(DateLayout)

	entries, err := v.readCategory(cat)
	if err != nil {
		return nil, err
	}

	var recent []*Entry
	for _, e := range entries {
		if e.LastTouched >= cutoff {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// Search does a case-insensitive substring match over entry names, bodies,
// tags and attribute values.
func (v *Vault) Search(term string) ([]*Entry, error) {
	needle := strings.ToLower(term)

	all, err := v.ReadAll()
	if err != nil {
		return nil, err
	}

	var matches []*Entry
	for _, e := range all {
		haystack := strings.ToLower(strings.Join([]string{
			e.Name,
			e.Body,
			strings.Join(e.Tags, " "),
			e.Attributes.Status,
			e.Attributes.NextAction,
			e.Attributes.DueDate,
		}, " "))
		if strings.Contains(haystack, needle) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Stats counts entries per category.
func (v *Vault) Stats() (map[Category]int, error) {
	stats := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		names, err := listMarkdown(filepath.Join(v.root, cat.Folder()))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("count %s: %w", cat.Folder(), err)
		}
		stats[cat] = len(names)
	}
	return stats, nil
}
