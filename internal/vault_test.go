package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()

	v, err := NewVault(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}
	return v
}

func TestNewVaultCreatesFolders(t *testing.T) {
	v := newTestVault(t)

	for _, folder := range []string{"People", "Projects", "Ideas", "Admin", "InboxLog", "_digests"} {
		info, err := os.Stat(filepath.Join(v.Root(), folder))
		if err != nil || !info.IsDir() {
			t.Errorf("folder %s missing: %v", folder, err)
		}
	}
}

func TestWriteAndReadEntry(t *testing.T) {
	v := newTestVault(t)

	in := &Entry{
		Category:   CategoryProject,
		Name:       "Q3 launch",
		SourceID:   "2026-03-14_092653",
		Confidence: 0.9,
		Tags:       []string{"work"},
		Attributes: Attributes{Status: ProjectActive, NextAction: "Draft plan"},
		Body:       "Kickoff notes.\n",
	}

	rel, err := v.WriteEntry(in)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if rel != "Projects/Q3 launch.md" {
		t.Errorf("path = %q, want Projects/Q3 launch.md", rel)
	}

	out, err := v.ReadEntry(CategoryProject, "Q3 launch")
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if out.Name != in.Name || out.SourceID != in.SourceID || out.Body != in.Body {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if out.Attributes.Status != ProjectActive {
		t.Errorf("status = %q", out.Attributes.Status)
	}
	if out.LastTouched == "" {
		t.Error("last_touched not stamped")
	}
}

func TestWriteEntryRefreshesLastTouched(t *testing.T) {
	v := newTestVault(t)
	v.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	e := &Entry{Category: CategoryIdea, Name: "cache warmer", SourceID: "id1"}
	if _, err := v.WriteEntry(e); err != nil {
		t.Fatalf("write: %v", err)
	}

	v.now = func() time.Time { return time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC) }
	if _, err := v.WriteEntry(e); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	out, err := v.ReadEntry(CategoryIdea, "cache warmer")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.LastTouched != "2026-03-20" {
		t.Errorf("last_touched = %q, want 2026-03-20", out.LastTouched)
	}
}

func TestWriteEntryRejectsBadCategory(t *testing.T) {
	v := newTestVault(t)

	_, err := v.WriteEntry(&Entry{Category: "poem", Name: "x", SourceID: "id"})
	if err == nil {
		t.Fatal("expected error")
	}

	_, err = v.WriteEntry(&Entry{Category: CategoryNeedsReview, Name: "x", SourceID: "id"})
	if err == nil {
		t.Fatal("needs_review must not be a write destination")
	}
}

func TestWriteEntryRejectsBadAttributes(t *testing.T) {
	v := newTestVault(t)

	tests := []Entry{
		{Category: CategoryProject, Name: "p", SourceID: "id", Attributes: Attributes{Status: "flying"}},
		{Category: CategoryAdmin, Name: "a", SourceID: "id", Attributes: Attributes{Status: "active"}},
		{Category: CategoryAdmin, Name: "a", SourceID: "id", Attributes: Attributes{DueDate: "next tuesday"}},
		{Category: CategoryPerson, Name: "j", SourceID: "id", Attributes: Attributes{Status: "active"}},
	}

	for i, e := range tests {
		if _, err := v.WriteEntry(&e); err == nil {
			t.Errorf("case %d: expected attribute validation error", i)
		}
	}
}

func TestReadEntryNotFound(t *testing.T) {
	v := newTestVault(t)

	if _, err := v.ReadEntry(CategoryPerson, "nobody"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEntryPreservesForeignFrontmatter(t *testing.T) {
	v := newTestVault(t)

	doc := []byte("---\ntype: person\nname: Jane Doe\nsource_id: id1\nfavorite_color: teal\n---\nhand-edited body\n")
	if err := os.WriteFile(v.EntryPath(CategoryPerson, "Jane Doe"), doc, 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	e, err := v.ReadEntry(CategoryPerson, "Jane Doe")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if e.Extra["favorite_color"] != "teal" {
		t.Errorf("extra = %v, want favorite_color preserved", e.Extra)
	}

	if _, err := v.WriteEntry(e); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	again, err := v.ReadEntry(CategoryPerson, "Jane Doe")
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if again.Extra["favorite_color"] != "teal" {
		t.Errorf("foreign key lost on rewrite: %v", again.Extra)
	}
	if again.Body != "hand-edited body\n" {
		t.Errorf("body = %q", again.Body)
	}
}

func TestReadAllSkipsUnreadableFiles(t *testing.T) {
	v := newTestVault(t)

	if _, err := v.WriteEntry(&Entry{Category: CategoryIdea, Name: "good", SourceID: "id1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	corrupt := filepath.Join(v.Root(), "Ideas", "corrupt.md")
	if err := os.WriteFile(corrupt, []byte("---\n\tbad: [unclosed\n---\n"), 0644); err != nil {
		t.Fatalf("seed corrupt: %v", err)
	}

	entries, err := v.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "good" {
		t.Errorf("entries = %v, want only the readable one", entries)
	}
}

func TestReadAllFixedOrder(t *testing.T) {
	v := newTestVault(t)

	seed := []Entry{
		{Category: CategoryAdmin, Name: "renew passport", SourceID: "id4"},
		{Category: CategoryPerson, Name: "Jane", SourceID: "id1"},
		{Category: CategoryIdea, Name: "cache warmer", SourceID: "id3"},
		{Category: CategoryProject, Name: "Q3 launch", SourceID: "id2"},
	}
	for i := range seed {
		if _, err := v.WriteEntry(&seed[i]); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	entries, err := v.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}

	var cats []Category
	for _, e := range entries {
		cats = append(cats, e.Category)
	}
	want := []Category{CategoryPerson, CategoryProject, CategoryIdea, CategoryAdmin}
	for i, cat := range want {
		if cats[i] != cat {
			t.Fatalf("order = %v, want %v", cats, want)
		}
	}
}

func TestFindBySourceID(t *testing.T) {
	v := newTestVault(t)

	if _, err := v.WriteEntry(&Entry{Category: CategoryPerson, Name: "Jane", SourceID: "id1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	e, rel, err := v.FindBySourceID("id1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if e.Name != "Jane" || rel != "People/Jane.md" {
		t.Errorf("got %q at %q", e.Name, rel)
	}

	if _, _, err := v.FindBySourceID("missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFindBySourceIDExternallyRenamedFile(t *testing.T) {
	v := newTestVault(t)

	if _, err := v.WriteEntry(&Entry{Category: CategoryPerson, Name: "Jane Doe", SourceID: "id1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// rename the file on disk, leaving the frontmatter name untouched
	if err := os.Rename(v.EntryPath(CategoryPerson, "Jane Doe"), v.EntryPath(CategoryPerson, "JD")); err != nil {
		t.Fatalf("rename: %v", err)
	}

	e, rel, err := v.FindBySourceID("id1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if e.Name != "Jane Doe" {
		t.Errorf("name = %q", e.Name)
	}
	if rel != "People/JD.md" {
		t.Errorf("path = %q, want the renamed file People/JD.md", rel)
	}

	if _, err := v.DeleteEntry("id1"); err != nil {
		t.Fatalf("delete after rename: %v", err)
	}
	if _, err := os.Stat(v.EntryPath(CategoryPerson, "JD")); !os.IsNotExist(err) {
		t.Error("renamed file still on disk after delete")
	}
}

func TestDeleteEntry(t *testing.T) {
	v := newTestVault(t)

	if _, err := v.WriteEntry(&Entry{Category: CategoryIdea, Name: "drop me", SourceID: "id1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	e, err := v.DeleteEntry("id1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if e.Name != "drop me" {
		t.Errorf("deleted = %q", e.Name)
	}

	if _, err := v.ReadEntry(CategoryIdea, "drop me"); err != ErrNotFound {
		t.Errorf("entry still readable after delete: %v", err)
	}
}

func TestRecentWindow(t *testing.T) {
	v := newTestVault(t)

	v.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	if _, err := v.WriteEntry(&Entry{Category: CategoryIdea, Name: "old", SourceID: "id1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	v.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	if _, err := v.WriteEntry(&Entry{Category: CategoryIdea, Name: "fresh", SourceID: "id2"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	recent, err := v.Recent(CategoryIdea, 7)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Name != "fresh" {
		t.Errorf("recent = %v, want only fresh", recent)
	}
}

func TestSearch(t *testing.T) {
	v := newTestVault(t)

	seed := []Entry{
		{Category: CategoryPerson, Name: "Jane Doe", SourceID: "id1", Body: "works on infra"},
		{Category: CategoryProject, Name: "Q3 launch", SourceID: "id2", Tags: []string{"infra"}},
		{Category: CategoryIdea, Name: "cache warmer", SourceID: "id3"},
	}
	for i := range seed {
		if _, err := v.WriteEntry(&seed[i]); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	hits, err := v.Search("INFRA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("hits = %d, want 2", len(hits))
	}

	none, err := v.Search("zeppelin")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("hits = %v, want none", none)
	}
}

func TestStats(t *testing.T) {
	v := newTestVault(t)

	for i, e := range []Entry{
		{Category: CategoryPerson, Name: "a", SourceID: "id1"},
		{Category: CategoryPerson, Name: "b", SourceID: "id2"},
		{Category: CategoryAdmin, Name: "c", SourceID: "id3"},
	} {
		if _, err := v.WriteEntry(&e); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	stats, err := v.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[CategoryPerson] != 2 || stats[CategoryAdmin] != 1 || stats[CategoryIdea] != 0 {
		t.Errorf("stats = %v", stats)
	}
}
