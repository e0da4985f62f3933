package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndOpenHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if _, err := OpenHistory(dir); err != ErrNotFound {
		t.Fatalf("open before init = %v, want ErrNotFound", err)
	}

	h, err := InitHistory(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	commits, err := h.Log(ctx, 0)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("commits = %d, want the seed commit", len(commits))
	}

	if _, err := OpenHistory(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestCommitAllRecordsChanges(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	h, err := InitHistory(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "Ideas"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	note := filepath.Join(dir, "Ideas", "cache warmer.md")
	if err := os.WriteFile(note, []byte("a note\n"), 0644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	hash, err := h.CommitAll(ctx, "capture: cache warmer (filed)")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if hash == "" {
		t.Fatal("expected a commit hash")
	}

	commits, err := h.Log(ctx, 5)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(commits))
	}
	if commits[0].Message != "capture: cache warmer (filed)" {
		t.Errorf("message = %q", commits[0].Message)
	}
}

func TestCommitAllCleanWorktree(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	h, err := InitHistory(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	hash, err := h.CommitAll(ctx, "nothing changed")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if hash != "" {
		t.Errorf("hash = %q, want empty for clean worktree", hash)
	}
}

func TestHistoryIgnoresOwnStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	h, err := InitHistory(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	// config churn under .brain must never show up as a vault change
	if err := SaveConfig(dir, DefaultConfig()); err != nil {
		t.Fatalf("save config: %v", err)
	}

	hash, err := h.CommitAll(ctx, "should be clean")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if hash != "" {
		t.Errorf("hash = %q, .brain contents were tracked", hash)
	}
}

func TestLogLimit(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	h, err := InitHistory(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, "note"+string(rune('a'+i))+".md")
		if err := os.WriteFile(name, []byte("x\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := h.CommitAll(ctx, "change"); err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
	}

	commits, err := h.Log(ctx, 2)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(commits) != 2 {
		t.Errorf("commits = %d, want 2", len(commits))
	}
}
