package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	DefaultBranch = "main"
	DefaultAuthor = "brain"
	DefaultEmail  = "brain@local"

	historyDir = ".brain/history"
)

// Commit is one recorded vault change.
type Commit struct {
	Hash      string
	Message   string
	Author    string
	Timestamp time.Time
}

// VaultHistory versions the vault's markdown tree. The object store lives
// under .brain/history so the vault folder itself stays a plain directory
// of notes, with no .git visible to sync tools.
type VaultHistory struct {
	repo     *git.Repository
	worktree *git.Worktree
	rootPath string
}

var _ Historian = (*VaultHistory)(nil)

func historyStorage(vaultRoot string) *filesystem.Storage {
	fs := osfs.New(filepath.Join(vaultRoot, filepath.FromSlash(historyDir)))
	return filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
}

// InitHistory creates the history store for a vault and records the first
// commit so later logs always have a head.
func InitHistory(vaultRoot string) (*VaultHistory, error) {
	storePath := filepath.Join(vaultRoot, filepath.FromSlash(historyDir))
	if err := os.MkdirAll(storePath, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	repo, err := git.Init(historyStorage(vaultRoot), osfs.New(vaultRoot))
	if err != nil {
		return nil, fmt.Errorf("init history: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	cfg.Init.DefaultBranch = DefaultBranch
	if err := repo.SetConfig(cfg); err != nil {
		return nil, fmt.Errorf("set config: %w", err)
	}

	h, err := newVaultHistory(repo, vaultRoot)
	if err != nil {
		return nil, err
	}

	// seed the first commit so Log always has a head to walk from
	markerPath := filepath.Join(vaultRoot, ".brain-init")
	if err := os.WriteFile(markerPath, []byte("vault history initialized\n"), 0644); err != nil {
		return nil, fmt.Errorf("write init marker: %w", err)
	}
	if _, err := h.CommitAll(context.Background(), "init: start vault history"); err != nil {
		return nil, err
	}

	return h, nil
}

// OpenHistory opens an existing history store. ErrNotFound means the vault
// was initialized without history.
func OpenHistory(vaultRoot string) (*VaultHistory, error) {
	storePath := filepath.Join(vaultRoot, filepath.FromSlash(historyDir))
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	repo, err := git.Open(historyStorage(vaultRoot), osfs.New(vaultRoot))
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	return newVaultHistory(repo, vaultRoot)
}

func newVaultHistory(repo *git.Repository, vaultRoot string) (*VaultHistory, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	// the history store must never track itself
	worktree.Excludes = []gitignore.Pattern{
		gitignore.ParsePattern(".brain/", nil),
	}

	return &VaultHistory{
		repo:     repo,
		worktree: worktree,
		rootPath: vaultRoot,
	}, nil
}

// CommitAll stages every vault change and commits it. A clean worktree
// returns an empty hash and no error.
func (h *VaultHistory) CommitAll(ctx context.Context, message string) (string, error) {
	status, err := h.worktree.Status()
	if err != nil {
		return "", fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}

	if err := h.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("stage changes: %w", err)
	}

	hash, err := h.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  DefaultAuthor,
			Email: DefaultEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return hash.String(), nil
}

// Log returns recent commits, newest first. limit <= 0 means all.
func (h *VaultHistory) Log(ctx context.Context, limit int) ([]*Commit, error) {
	iter, err := h.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []*Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return io.EOF
		}
		commits = append(commits, &Commit{
			Hash:      c.Hash.String(),
			Message:   strings.TrimSpace(c.Message),
			Author:    c.Author.Name,
			Timestamp: c.Author.When,
		})
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, err
	}

	return commits, nil
}
