package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestInitCmdCreatesVault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BRAIN_VAULT", dir)

	if _, err := runCommand(t, "init"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, folder := range []string{"People", "Projects", "Ideas", "Admin", "InboxLog", "_digests"} {
		if _, err := os.Stat(filepath.Join(dir, folder)); err != nil {
			t.Errorf("folder %s not created: %v", folder, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, ".brain", "config.yaml")); err != nil {
		t.Error("config.yaml not created")
	}
}

func TestInitCmdWithHistory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BRAIN_VAULT", dir)

	if _, err := runCommand(t, "init", "--history"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".brain", "history")); err != nil {
		t.Error("history store not created")
	}
}

func TestInitCmdIdempotent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BRAIN_VAULT", dir)

	if _, err := runCommand(t, "init", "--history"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := runCommand(t, "init", "--history"); err != nil {
		t.Fatalf("second init: %v", err)
	}
}

func TestInitCmdVaultFlagWins(t *testing.T) {
	envDir := t.TempDir()
	flagDir := filepath.Join(t.TempDir(), "flagged")
	t.Setenv("BRAIN_VAULT", envDir)

	if _, err := runCommand(t, "init", "--vault", flagDir); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(flagDir, "People")); err != nil {
		t.Error("vault not created at --vault path")
	}
}
