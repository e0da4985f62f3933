package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

// commandContext derives a context for commands that call out to models or
// transcription, bounded by the --timeout flag. A zero or negative timeout
// leaves the context unbounded.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// session is everything a command needs against one vault: the loaded
// config, the open store, and version history when enabled.
type session struct {
	cfg     *internal.Config
	vault   *internal.Vault
	history internal.Historian
}

func resolveVaultPath(cmd *cobra.Command) (string, error) {
	if flag, _ := cmd.Flags().GetString("vault"); flag != "" {
		return flag, nil
	}
	if env := os.Getenv("BRAIN_VAULT"); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "SecondBrain"), nil
}

func openSession(cmd *cobra.Command) (*session, error) {
	vaultPath, err := resolveVaultPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := internal.LoadConfig(vaultPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	vault, err := internal.NewVault(cfg.VaultPath, logger)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, vault: vault}

	if cfg.History {
		history, err := internal.OpenHistory(cfg.VaultPath)
		if err == internal.ErrNotFound {
			return s, nil // history enabled but never initialized; run without it
		}
		if err != nil {
			return nil, err
		}
		s.history = history
	}

	return s, nil
}

func (s *session) provider(ctx context.Context) (internal.Provider, error) {
	key := s.cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", s.cfg.Provider)
	}

	return internal.NewFantasyProvider(ctx, internal.FantasyConfig{
		Provider: s.cfg.Provider,
		APIKey:   key,
		Model:    s.cfg.ModelName(),
	})
}

func (s *session) transcriber() (internal.Transcriber, error) {
	if s.cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("transcription needs an OpenAI API key")
	}
	return internal.NewWhisperTranscriber(s.cfg.OpenAIAPIKey, s.cfg.WhisperModel), nil
}

func (s *session) filing() *internal.FilingService {
	return internal.NewFilingService(s.vault, s.cfg.ConfidenceThreshold, s.history)
}

func (s *session) correction() *internal.CorrectionService {
	return internal.NewCorrectionService(s.vault, s.history)
}
