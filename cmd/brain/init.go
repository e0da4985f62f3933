package main

import (
	"fmt"
	"log/slog"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new vault",
		Long:  `Create the vault folder structure and write the default config. Safe to run on an existing vault.`,
		RunE:  makeInitRunner(),
	}

	cmd.Flags().Bool("history", false, "Track vault changes in version history")
	cmd.Flags().String("provider", "", "Text generation provider (anthropic|openai|openrouter)")
	return cmd
}

func makeInitRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		vaultPath, err := resolveVaultPath(cmd)
		if err != nil {
			return err
		}

		cfg, err := internal.LoadConfig(vaultPath)
		if err != nil {
			return err
		}

		if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
			cfg.Provider = provider
		}
		withHistory, _ := cmd.Flags().GetBool("history")
		if withHistory {
			cfg.History = true
		}

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		if _, err := internal.NewVault(vaultPath, logger); err != nil {
			return fmt.Errorf("create vault: %w", err)
		}

		if err := internal.SaveConfig(vaultPath, cfg); err != nil {
			return err
		}

		if cfg.History {
			if _, err := internal.OpenHistory(vaultPath); err == internal.ErrNotFound {
				if _, err := internal.InitHistory(vaultPath); err != nil {
					return fmt.Errorf("init history: %w", err)
				}
			} else if err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized vault at %s\n", vaultPath)
		return nil
	}
}
