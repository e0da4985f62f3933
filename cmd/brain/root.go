package main

import (
	"time"

	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "brain",
		Short:         "Capture-first second brain with AI filing",
		Long:          `Capture thoughts as text or voice, let an AI file them into a markdown vault, and ask questions over everything you have stored.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	addSubcommands(rootCmd)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("vault", "", "Vault directory (default $BRAIN_VAULT or ~/SecondBrain)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Duration("timeout", 2*time.Minute, "Deadline for model and transcription calls (0 disables)")
}

func addSubcommands(root *cobra.Command) {
	root.AddCommand(
		NewInitCmd(),
		NewCaptureCmd(),
		NewTranscribeCmd(),
		NewQueryCmd(),
		NewFixCmd(),
		NewEditCmd(),
		NewDelCmd(),
		NewDigestCmd(),
		NewStatsCmd(),
		NewRecentCmd(),
		NewSearchCmd(),
		NewLogCmd(),
		NewWatchCmd(),
	)
}
