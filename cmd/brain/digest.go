package main

import (
	"fmt"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest <daily|weekly>",
		Short: "Summarize recently touched entries",
		Long:  `Generate a digest of entries touched in the last day or week and save it to the vault.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeDigestRunner(),
	}
	return cmd
}

func makeDigestRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		period, ok := internal.ParseDigestPeriod(args[0])
		if !ok {
			return fmt.Errorf("unknown digest period %q, want daily or weekly", args[0])
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		provider, err := s.provider(ctx)
		if err != nil {
			return err
		}

		result, err := internal.NewDigestService(s.vault, provider, s.history).Generate(ctx, period)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		if result.Path != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s (%d entries)\n", result.Path, result.EntryCount)
		}
		return nil
	}
}
