package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "del <source-id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a capture's entry",
		Long:    `Remove the entry filed for a capture. The audit record is kept as a trace.`,
		Args:    cobra.ExactArgs(1),
		RunE:    makeDelRunner(),
	}
	return cmd
}

func makeDelRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		entry, err := s.correction().Delete(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", entry.Category, entry.Name)
		return nil
	}
}
