package main

import (
	"fmt"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently touched entries",
		RunE:  makeRecentRunner(),
	}

	cmd.Flags().IntP("days", "d", 7, "Window in days")
	return cmd
}

func makeRecentRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		days, _ := cmd.Flags().GetInt("days")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		found := false
		for _, cat := range internal.Categories {
			entries, err := s.vault.Recent(cat, days)
			if err != nil {
				return fmt.Errorf("list recent: %w", err)
			}
			for _, e := range entries {
				found = true
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s/%s\n", e.LastTouched, cat.Folder(), e.Name)
			}
		}
		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "No entries touched in the last %d days\n", days)
		}
		return nil
	}
}
