package main

import (
	"encoding/json"
	"fmt"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts per category",
		RunE:  makeStatsRunner(),
	}
	return cmd
}

func makeStatsRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		stats, err := s.vault.Stats()
		if err != nil {
			return fmt.Errorf("collect stats: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out := make(map[string]int, len(stats))
			for cat, n := range stats {
				out[string(cat)] = n
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		total := 0
		for _, cat := range internal.Categories {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", cat.Folder(), stats[cat])
			total += stats[cat]
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", "total", total)
		return nil
	}
}
