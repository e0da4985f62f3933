package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search entries by substring",
		Long:  `Case-insensitive substring search over entry names, bodies, tags and attributes.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeSearchRunner(),
	}
	return cmd
}

func makeSearchRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		matches, err := s.vault.Search(term)
		if err != nil {
			return fmt.Errorf("search vault: %w", err)
		}

		if len(matches) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No entries match %q\n", term)
			return nil
		}
		for _, e := range matches {
			line := fmt.Sprintf("%s/%s", e.Category.Folder(), e.Name)
			if len(e.Tags) > 0 {
				line += "  [" + strings.Join(e.Tags, ", ") + "]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	}
}
