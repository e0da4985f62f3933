package main

import (
	"fmt"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix <source-id>",
		Short: "Re-file a capture under the right category",
		Long:  `Override the filing decision for a capture. Moves an already filed entry, or turns a parked needs_review capture into a real entry.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeFixRunner(),
	}

	cmd.Flags().String("type", "", "Corrected category (person|project|idea|admin)")
	cmd.Flags().String("name", "", "Corrected entry name")
	cmd.Flags().String("status", "", "Status attribute")
	cmd.Flags().String("next-action", "", "Next action attribute")
	cmd.Flags().String("due-date", "", "Due date attribute (YYYY-MM-DD)")
	cmd.Flags().StringSlice("tags", nil, "Replacement tags")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func makeFixRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rawType, _ := cmd.Flags().GetString("type")
		cat, ok := internal.ParseCategory(rawType)
		if !ok {
			return fmt.Errorf("unknown category %q", rawType)
		}

		name, _ := cmd.Flags().GetString("name")
		status, _ := cmd.Flags().GetString("status")
		nextAction, _ := cmd.Flags().GetString("next-action")
		dueDate, _ := cmd.Flags().GetString("due-date")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		rec, err := s.correction().Fix(cmd.Context(), internal.FixInput{
			SourceID: args[0],
			Category: cat,
			Name:     name,
			Tags:     tags,
			Attributes: internal.Attributes{
				Status:     status,
				NextAction: nextAction,
				DueDate:    dueDate,
			},
		})
		if err != nil {
			return fmt.Errorf("fix capture: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Fixed %s -> %s\n", rec.SourceID, rec.DestinationFile)
		return nil
	}
}
