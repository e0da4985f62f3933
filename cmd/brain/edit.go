package main

import (
	"fmt"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <source-id>",
		Short: "Edit fields of a filed entry",
		Long:  `Update an entry's name, body, tags or attributes in place. The category stays put; use fix to move a capture.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeEditRunner(),
	}

	cmd.Flags().String("name", "", "New entry name")
	cmd.Flags().String("body", "", "Replacement body text")
	cmd.Flags().String("status", "", "Status attribute")
	cmd.Flags().String("next-action", "", "Next action attribute")
	cmd.Flags().String("due-date", "", "Due date attribute (YYYY-MM-DD)")
	cmd.Flags().StringSlice("tags", nil, "Replacement tags")
	cmd.Flags().Bool("clear-tags", false, "Drop all tags")
	return cmd
}

func makeEditRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		body, _ := cmd.Flags().GetString("body")
		status, _ := cmd.Flags().GetString("status")
		nextAction, _ := cmd.Flags().GetString("next-action")
		dueDate, _ := cmd.Flags().GetString("due-date")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		clearTags, _ := cmd.Flags().GetBool("clear-tags")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		entry, err := s.correction().Edit(cmd.Context(), internal.EditInput{
			SourceID:  args[0],
			Name:      name,
			Body:      body,
			Tags:      tags,
			ClearTags: clearTags,
			Attributes: internal.Attributes{
				Status:     status,
				NextAction: nextAction,
				DueDate:    dueDate,
			},
		})
		if err != nil {
			return fmt.Errorf("edit entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s/%s\n", entry.Category, entry.Name)
		return nil
	}
}
