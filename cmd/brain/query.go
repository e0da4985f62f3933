package main

import (
	"fmt"
	"strings"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question over the vault",
		Long:  `Answer a natural-language question using vault contents as context. With --search the context is narrowed to matching entries first.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeQueryRunner(),
	}

	cmd.Flags().StringSlice("search", nil, "Narrow context to entries matching these terms")
	return cmd
}

func makeQueryRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

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

		svc := internal.NewQueryService(s.vault, provider)

		terms, _ := cmd.Flags().GetStringSlice("search")

		var answer string
		if len(terms) > 0 {
			answer, err = svc.SearchAndAnswer(ctx, question, terms)
		} else {
			answer, err = svc.Answer(ctx, question)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	}
}
