package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewCaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture [text]",
		Short: "Capture a thought and file it",
		Long:  `Send text through classification and file it into the vault. Reads from stdin if no text is given.`,
		Args:  cobra.ArbitraryArgs,
		RunE:  makeCaptureRunner(),
	}
	return cmd
}

func makeCaptureRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		text, err := resolveText(args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("nothing to capture")
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

		classification, err := internal.NewClassifier(provider).Classify(ctx, text)
		if err != nil {
			return fmt.Errorf("classify capture: %w", err)
		}

		rec, err := s.filing().File(ctx, text, classification)
		if err != nil {
			return fmt.Errorf("file capture: %w", err)
		}

		return printAuditResult(cmd, rec)
	}
}

func resolveText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printAuditResult(cmd *cobra.Command, rec *internal.AuditRecord) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"source_id":        rec.SourceID,
			"filed_to":         rec.FiledTo,
			"destination_name": rec.DestinationName,
			"destination_file": rec.DestinationFile,
			"confidence":       rec.Confidence,
			"status":           rec.Status,
		})
	}

	switch rec.Status {
	case internal.AuditNeedsReview:
		fmt.Fprintf(cmd.OutOrStdout(), "Parked for review (%s, confidence %.2f)\n", rec.SourceID, rec.Confidence)
		fmt.Fprintf(cmd.OutOrStdout(), "Fix with: brain fix %s --type <category> --name <name>\n", rec.SourceID)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Filed %s -> %s (confidence %.2f, %s)\n",
			rec.DestinationName, rec.DestinationFile, rec.Confidence, rec.SourceID)
	}
	return nil
}
