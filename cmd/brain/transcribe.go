package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericediger/SECOND-BRAIN/internal"
	"github.com/spf13/cobra"
)

func NewTranscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a voice memo and file it",
		Long:  `Transcribe an audio file to text, then classify and file the text like a normal capture.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeTranscribeRunner(),
	}

	cmd.Flags().Bool("no-classify", false, "Print the transcript without filing it")
	return cmd
}

func makeTranscribeRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !internal.SupportedAudioFormat(path) {
			return fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
		}

		audio, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read audio file: %w", err)
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}

		transcriber, err := s.transcriber()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		text, err := transcriber.Transcribe(ctx, audio, filepath.Base(path))
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("transcription returned no text")
		}

		if noClassify, _ := cmd.Flags().GetBool("no-classify"); noClassify {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}

		provider, err := s.provider(ctx)
		if err != nil {
			return err
		}

		classification, err := internal.NewClassifier(provider).Classify(ctx, text)
		if err != nil {
			return fmt.Errorf("classify transcript: %w", err)
		}

		rec, err := s.filing().File(ctx, text, classification)
		if err != nil {
			return fmt.Errorf("file transcript: %w", err)
		}

		return printAuditResult(cmd, rec)
	}
}
