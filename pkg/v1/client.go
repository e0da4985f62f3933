package v1

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ericediger/SECOND-BRAIN/internal"
)

// Client provides programmatic access to a vault.
type Client struct {
	cfg         *internal.Config
	vault       *internal.Vault
	provider    internal.Provider
	transcriber internal.Transcriber
	history     internal.Historian
}

// New opens (or creates) a vault and wires the capture pipeline. The
// provider is built lazily from config unless injected via WithProvider.
func New(opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	// resolve the root first so config and store always agree on one path:
	// explicit option, then environment, then the home default
	vaultPath := cc.vaultPath
	if vaultPath == "" {
		vaultPath = os.Getenv("BRAIN_VAULT")
	}
	if vaultPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		vaultPath = filepath.Join(home, "SecondBrain")
	}

	cfg, err := internal.LoadConfig(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cc.threshold > 0 {
		cfg.ConfidenceThreshold = cc.threshold
	}

	vault, err := internal.NewVault(cfg.VaultPath, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	c := &Client{
		cfg:         cfg,
		vault:       vault,
		provider:    cc.provider,
		transcriber: cc.transcriber,
	}

	if cc.history || cfg.History {
		history, err := internal.OpenHistory(cfg.VaultPath)
		if err == internal.ErrNotFound {
			history, err = internal.InitHistory(cfg.VaultPath)
		}
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		c.history = history
	}

	return c, nil
}

func (c *Client) getProvider(ctx context.Context) (internal.Provider, error) {
	if c.provider != nil {
		return c.provider, nil
	}

	p, err := internal.NewFantasyProvider(ctx, internal.FantasyConfig{
		Provider: c.cfg.Provider,
		APIKey:   c.cfg.APIKey(),
		Model:    c.cfg.ModelName(),
	})
	if err != nil {
		return nil, err
	}
	c.provider = p
	return p, nil
}

func (c *Client) getTranscriber() (internal.Transcriber, error) {
	if c.transcriber != nil {
		return c.transcriber, nil
	}
	if c.cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("transcription needs an OpenAI API key")
	}
	c.transcriber = internal.NewWhisperTranscriber(c.cfg.OpenAIAPIKey, c.cfg.WhisperModel)
	return c.transcriber, nil
}

// Capture classifies text and files it into the vault.
func (c *Client) Capture(ctx context.Context, text string) (*CaptureResult, error) {
	provider, err := c.getProvider(ctx)
	if err != nil {
		return nil, err
	}

	classification, err := internal.NewClassifier(provider).Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	filing := internal.NewFilingService(c.vault, c.cfg.ConfidenceThreshold, c.history)
	rec, err := filing.File(ctx, text, classification)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	return captureResult(rec), nil
}

// Transcribe converts audio to text and files it like a capture.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (*CaptureResult, error) {
	transcriber, err := c.getTranscriber()
	if err != nil {
		return nil, err
	}

	text, err := transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	return c.Capture(ctx, text)
}

// Query answers a question over the vault contents.
func (c *Client) Query(ctx context.Context, question string) (string, error) {
	provider, err := c.getProvider(ctx)
	if err != nil {
		return "", err
	}
	return internal.NewQueryService(c.vault, provider).Answer(ctx, question)
}

// Fix re-files a capture under the corrected category and name.
func (c *Client) Fix(ctx context.Context, sourceID, category, name string) (*CaptureResult, error) {
	cat, ok := internal.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("fix: unknown category %q", category)
	}

	correction := internal.NewCorrectionService(c.vault, c.history)
	rec, err := correction.Fix(ctx, internal.FixInput{
		SourceID: sourceID,
		Category: cat,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("fix: %w", err)
	}

	return captureResult(rec), nil
}

// Digest summarizes recent vault activity for the given period
// ("daily" or "weekly").
func (c *Client) Digest(ctx context.Context, period string) (*Digest, error) {
	p, ok := internal.ParseDigestPeriod(period)
	if !ok {
		return nil, fmt.Errorf("digest: unknown period %q", period)
	}

	provider, err := c.getProvider(ctx)
	if err != nil {
		return nil, err
	}

	result, err := internal.NewDigestService(c.vault, provider, c.history).Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	return &Digest{
		Period:     string(result.Period),
		Date:       result.Date,
		Text:       result.Text,
		EntryCount: result.EntryCount,
		Path:       result.Path,
	}, nil
}

// Search lists entries matching a substring.
func (c *Client) Search(ctx context.Context, term string) ([]Entry, error) {
	matches, err := c.vault.Search(term)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	entries := make([]Entry, 0, len(matches))
	for _, e := range matches {
		entries = append(entries, entryFromInternal(e))
	}
	return entries, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}

func captureResult(rec *internal.AuditRecord) *CaptureResult {
	return &CaptureResult{
		SourceID:        rec.SourceID,
		FiledTo:         string(rec.FiledTo),
		DestinationName: rec.DestinationName,
		DestinationFile: rec.DestinationFile,
		Confidence:      rec.Confidence,
		Status:          string(rec.Status),
	}
}

func entryFromInternal(e *internal.Entry) Entry {
	attrs := map[string]string{}
	if e.Attributes.Status != "" {
		attrs["status"] = e.Attributes.Status
	}
	if e.Attributes.NextAction != "" {
		attrs["next_action"] = e.Attributes.NextAction
	}
	if e.Attributes.DueDate != "" {
		attrs["due_date"] = e.Attributes.DueDate
	}
	if len(attrs) == 0 {
		attrs = nil
	}

	return Entry{
		Category:    string(e.Category),
		Name:        e.Name,
		SourceID:    e.SourceID,
		Confidence:  e.Confidence,
		Tags:        e.Tags,
		LastTouched: e.LastTouched,
		Attributes:  attrs,
		Body:        e.Body,
	}
}
