package internal

import (
	"context"
	"fmt"
	"strings"
)

// DigestPeriod selects the digest window.
type DigestPeriod string

const (
	DigestDaily  DigestPeriod = "daily"
	DigestWeekly DigestPeriod = "weekly"
)

func ParseDigestPeriod(s string) (DigestPeriod, bool) {
	switch DigestPeriod(strings.ToLower(s)) {
	case DigestDaily:
		return DigestDaily, true
	case DigestWeekly:
		return DigestWeekly, true
	}
	return "", false
}

func (p DigestPeriod) days() int {
	if p == DigestWeekly {
		return 7
	}
	return 1
}

func (p DigestPeriod) emptyMessage() string {
	if p == DigestWeekly {
		return "No entries in the last 7 days."
	}
	return "No new entries in the last 24 hours."
}

// DigestResult is a generated digest plus where it landed, if anywhere.
// Path is empty when the window held no entries and nothing was persisted.
type DigestResult struct {
	Period     DigestPeriod
	Date       string
	Text       string
	EntryCount int
	Path       string
}

// DigestService summarizes recently touched entries into a dated document.
type DigestService struct {
	vault    *Vault
	provider Provider
	history  Historian
}

func NewDigestService(vault *Vault, provider Provider, history Historian) *DigestService {
	return &DigestService{vault: vault, provider: provider, history: history}
}

// Generate collects entries touched inside the period's window, summarizes
// them, and persists the digest. An empty window returns a stock message
// without calling the model or writing anything.
func (s *DigestService) Generate(ctx context.Context, period DigestPeriod) (*DigestResult, error) {
	date := s.vault.now().Format(DateLayout)

	var recent []*Entry
	for _, cat := range Categories {
		touched, err := s.vault.Recent(cat, period.days())
		if err != nil {
			return nil, fmt.Errorf("collect recent entries: %w", err)
		}
		recent = append(recent, touched...)
	}

	if len(recent) == 0 {
		return &DigestResult{Period: period, Date: date, Text: period.emptyMessage()}, nil
	}

	template := dailyDigestPrompt
	if period == DigestWeekly {
		template = weeklyDigestPrompt
	}
	prompt := strings.ReplaceAll(template, "{{CONTEXT}}", AssembleContext(recent))
	prompt = strings.ReplaceAll(prompt, "{{DATE}}", date)

	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate digest: %w", err)
	}

	path, err := s.vault.WriteDigest(period, date, len(recent), text)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		_, _ = s.history.CommitAll(ctx, fmt.Sprintf("digest: %s %s", period, date))
	}

	return &DigestResult{
		Period:     period,
		Date:       date,
		Text:       text,
		EntryCount: len(recent),
		Path:       path,
	}, nil
}
