package internal

import (
	"context"
	"fmt"
)

// DefaultConfidenceThreshold is the cutoff above which a classification is
// auto-filed instead of routed to manual review.
const DefaultConfidenceThreshold = 0.6

// Historian records vault changes in version history. It is optional;
// services treat a nil Historian as history disabled.
type Historian interface {
	CommitAll(ctx context.Context, message string) (string, error)
}

// FilingService routes a classified capture: at or above the confidence
// threshold the entry is written to its category folder, below it the raw
// text is parked for review. Either way exactly one audit record is
// produced per capture, written after the entry so a failed entry write
// leaves no dangling trail.
type FilingService struct {
	vault     *Vault
	threshold float64
	history   Historian
}

func NewFilingService(vault *Vault, threshold float64, history Historian) *FilingService {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &FilingService{
		vault:     vault,
		threshold: threshold,
		history:   history,
	}
}

func (s *FilingService) File(ctx context.Context, text string, c *Classification) (*AuditRecord, error) {
	sourceID, err := s.vault.AllocateSourceID(s.vault.now())
	if err != nil {
		return nil, fmt.Errorf("allocate source id: %w", err)
	}

	rec := &AuditRecord{
		SourceID:        sourceID,
		OriginalText:    text,
		Confidence:      c.Confidence,
		DestinationName: c.Name,
	}

	if c.Category != CategoryNeedsReview && c.Confidence >= s.threshold {
		entry := &Entry{
			Category:   c.Category,
			Name:       c.Name,
			SourceID:   sourceID,
			Confidence: c.Confidence,
			Tags:       c.Tags,
			Attributes: c.Attributes,
			Body:       c.Body,
		}

		dest, err := s.vault.WriteEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("file entry: %w", err)
		}

		rec.FiledTo = c.Category
		rec.DestinationFile = dest
		rec.Status = AuditFiled
	} else {
		if err := s.vault.WriteReview(sourceID, text, c); err != nil {
			return nil, fmt.Errorf("park for review: %w", err)
		}

		rec.FiledTo = CategoryNeedsReview
		rec.DestinationFile = string(CategoryNeedsReview)
		rec.Status = AuditNeedsReview
	}

	if _, err := s.vault.WriteAudit(rec); err != nil {
		return nil, fmt.Errorf("record capture: %w", err)
	}

	s.commit(ctx, fmt.Sprintf("capture: %s (%s)", rec.DestinationName, rec.Status))

	return rec, nil
}

func (s *FilingService) commit(ctx context.Context, message string) {
	if s.history == nil {
		return
	}
	// history is best-effort; a failed commit must not fail the capture
	_, _ = s.history.CommitAll(ctx, message)
}
