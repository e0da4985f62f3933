package internal

import (
	"context"
	"fmt"
)

// CorrectionService handles human overrides of the filing decision: moving
// a capture to the right category, touching up an entry's fields, or
// removing a capture entirely. None of these involve the model.
type CorrectionService struct {
	vault   *Vault
	history Historian
}

func NewCorrectionService(vault *Vault, history Historian) *CorrectionService {
	return &CorrectionService{vault: vault, history: history}
}

// FixInput names the corrected destination for a capture. Tags and
// attributes are optional; when omitted the prior entry's values carry over.
type FixInput struct {
	SourceID   string
	Category   Category
	Name       string
	Attributes Attributes
	Tags       []string
}

// Fix re-files a capture under the corrected category and name. Works for
// both auto-filed entries (the entry moves) and parked captures (an entry
// is created from the preserved original text). The audit record keeps its
// source id and creation time and flips to fixed.
func (s *CorrectionService) Fix(ctx context.Context, in FixInput) (*AuditRecord, error) {
	if _, ok := ParseCategory(string(in.Category)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}

	rec, err := s.vault.ReadAudit(in.SourceID)
	if err != nil {
		return nil, fmt.Errorf("load audit record: %w", err)
	}

	prior, priorPath, err := s.vault.FindBySourceID(in.SourceID)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	entry := &Entry{
		Category:   in.Category,
		Name:       in.Name,
		SourceID:   in.SourceID,
		Confidence: 1, // human said so
		Tags:       in.Tags,
		Attributes: in.Attributes,
	}

	if prior != nil {
		entry.Body = prior.Body
		entry.Extra = prior.Extra
		if entry.Tags == nil {
			entry.Tags = prior.Tags
		}
		if entry.Attributes == (Attributes{}) {
			entry.Attributes = prior.Attributes
		}
	} else {
		text, err := s.vault.ReadReview(in.SourceID)
		if err == ErrNotFound {
			text = rec.OriginalText
		} else if err != nil {
			return nil, err
		}
		entry.Body = text
	}

	dest, err := s.vault.WriteEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("re-file entry: %w", err)
	}

	if priorPath != "" && priorPath != dest {
		if err := s.vault.Remove(priorPath); err != nil {
			return nil, err
		}
	}

	rec.FiledTo = in.Category
	rec.DestinationName = entry.Name
	rec.DestinationFile = dest
	rec.Status = AuditFixed
	if err := s.vault.UpdateAudit(rec); err != nil {
		return nil, err
	}

	if err := s.vault.MarkReviewFixed(in.SourceID, in.Category, entry.Name); err != nil {
		return nil, err
	}

	s.commit(ctx, fmt.Sprintf("fix: %s -> %s/%s", in.SourceID, in.Category, entry.Name))

	return rec, nil
}

// EditInput carries partial updates to an existing entry. Zero values mean
// leave the field alone; ClearTags drops the tag list outright.
type EditInput struct {
	SourceID   string
	Name       string
	Body       string
	Attributes Attributes
	Tags       []string
	ClearTags  bool
}

// Edit rewrites fields of a filed entry in place. Renames move the file;
// the category never changes here, that is what Fix is for.
func (s *CorrectionService) Edit(ctx context.Context, in EditInput) (*Entry, error) {
	entry, priorPath, err := s.vault.FindBySourceID(in.SourceID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		entry.Name = in.Name
	}
	if in.Body != "" {
		entry.Body = in.Body
	}
	if in.Attributes.Status != "" {
		entry.Attributes.Status = in.Attributes.Status
	}
	if in.Attributes.NextAction != "" {
		entry.Attributes.NextAction = in.Attributes.NextAction
	}
	if in.Attributes.DueDate != "" {
		entry.Attributes.DueDate = in.Attributes.DueDate
	}
	switch {
	case in.ClearTags:
		entry.Tags = nil
	case in.Tags != nil:
		entry.Tags = in.Tags
	}

	dest, err := s.vault.WriteEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if priorPath != dest {
		if err := s.vault.Remove(priorPath); err != nil {
			return nil, err
		}
	}

	s.commit(ctx, fmt.Sprintf("edit: %s/%s", entry.Category, entry.Name))

	return entry, nil
}

// Delete removes a capture's entry. The audit record stays as the durable
// trace that the capture happened.
func (s *CorrectionService) Delete(ctx context.Context, sourceID string) (*Entry, error) {
	entry, err := s.vault.DeleteEntry(sourceID)
	if err != nil {
		return nil, err
	}

	s.commit(ctx, fmt.Sprintf("delete: %s/%s", entry.Category, entry.Name))

	return entry, nil
}

func (s *CorrectionService) commit(ctx context.Context, message string) {
	if s.history == nil {
		return
	}
	_, _ = s.history.CommitAll(ctx, message)
}
