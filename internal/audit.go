package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxSameSecondCaptures bounds source id disambiguation. Past this many
// captures inside one clock second the writer reports a conflict instead
// of guessing further.
const maxSameSecondCaptures = 10

func (v *Vault) auditPath(sourceID string) string {
	return filepath.Join(v.root, AuditFolder, sourceID+".md")
}

func (v *Vault) reviewPath(sourceID string) string {
	return filepath.Join(v.root, AuditFolder, "review_"+sourceID+".md")
}

// AllocateSourceID derives a source id from now and disambiguates against
// audit records already on disk. Same-second captures get a numeric
// discriminator so the second capture never clobbers the first's trail.
func (v *Vault) AllocateSourceID(now time.Time) (string, error) {
	base := NewSourceID(now)

	candidate := base
	for i := 2; ; i++ {
		if _, err := os.Stat(v.auditPath(candidate)); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("probe audit path: %w", err)
		}
		if i > maxSameSecondCaptures {
			return "", fmt.Errorf("%w: %s", ErrSourceIDCollision, base)
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}

func auditMeta(rec *AuditRecord) map[string]any {
	return map[string]any{
		"type":             "inbox_log",
		"original_text":    rec.OriginalText,
		"filed_to":         string(rec.FiledTo),
		"destination_name": rec.DestinationName,
		"destination_file": rec.DestinationFile,
		"confidence":       rec.Confidence,
		"status":           string(rec.Status),
		"created":          rec.Created.Format(time.RFC3339),
	}
}

// WriteAudit records a capture event. The caller must have allocated the
// source id via AllocateSourceID; an existing record at that id is a
// conflict, not something to overwrite silently.
func (v *Vault) WriteAudit(rec *AuditRecord) (string, error) {
	path := v.auditPath(rec.SourceID)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrSourceIDCollision, rec.SourceID)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("probe audit path: %w", err)
	}

	if rec.Created.IsZero() {
		rec.Created = v.now()
	}

	data, err := encodeDocument(auditMeta(rec), "")
	if err != nil {
		return "", fmt.Errorf("encode audit record: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write audit record: %w", err)
	}
	return v.relPath(path), nil
}

// ReadAudit loads the audit record for a capture.
func (v *Vault) ReadAudit(sourceID string) (*AuditRecord, error) {
	data, err := os.ReadFile(v.auditPath(sourceID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read audit record: %w", err)
	}

	meta, _, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("decode audit record %s: %w", sourceID, err)
	}

	rec := &AuditRecord{
		SourceID:        sourceID,
		OriginalText:    metaString(meta, "original_text"),
		FiledTo:         Category(metaString(meta, "filed_to")),
		DestinationName: metaString(meta, "destination_name"),
		DestinationFile: metaString(meta, "destination_file"),
		Confidence:      metaFloat(meta, "confidence"),
		Status:          AuditStatus(metaString(meta, "status")),
	}
	if created, err := time.Parse(time.RFC3339, metaString(meta, "created")); err == nil {
		rec.Created = created
	}
	return rec, nil
}

// UpdateAudit rewrites an existing audit record in place. Created is
// immutable; the stored value wins over whatever the caller carries.
func (v *Vault) UpdateAudit(rec *AuditRecord) error {
	existing, err := v.ReadAudit(rec.SourceID)
	if err != nil {
		return err
	}
	rec.Created = existing.Created

	data, err := encodeDocument(auditMeta(rec), "")
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}
	if err := writeFileAtomic(v.auditPath(rec.SourceID), data); err != nil {
		return fmt.Errorf("update audit record: %w", err)
	}
	return nil
}

// WriteReview parks a low-confidence capture in the audit folder with the
// classifier's proposal attached, so a human can resolve it later.
func (v *Vault) WriteReview(sourceID, text string, proposal *Classification) error {
	meta := map[string]any{
		"type":           string(CategoryNeedsReview),
		"source_id":      sourceID,
		"original_text":  text,
		"suggested_type": proposal.RawCategory,
		"suggested_name": proposal.Name,
		"confidence":     proposal.Confidence,
	}

	data, err := encodeDocument(meta, text)
	if err != nil {
		return fmt.Errorf("encode review document: %w", err)
	}
	if err := writeFileAtomic(v.reviewPath(sourceID), data); err != nil {
		return fmt.Errorf("write review document: %w", err)
	}
	return nil
}

// ReadReview returns the parked original text of a needs_review capture.
func (v *Vault) ReadReview(sourceID string) (string, error) {
	data, err := os.ReadFile(v.reviewPath(sourceID))
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read review document: %w", err)
	}

	meta, body, err := decodeDocument(data)
	if err != nil {
		return "", fmt.Errorf("decode review document %s: %w", sourceID, err)
	}
	if text := metaString(meta, "original_text"); text != "" {
		return text, nil
	}
	return body, nil
}

// MarkReviewFixed annotates the review document after a correction.
func (v *Vault) MarkReviewFixed(sourceID string, cat Category, name string) error {
	path := v.reviewPath(sourceID)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // filed above threshold, no review document to update
	}
	if err != nil {
		return fmt.Errorf("read review document: %w", err)
	}

	meta, body, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("decode review document %s: %w", sourceID, err)
	}
	meta["status"] = string(AuditFixed)
	meta["fixed_to"] = string(cat)
	meta["fixed_name"] = name

	out, err := encodeDocument(meta, body)
	if err != nil {
		return fmt.Errorf("encode review document: %w", err)
	}
	if err := writeFileAtomic(path, out); err != nil {
		return fmt.Errorf("update review document: %w", err)
	}
	return nil
}

// WriteDigest persists a generated digest as a dated document.
func (v *Vault) WriteDigest(period DigestPeriod, date string, entryCount int, text string) (string, error) {
	meta := map[string]any{
		"type":          "digest",
		"digest_type":   string(period),
		"date":          date,
		"entries_count": entryCount,
	}

	path := filepath.Join(v.root, DigestFolder, fmt.Sprintf("%s_%s.md", period, date))
	data, err := encodeDocument(meta, text)
	if err != nil {
		return "", fmt.Errorf("encode digest: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}
	return v.relPath(path), nil
}
