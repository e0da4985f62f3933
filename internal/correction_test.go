package internal

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureParked(t *testing.T, v *Vault, text string) *AuditRecord {
	t.Helper()
	svc := NewFilingService(v, 0.6, nil)

	rec, err := svc.File(context.Background(), text, &Classification{
		Category:    CategoryIdea,
		RawCategory: "idea",
		Name:        "unsure",
		Confidence:  0.3,
	})
	require.NoError(t, err)
	require.Equal(t, AuditNeedsReview, rec.Status)
	return rec
}

func captureFiled(t *testing.T, v *Vault, text, name string, cat Category) *AuditRecord {
	t.Helper()
	svc := NewFilingService(v, 0.6, nil)

	rec, err := svc.File(context.Background(), text, &Classification{
		Category:   cat,
		Name:       name,
		Confidence: 0.9,
		Body:       text,
	})
	require.NoError(t, err)
	require.Equal(t, AuditFiled, rec.Status)
	return rec
}

func TestFixParkedCapture(t *testing.T) {
	v := newTestVault(t)
	parked := captureParked(t, v, "talked to sam about the garden project")

	rec, err := NewCorrectionService(v, nil).Fix(context.Background(), FixInput{
		SourceID: parked.SourceID,
		Category: CategoryProject,
		Name:     "Garden project",
	})
	require.NoError(t, err)

	require.Equal(t, AuditFixed, rec.Status)
	require.Equal(t, CategoryProject, rec.FiledTo)
	require.Equal(t, "Projects/Garden project.md", rec.DestinationFile)

	entry, err := v.ReadEntry(CategoryProject, "Garden project")
	require.NoError(t, err)
	require.Equal(t, "talked to sam about the garden project", entry.Body)
	require.Equal(t, parked.SourceID, entry.SourceID)
	require.Equal(t, float64(1), entry.Confidence)
}

func TestFixMovesFiledEntry(t *testing.T) {
	v := newTestVault(t)
	filed := captureFiled(t, v, "jane is running the q3 launch", "Jane Doe", CategoryPerson)

	rec, err := NewCorrectionService(v, nil).Fix(context.Background(), FixInput{
		SourceID: filed.SourceID,
		Category: CategoryProject,
		Name:     "Q3 launch",
	})
	require.NoError(t, err)
	require.Equal(t, "Projects/Q3 launch.md", rec.DestinationFile)

	// old location gone, new one carries the body over
	_, err = v.ReadEntry(CategoryPerson, "Jane Doe")
	require.ErrorIs(t, err, ErrNotFound)

	entry, err := v.ReadEntry(CategoryProject, "Q3 launch")
	require.NoError(t, err)
	require.Equal(t, "jane is running the q3 launch", entry.Body)
}

func TestFixUnknownSourceID(t *testing.T) {
	v := newTestVault(t)

	_, err := NewCorrectionService(v, nil).Fix(context.Background(), FixInput{
		SourceID: "2026-01-01_000000",
		Category: CategoryIdea,
		Name:     "x",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFixRejectsNeedsReviewDestination(t *testing.T) {
	v := newTestVault(t)
	parked := captureParked(t, v, "text")

	_, err := NewCorrectionService(v, nil).Fix(context.Background(), FixInput{
		SourceID: parked.SourceID,
		Category: CategoryNeedsReview,
		Name:     "x",
	})
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestEditRenamesEntry(t *testing.T) {
	v := newTestVault(t)
	filed := captureFiled(t, v, "cache warmer idea", "cache warmer", CategoryIdea)

	entry, err := NewCorrectionService(v, nil).Edit(context.Background(), EditInput{
		SourceID: filed.SourceID,
		Name:     "cache pre-warmer",
		Tags:     []string{"perf"},
	})
	require.NoError(t, err)
	require.Equal(t, "cache pre-warmer", entry.Name)

	_, err = v.ReadEntry(CategoryIdea, "cache warmer")
	require.ErrorIs(t, err, ErrNotFound)

	renamed, err := v.ReadEntry(CategoryIdea, "cache pre-warmer")
	require.NoError(t, err)
	require.Equal(t, []string{"perf"}, renamed.Tags)
	require.Equal(t, "cache warmer idea", renamed.Body, "body untouched by rename")
}

func TestEditAfterExternalRename(t *testing.T) {
	v := newTestVault(t)
	filed := captureFiled(t, v, "met at the conference", "Jane Doe", CategoryPerson)

	// a user renames the file outside the tool; frontmatter keeps the name
	err := os.Rename(v.EntryPath(CategoryPerson, "Jane Doe"), v.EntryPath(CategoryPerson, "JD"))
	require.NoError(t, err)

	_, err = NewCorrectionService(v, nil).Edit(context.Background(), EditInput{
		SourceID: filed.SourceID,
		Body:     "updated notes",
	})
	require.NoError(t, err)

	// the edit lands at the canonical name and the renamed file is gone,
	// leaving exactly one file for the capture
	_, err = os.Stat(v.EntryPath(CategoryPerson, "JD"))
	require.True(t, os.IsNotExist(err), "renamed original left behind as a duplicate")

	entry, err := v.ReadEntry(CategoryPerson, "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, "updated notes", entry.Body)
}

func TestEditClearTags(t *testing.T) {
	v := newTestVault(t)
	svc := NewFilingService(v, 0.6, nil)

	rec, err := svc.File(context.Background(), "x", &Classification{
		Category: CategoryIdea, Name: "tagged", Confidence: 0.9, Tags: []string{"a", "b"},
	})
	require.NoError(t, err)

	entry, err := NewCorrectionService(v, nil).Edit(context.Background(), EditInput{
		SourceID:  rec.SourceID,
		ClearTags: true,
	})
	require.NoError(t, err)
	require.Empty(t, entry.Tags)
}

func TestDeleteKeepsAuditRecord(t *testing.T) {
	v := newTestVault(t)
	filed := captureFiled(t, v, "temporary note", "temp", CategoryIdea)

	entry, err := NewCorrectionService(v, nil).Delete(context.Background(), filed.SourceID)
	require.NoError(t, err)
	require.Equal(t, "temp", entry.Name)

	_, _, err = v.FindBySourceID(filed.SourceID)
	require.ErrorIs(t, err, ErrNotFound)

	// the trail of the capture survives the entry
	rec, err := v.ReadAudit(filed.SourceID)
	require.NoError(t, err)
	require.Equal(t, AuditFiled, rec.Status)
}
