package internal

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound            = errors.New("entry not found")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidAttributes   = errors.New("invalid attributes")
	ErrClassificationParse = errors.New("classification reply contains no parsable payload")
	ErrTranscription       = errors.New("transcription failed")
	ErrSourceIDCollision   = errors.New("source id already recorded")
)

type Category string

const (
	CategoryPerson      Category = "person"
	CategoryProject     Category = "project"
	CategoryIdea        Category = "idea"
	CategoryAdmin       Category = "admin"
	CategoryNeedsReview Category = "needs_review"
)

// Categories lists the fixed filing categories, in vault order.
// CategoryNeedsReview is a routing pseudo-category, not a destination.
var Categories = []Category{CategoryPerson, CategoryProject, CategoryIdea, CategoryAdmin}

// ParseCategory maps a raw category string to one of the fixed filing
// categories. Anything else is not a valid destination.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryPerson, CategoryProject, CategoryIdea, CategoryAdmin:
		return Category(s), true
	}
	return "", false
}

// Folder returns the vault folder a category's entries live in.
func (c Category) Folder() string {
	switch c {
	case CategoryPerson:
		return "People"
	case CategoryProject:
		return "Projects"
	case CategoryIdea:
		return "Ideas"
	case CategoryAdmin:
		return "Admin"
	}
	return AuditFolder
}

const (
	AuditFolder  = "InboxLog"
	DigestFolder = "_digests"
)

// Project status values.
const (
	ProjectActive  = "active"
	ProjectWaiting = "waiting"
	ProjectBlocked = "blocked"
	ProjectSomeday = "someday"
	ProjectDone    = "done"
)

// Admin task status values.
const (
	AdminTodo = "todo"
	AdminDone = "done"
)

var projectStatuses = map[string]bool{
	ProjectActive:  true,
	ProjectWaiting: true,
	ProjectBlocked: true,
	ProjectSomeday: true,
	ProjectDone:    true,
}

var adminStatuses = map[string]bool{
	AdminTodo: true,
	AdminDone: true,
}

// Attributes holds the category-specific structured fields of an entry.
// Which fields are meaningful depends on the category; Validate enforces
// the per-category schema at the store-write boundary.
type Attributes struct {
	Status     string `yaml:"status,omitempty" json:"status,omitempty"`
	NextAction string `yaml:"next_action,omitempty" json:"next_action,omitempty"`
	DueDate    string `yaml:"due_date,omitempty" json:"due_date,omitempty"`
}

// Validate checks the attributes against the schema of the given category.
// Entries read back from disk may have been edited externally, so unknown
// extra frontmatter is tolerated elsewhere; the enumerated fields here are
// the ones the pipeline itself writes and must keep consistent.
func (a Attributes) Validate(cat Category) error {
	switch cat {
	case CategoryProject:
		if a.Status != "" && !projectStatuses[a.Status] {
			return fmt.Errorf("%w: project status %q", ErrInvalidAttributes, a.Status)
		}
	case CategoryAdmin:
		if a.Status != "" && !adminStatuses[a.Status] {
			return fmt.Errorf("%w: admin status %q", ErrInvalidAttributes, a.Status)
		}
		if a.DueDate != "" {
			if _, err := time.Parse(DateLayout, a.DueDate); err != nil {
				return fmt.Errorf("%w: due_date %q", ErrInvalidAttributes, a.DueDate)
			}
		}
	case CategoryPerson, CategoryIdea:
		if a.Status != "" {
			return fmt.Errorf("%w: %s entries carry no status", ErrInvalidAttributes, cat)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	return nil
}

// Entry is one filed piece of knowledge, stored as a single markdown
// document with YAML frontmatter under its category folder.
type Entry struct {
	Category    Category
	Name        string
	SourceID    string
	Confidence  float64
	Tags        []string
	LastTouched string // DateLayout; refreshed on every write
	Attributes  Attributes
	Body        string

	// Extra preserves frontmatter keys this pipeline does not own, so
	// external edits to the vault survive a rewrite.
	Extra map[string]any
}

type AuditStatus string

const (
	AuditFiled       AuditStatus = "filed"
	AuditNeedsReview AuditStatus = "needs_review"
	AuditFixed       AuditStatus = "fixed"
)

// AuditRecord traces one capture event. It lives in the audit folder as a
// document named by source id, independent of the entry it points at.
type AuditRecord struct {
	SourceID        string
	OriginalText    string
	FiledTo         Category
	DestinationName string
	DestinationFile string
	Confidence      float64
	Status          AuditStatus
	Created         time.Time
}
