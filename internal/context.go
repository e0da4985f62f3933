package internal

import (
	"fmt"
	"strings"
)

// AssembleContext renders entries as grouped markdown for prompt stuffing.
// Output is deterministic: fixed category order, entries in the order the
// vault returned them.
func AssembleContext(entries []*Entry) string {
	grouped := make(map[Category][]*Entry, len(Categories))
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	var b strings.Builder
	for _, cat := range Categories {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&b, "## %s\n\n", cat.Folder())
		for _, e := range group {
			writeEntryContext(&b, e)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEntryContext(b *strings.Builder, e *Entry) {
	fmt.Fprintf(b, "### %s\n", e.Name)
	if e.Attributes.Status != "" {
		fmt.Fprintf(b, "- status: %s\n", e.Attributes.Status)
	}
	if e.Attributes.NextAction != "" {
		fmt.Fprintf(b, "- next action: %s\n", e.Attributes.NextAction)
	}
	if e.Attributes.DueDate != "" {
		fmt.Fprintf(b, "- due: %s\n", e.Attributes.DueDate)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(b, "- tags: %s\n", strings.Join(e.Tags, ", "))
	}
	if e.LastTouched != "" {
		fmt.Fprintf(b, "- last touched: %s\n", e.LastTouched)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		fmt.Fprintf(b, "\n%s\n", body)
	}
	b.WriteString("\n")
}
