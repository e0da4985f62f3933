package internal

import (
	"context"
	"fmt"
	"strings"
)

const emptySearchContext = "(No matching entries found)"

// QueryService answers natural-language questions over the vault by
// stuffing entry contents into the recall prompt.
type QueryService struct {
	vault    *Vault
	provider Provider
}

func NewQueryService(vault *Vault, provider Provider) *QueryService {
	return &QueryService{vault: vault, provider: provider}
}

// Answer loads the whole vault as context and asks the model.
func (s *QueryService) Answer(ctx context.Context, question string) (string, error) {
	entries, err := s.vault.ReadAll()
	if err != nil {
		return "", fmt.Errorf("load vault: %w", err)
	}
	return s.ask(ctx, AssembleContext(entries), question)
}

// SearchAndAnswer narrows the context to entries matching any of the given
// terms before asking. With no matches the model still gets asked, against
// an explicit empty-context marker, so it can say the vault has nothing.
func (s *QueryService) SearchAndAnswer(ctx context.Context, question string, terms []string) (string, error) {
	seen := map[string]bool{}
	var matched []*Entry
	for _, term := range terms {
		hits, err := s.vault.Search(term)
		if err != nil {
			return "", fmt.Errorf("search vault: %w", err)
		}
		for _, e := range hits {
			key := string(e.Category) + "/" + e.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			matched = append(matched, e)
		}
	}

	vaultContext := AssembleContext(matched)
	if vaultContext == "" {
		vaultContext = emptySearchContext
	}
	return s.ask(ctx, vaultContext, question)
}

func (s *QueryService) ask(ctx context.Context, vaultContext, question string) (string, error) {
	prompt := strings.ReplaceAll(queryPrompt, "{{CONTEXT}}", vaultContext)
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)

	answer, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer query: %w", err)
	}
	return answer, nil
}
