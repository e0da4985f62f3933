package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Classification is the structured result of classifying one capture.
// Category is always one of the fixed filing categories or
// CategoryNeedsReview; RawCategory keeps what the model actually said.
type Classification struct {
	Category    Category
	RawCategory string
	Name        string
	Confidence  float64
	Attributes  Attributes
	Tags        []string
	Body        string
}

// Classifier sends captured text to the text-generation capability and
// parses its reply defensively.
type Classifier struct {
	provider Provider
}

func NewClassifier(provider Provider) *Classifier {
	return &Classifier{provider: provider}
}

func (c *Classifier) Classify(ctx context.Context, text string) (*Classification, error) {
	prompt := strings.ReplaceAll(classificationPrompt, "{{INPUT}}", text)

	reply, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	return ParseClassification(reply)
}

// classificationReply is the wire shape of the model's JSON payload.
// Confidence is raw because models return it as a number or a string.
type classificationReply struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Confidence json.RawMessage `json:"confidence"`
	Status     string          `json:"status"`
	NextAction string          `json:"next_action"`
	DueDate    string          `json:"due_date"`
	Tags       []string        `json:"tags"`
	Body       string          `json:"body"`
}

// ParseClassification recovers the structured payload from a model reply
// in two stages: strip code fences and surrounding prose, then strictly
// decode the first balanced JSON object. Unknown categories are forced to
// needs_review with confidence 0 so a hallucinated category can never
// route a write into a folder the vault does not own.
func ParseClassification(reply string) (*Classification, error) {
	payload, ok := extractObject(stripFences(reply))
	if !ok {
		return nil, fmt.Errorf("%w", ErrClassificationParse)
	}

	var wire classificationReply
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationParse, err)
	}

	out := &Classification{
		RawCategory: wire.Type,
		Name:        wire.Name,
		Confidence:  coerceConfidence(wire.Confidence),
		Tags:        wire.Tags,
		Body:        wire.Body,
		Attributes: Attributes{
			Status:     wire.Status,
			NextAction: wire.NextAction,
			DueDate:    wire.DueDate,
		},
	}

	cat, ok := ParseCategory(wire.Type)
	if !ok {
		out.Category = CategoryNeedsReview
		out.Confidence = 0
		return out, nil
	}
	out.Category = cat

	return out, nil
}

// stripFences removes a markdown code fence wrapper, with or without a
// language marker, if the reply carries one.
func stripFences(s string) string {
	start := strings.Index(s, "```")
	if start < 0 {
		return s
	}

	inner := s[start+3:]
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		// drop the info string ("json", "JSON", ...) on the fence line
		firstLine := strings.TrimSpace(inner[:nl])
		if len(firstLine) <= 10 && !strings.ContainsAny(firstLine, "{}") {
			inner = inner[nl+1:]
		}
	}

	if end := strings.LastIndex(inner, "```"); end >= 0 {
		inner = inner[:end]
	}
	return inner
}

// extractObject returns the first balanced JSON object in s, skipping any
// surrounding prose. Braces inside strings do not count toward balance.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// coerceConfidence accepts a JSON number or numeric string and clamps the
// result to [0,1]. Anything unparsable counts as zero confidence.
func coerceConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
