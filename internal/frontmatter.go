package internal

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var errUnterminatedFrontmatter = errors.New("frontmatter opened but never closed")

// encodeDocument serializes YAML frontmatter plus a free-form body into a
// single markdown document.
func encodeDocument(meta map[string]any, body string) ([]byte, error) {
	var buf bytes.Buffer

	if len(meta) > 0 {
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("close encoder: %w", err)
		}
		buf.WriteString("---\n")
	}

	buf.WriteString(body)
	return buf.Bytes(), nil
}

// decodeDocument splits a markdown document into frontmatter and body.
// A document without a frontmatter block is all body.
func decodeDocument(data []byte) (map[string]any, string, error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return map[string]any{}, string(data), nil
	}

	rest := data[bytes.IndexByte(data, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, "", errUnterminatedFrontmatter
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal(rest[:end+1], &meta); err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	body := string(rest[end+len("\n---"):])
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")

	return meta, body, nil
}

// Tolerant frontmatter accessors. Missing or mistyped values fall back to
// the zero value, since vault files are editable outside this process.

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaFloat(meta map[string]any, key string) float64 {
	switch v := meta[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func metaStrings(meta map[string]any, key string) []string {
	raw, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
