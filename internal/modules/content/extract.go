package content

import (
	"encoding/json"
	"strings"
)

// ValidatableText extracts the text a language claim can be made about,
// format-aware. For code content only the explanation counts; when there is
// no explanation the gate is skipped entirely (ok=false) because no language
// claim is made about code bodies. For every other format the first non-empty
// source wins, falling back to the JSON-serialized payload.
func ValidatableText(t Type, p Payload) (text string, ok bool) {
	if t == TypeCode {
		expl := strings.TrimSpace(p.String("explanation"))
		if expl == "" {
			return "", false
		}
		return expl, true
	}

	if s := strings.TrimSpace(p.String("text")); s != "" {
		return s, true
	}

	if code := strings.TrimSpace(p.String("code")); code != "" {
		combined := strings.TrimSpace(code + " " + strings.TrimSpace(p.String("explanation")))
		if combined != "" {
			return combined, true
		}
	}

	if meta := p.Map("metadata"); meta != nil {
		parts := make([]string, 0, 3)
		for _, key := range []string{"title", "description", "lessonTopic"} {
			if s, _ := meta[key].(string); strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " "), true
		}
	}

	if labels := mindMapLabels(p); len(labels) > 0 {
		return strings.Join(labels, " "), true
	}

	if s := strings.TrimSpace(p.String("script")); s != "" {
		return s, true
	}

	raw, err := json.Marshal(p)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

func mindMapLabels(p Payload) []string {
	nodes := p.Slice("nodes")
	if nodes == nil {
		if root := p.Map("root"); root != nil {
			nodes = []any{root}
		}
	}
	if len(nodes) == 0 {
		return nil
	}
	var labels []string
	collectNodeLabels(nodes, &labels, 0)
	return labels
}

func collectNodeLabels(nodes []any, labels *[]string, depth int) {
	if depth > 16 {
		return
	}
	for _, n := range nodes {
		m, ok := n.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"label", "title", "text"} {
			if s, _ := m[key].(string); strings.TrimSpace(s) != "" {
				*labels = append(*labels, strings.TrimSpace(s))
				break
			}
		}
		if children, ok := m["children"].([]any); ok {
			collectNodeLabels(children, labels, depth+1)
		}
	}
}
