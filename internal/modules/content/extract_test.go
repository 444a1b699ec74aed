package content

import (
	"strings"
	"testing"
)

func TestValidatableText_CodeUsesExplanationOnly(t *testing.T) {
	p := Payload{"code": "def main(): pass", "explanation": "Ceci est la fonction principale."}
	text, ok := ValidatableText(TypeCode, p)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if strings.Contains(text, "def main") {
		t.Fatalf("code body leaked into validatable text: %q", text)
	}
	if text != "Ceci est la fonction principale." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestValidatableText_CodeWithoutExplanationSkips(t *testing.T) {
	p := Payload{"code": "SELECT 1;"}
	if _, ok := ValidatableText(TypeCode, p); ok {
		t.Fatalf("expected gate skip for code without explanation")
	}
}

func TestValidatableText_TextFieldWins(t *testing.T) {
	p := Payload{"text": "hello world", "script": "ignored"}
	text, ok := ValidatableText(TypeText, p)
	if !ok || text != "hello world" {
		t.Fatalf("unexpected: ok=%v text=%q", ok, text)
	}
}

func TestValidatableText_MetadataJoin(t *testing.T) {
	p := Payload{"metadata": map[string]any{
		"title":       "Intro",
		"description": "Basics of sorting",
		"lessonTopic": "Algorithms",
	}}
	text, ok := ValidatableText(TypePresentation, p)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	for _, want := range []string{"Intro", "Basics of sorting", "Algorithms"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in %q", want, text)
		}
	}
}

func TestValidatableText_MindMapLabels(t *testing.T) {
	p := Payload{"nodes": []any{
		map[string]any{"label": "Root", "children": []any{
			map[string]any{"label": "Branch"},
			map[string]any{"title": "Leaf"},
		}},
	}}
	text, ok := ValidatableText(TypeMindMap, p)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	for _, want := range []string{"Root", "Branch", "Leaf"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in %q", want, text)
		}
	}
}

func TestValidatableText_ScriptFallback(t *testing.T) {
	p := Payload{"script": "Welcome to the lesson."}
	text, ok := ValidatableText(TypeAvatarVideo, p)
	if !ok || text != "Welcome to the lesson." {
		t.Fatalf("unexpected: ok=%v text=%q", ok, text)
	}
}

func TestValidatableText_JSONFallback(t *testing.T) {
	p := Payload{"slides": []any{"a", "b"}}
	text, ok := ValidatableText(TypePresentation, p)
	if !ok {
		t.Fatalf("expected ok=true via JSON fallback")
	}
	if !strings.Contains(text, "slides") {
		t.Fatalf("expected serialized payload, got %q", text)
	}
}
