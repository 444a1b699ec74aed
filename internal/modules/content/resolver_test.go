package content

import (
	"fmt"
	"testing"
)

func TestCandidates_NumericStringExpandsToAllForms(t *testing.T) {
	cands := Candidates("2", nil)

	want := []any{"2", 2, "code"}
	for _, w := range want {
		if !containsCandidate(cands, w) {
			t.Fatalf("expected candidate %v in %v", w, cands)
		}
	}
}

func TestCandidates_NumberAndStringAndNameAgree(t *testing.T) {
	forms := []any{2, "2", "code", "Code"}
	for _, f := range forms {
		cands := Candidates(f, nil)
		if !MatchesAny(int(TypeCode), cands) {
			t.Fatalf("candidates for %v (%T) do not match code type: %v", f, f, cands)
		}
	}
}

func TestCandidates_LookupFailureStillReturnsDerivable(t *testing.T) {
	lookup := func(ids []int) (map[int]string, error) {
		return nil, fmt.Errorf("boom")
	}
	cands := Candidates(99, lookup)
	if len(cands) == 0 {
		t.Fatalf("expected at least the original candidate")
	}
	if !containsCandidate(cands, 99) {
		t.Fatalf("expected original numeric candidate, got %v", cands)
	}
}

func TestCandidates_LookupResolvesUnknownNumericName(t *testing.T) {
	lookup := func(ids []int) (map[int]string, error) {
		return map[int]string{7: "Diagram"}, nil
	}
	cands := Candidates(7, lookup)
	if !containsCandidate(cands, "Diagram") || !containsCandidate(cands, "diagram") {
		t.Fatalf("expected looked-up name and lowercase form, got %v", cands)
	}
}

func TestCandidates_Deduplicates(t *testing.T) {
	cands := Candidates("text", nil)
	seen := map[string]int{}
	for _, c := range cands {
		seen[fmt.Sprintf("%T:%v", c, c)]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Fatalf("candidate %s appears %d times: %v", k, n, cands)
		}
	}
}

func TestMatchesCandidate_CaseInsensitiveName(t *testing.T) {
	if !MatchesCandidate(int(TypeMindMap), "Mind_Map") {
		t.Fatalf("expected case-insensitive name match")
	}
	if MatchesCandidate(int(TypeMindMap), "code") {
		t.Fatalf("unexpected match across types")
	}
}

func TestParseType_RejectsOutOfRange(t *testing.T) {
	if got := ParseType(42); got != TypeUnknown {
		t.Fatalf("expected TypeUnknown, got %v", got)
	}
	if got := ParseType("42"); got != TypeUnknown {
		t.Fatalf("expected TypeUnknown for numeric string, got %v", got)
	}
	if got := ParseType("presentation"); got != TypePresentation {
		t.Fatalf("expected TypePresentation, got %v", got)
	}
}

func containsCandidate(cands []any, want any) bool {
	for _, c := range cands {
		if c == want {
			return true
		}
	}
	return false
}
