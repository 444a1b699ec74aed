package content

import (
	"context"
	"errors"
	"testing"
)

func TestCheckLanguage_PassesOnMatch(t *testing.T) {
	p := Payload{"text": "שיעור על מיון מהיר"}
	if err := CheckLanguage(context.Background(), TypeText, p, "he", nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestCheckLanguage_MismatchCarriesLanguages(t *testing.T) {
	p := Payload{"text": "مرحبا بكم في الدرس الجديد"}
	err := CheckLanguage(context.Background(), TypeText, p, "en", nil)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mm.Detected != "ar" || mm.Expected != "en" {
		t.Fatalf("unexpected mismatch: %+v", mm)
	}
	if mm.IsCode {
		t.Fatalf("text content must not be flagged as code")
	}
}

func TestCheckLanguage_CodeMismatchMessageNamesExplanation(t *testing.T) {
	p := Payload{"code": "x = 1", "explanation": "הסבר על המשתנה"}
	err := CheckLanguage(context.Background(), TypeCode, p, "en", nil)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if !mm.IsCode {
		t.Fatalf("expected code-flavored mismatch")
	}
}

func TestCheckLanguage_CodeWithoutExplanationSkipsDetector(t *testing.T) {
	det := &fakeDetector{resp: "en"}
	p := Payload{"code": "fmt.Println(1)"}
	if err := CheckLanguage(context.Background(), TypeCode, p, "he", det); err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
	if det.called {
		t.Fatalf("detector must not run when the gate is skipped")
	}
}

func TestCheckLanguage_EmptyExpectedSkips(t *testing.T) {
	p := Payload{"text": "whatever"}
	if err := CheckLanguage(context.Background(), TypeText, p, "", nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
