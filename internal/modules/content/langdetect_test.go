package content

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDetectByScript_HebrewRatio(t *testing.T) {
	if got := DetectByScript("שלום עולם, ברוכים הבאים לשיעור"); got != "he" {
		t.Fatalf("expected he, got %q", got)
	}
}

func TestDetectByScript_ArabicVsPersian(t *testing.T) {
	if got := DetectByScript("مرحبا بكم في الدرس"); got != "ar" {
		t.Fatalf("expected ar, got %q", got)
	}
	if got := DetectByScript("چگونه برنامه بنویسیم"); got != "fa" {
		t.Fatalf("expected fa, got %q", got)
	}
}

func TestDetectByScript_ShortStringThreeChars(t *testing.T) {
	// Three raw Cyrillic characters in a short mostly-Latin string.
	if got := DetectByScript("abc где xyz"); got != "ru" {
		t.Fatalf("expected ru, got %q", got)
	}
}

func TestDetectByScript_LatinReturnsEmpty(t *testing.T) {
	if got := DetectByScript("plain English sentence about slices"); got != "" {
		t.Fatalf("expected no script signal, got %q", got)
	}
}

func TestDetectByScript_CJKAndKorean(t *testing.T) {
	if got := DetectByScript("欢迎来到课程"); got != "zh" {
		t.Fatalf("expected zh, got %q", got)
	}
	if got := DetectByScript("강의에 오신 것을 환영합니다"); got != "ko" {
		t.Fatalf("expected ko, got %q", got)
	}
	if got := DetectByScript("レッスンへようこそ"); got != "ja" {
		t.Fatalf("expected ja, got %q", got)
	}
}

func TestDetectLanguage_HeuristicShortCircuitsDetector(t *testing.T) {
	det := &fakeDetector{resp: "en"}
	code, err := DetectLanguage(context.Background(), "שלום עולם לכולם", det)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if code != "he" {
		t.Fatalf("expected he, got %q", code)
	}
	if det.called {
		t.Fatalf("detector must not be called when a script block wins")
	}
}

func TestDetectLanguage_DelegatesToDetector(t *testing.T) {
	det := &fakeDetector{resp: " FR\n"}
	code, err := DetectLanguage(context.Background(), "bonjour tout le monde", det)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if code != "fr" {
		t.Fatalf("expected fr, got %q", code)
	}
	if !det.called {
		t.Fatalf("expected detector call")
	}
}

func TestDetectLanguage_NoDetectorDefaultsEnglish(t *testing.T) {
	code, err := DetectLanguage(context.Background(), "hello there", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if code != "en" {
		t.Fatalf("expected en, got %q", code)
	}
}

func TestDetectLanguage_InvalidDetectorOutputFailsClosed(t *testing.T) {
	det := &fakeDetector{resp: "probably english, hard to say"}
	_, err := DetectLanguage(context.Background(), "hello there", det)
	var dfe *DetectionFailedError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected DetectionFailedError, got %v", err)
	}
}

func TestDetectLanguage_DetectorErrorFailsClosed(t *testing.T) {
	det := &fakeDetector{err: errors.New("timeout")}
	_, err := DetectLanguage(context.Background(), "hello there", det)
	var dfe *DetectionFailedError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected DetectionFailedError, got %v", err)
	}
}

func TestNormalizeLanguageCode_RegionalVariant(t *testing.T) {
	if got := normalizeLanguageCode("en-US"); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
	if got := normalizeLanguageCode(`"he"`); got != "he" {
		t.Fatalf("expected he, got %q", got)
	}
	if got := normalizeLanguageCode("english"); got != "" {
		t.Fatalf("expected rejection, got %q", got)
	}
}

func TestDetectLanguage_SampleTruncatesOnRuneBoundary(t *testing.T) {
	det := &fakeDetector{resp: "fr"}
	// 9-byte unit, so the byte at detectSampleLimit falls inside a rune.
	long := strings.Repeat("élèves ", 200)
	code, err := DetectLanguage(context.Background(), long, det)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if code != "fr" {
		t.Fatalf("expected fr, got %q", code)
	}
	if len(det.user) > detectSampleLimit {
		t.Fatalf("sample not truncated: %d bytes", len(det.user))
	}
	if !utf8.ValidString(det.user) {
		t.Fatalf("truncated sample split a rune: %q", det.user[len(det.user)-4:])
	}
}

type fakeDetector struct {
	called bool
	system string
	user   string
	resp   string
	err    error
}

func (f *fakeDetector) GenerateText(ctx context.Context, system string, user string) (string, error) {
	_ = ctx
	f.called = true
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}
