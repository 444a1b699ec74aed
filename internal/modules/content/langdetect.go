package content

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Detector is the AI-backed language detection collaborator. Satisfied by the
// OpenAI platform client.
type Detector interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

const detectSampleLimit = 1000

// scriptBlock ties a Unicode range set to the language code it implies.
type scriptBlock struct {
	code   string
	ranges []*unicode.RangeTable
}

var scriptBlocks = []scriptBlock{
	{code: "he", ranges: []*unicode.RangeTable{unicode.Hebrew}},
	{code: "ar", ranges: []*unicode.RangeTable{unicode.Arabic}},
	{code: "ru", ranges: []*unicode.RangeTable{unicode.Cyrillic}},
	{code: "zh", ranges: []*unicode.RangeTable{unicode.Han}},
	{code: "ja", ranges: []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}},
	{code: "ko", ranges: []*unicode.RangeTable{unicode.Hangul}},
}

// Letters that exist in Persian but not standard Arabic; used to split the
// shared Arabic script block.
var persianMarkers = map[rune]bool{'پ': true, 'چ': true, 'ژ': true, 'گ': true, 'ی': true, 'ک': true}

// DetectByScript applies the character-ratio heuristic over non-Latin Unicode
// blocks. A block wins immediately when it covers at least 5% of the
// non-whitespace characters, or at least 3 raw characters for short strings.
// Returns "" when no block triggers.
func DetectByScript(text string) string {
	var nonWS int
	counts := make(map[string]int, len(scriptBlocks))
	persian := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonWS++
		for _, b := range scriptBlocks {
			if unicode.In(r, b.ranges...) {
				counts[b.code]++
				break
			}
		}
		if persianMarkers[r] {
			persian = true
		}
	}
	if nonWS == 0 {
		return ""
	}

	const shortStringLimit = 40
	for _, b := range scriptBlocks {
		n := counts[b.code]
		if n == 0 {
			continue
		}
		ratio := float64(n) / float64(nonWS)
		if ratio >= 0.05 || (n >= 3 && nonWS <= shortStringLimit) {
			if b.code == "ar" && persian {
				return "fa"
			}
			return b.code
		}
	}
	return ""
}

const detectSystemPrompt = `You are a language identification service.
Identify the dominant natural language of the user text.
Ignore programming keywords, API names, file paths, and common technical English terms; they carry no signal about the author's language.
Respond with exactly one two-letter ISO 639-1 code (for example "en", "he", "ar") and nothing else.`

// DetectLanguage resolves the language code of text through the layered
// strategy: script heuristic first, then the AI detector, then "en" when no
// collaborator can make a claim. A configured detector that cannot produce a
// valid code is an error; ambiguity must not silently pass.
func DetectLanguage(ctx context.Context, text string, detector Detector) (string, error) {
	if code := DetectByScript(text); code != "" {
		return code, nil
	}

	if detector == nil {
		return "en", nil
	}

	sample := text
	if len(sample) > detectSampleLimit {
		// Back up to a rune boundary so the detector never sees a split
		// multi-byte character.
		cut := detectSampleLimit
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}
	out, err := detector.GenerateText(ctx, detectSystemPrompt, sample)
	if err != nil {
		return "", &DetectionFailedError{Err: err}
	}

	code := normalizeLanguageCode(out)
	if code == "" {
		return "", &DetectionFailedError{Err: fmt.Errorf("detector returned %q", strings.TrimSpace(out))}
	}
	return code, nil
}

func normalizeLanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, `"'.`)
	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}
	if len(s) != 2 {
		return ""
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return s
}
