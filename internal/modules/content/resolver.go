package content

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeNameLookup maps numeric content type ids to canonical names. Optional;
// the resolver degrades gracefully without it.
type TypeNameLookup func(ids []int) (map[int]string, error)

// Candidates derives the ordered, de-duplicated list of equivalent
// identifiers for a loosely-typed content type value: the original value, its
// numeric coercion, the lowercased string form, and (when resolvable) the
// canonical name plus its lowercase form. It never fails; name resolution
// errors just shorten the list.
func Candidates(raw any, lookup TypeNameLookup) []any {
	out := make([]any, 0, 5)
	seen := make(map[string]bool, 5)

	add := func(v any) {
		if v == nil {
			return
		}
		key := fmt.Sprintf("%T:%v", v, v)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, v)
	}

	add(raw)

	var numeric int
	hasNumeric := false
	switch v := raw.(type) {
	case int:
		numeric, hasNumeric = v, true
	case int64:
		numeric, hasNumeric = int(v), true
	case float64:
		if v == float64(int(v)) {
			numeric, hasNumeric = int(v), true
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			numeric, hasNumeric = n, true
		}
		add(strings.ToLower(s))
	}
	if hasNumeric {
		add(numeric)
	}

	name := ""
	if t := ParseType(raw); t.Valid() {
		name = t.Name()
	} else if hasNumeric && lookup != nil {
		if names, err := lookup([]int{numeric}); err == nil {
			name = names[numeric]
		}
	}
	if name != "" {
		add(name)
		add(strings.ToLower(name))
	}

	return out
}

// MatchesCandidate reports whether a stored numeric content type id is
// equivalent to one candidate identifier: numeric equality, case-insensitive
// string equality against the canonical name, or numeric coercion equality.
func MatchesCandidate(contentTypeID int, cand any) bool {
	switch v := cand.(type) {
	case int:
		return v == contentTypeID
	case int64:
		return int(v) == contentTypeID
	case float64:
		return v == float64(contentTypeID)
	case Type:
		return int(v) == contentTypeID
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n == contentTypeID
		}
		return strings.EqualFold(s, Type(contentTypeID).Name())
	default:
		return false
	}
}

// MatchesAny reports whether the stored id matches any candidate.
func MatchesAny(contentTypeID int, candidates []any) bool {
	for _, c := range candidates {
		if MatchesCandidate(contentTypeID, c) {
			return true
		}
	}
	return false
}
