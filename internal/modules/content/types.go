package content

import (
	"encoding/json"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// Type is the canonical content format tag. The same format circulates at the
// boundary as a numeric id, a numeric string, or a name; everything past the
// resolver operates on this tag only.
type Type int

const (
	TypeUnknown      Type = 0
	TypeText         Type = 1
	TypeCode         Type = 2
	TypePresentation Type = 3
	TypeAudio        Type = 4
	TypeMindMap      Type = 5
	TypeAvatarVideo  Type = 6
)

var typeNames = map[Type]string{
	TypeText:         "text",
	TypeCode:         "code",
	TypePresentation: "presentation",
	TypeAudio:        "audio",
	TypeMindMap:      "mind_map",
	TypeAvatarVideo:  "avatar_video",
}

func AllTypes() []Type {
	return []Type{TypeText, TypeCode, TypePresentation, TypeAudio, TypeMindMap, TypeAvatarVideo}
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) Name() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return ""
}

// TypeByName resolves a canonical or loosely-cased name to a Type.
func TypeByName(name string) (Type, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for t, tn := range typeNames {
		if tn == n {
			return t, true
		}
	}
	return TypeUnknown, false
}

// ParseType accepts any of the circulating identifier shapes: a number, a
// numeric string, or a name. Returns TypeUnknown when nothing resolves.
func ParseType(raw any) Type {
	switch v := raw.(type) {
	case Type:
		if v.Valid() {
			return v
		}
	case int:
		if Type(v).Valid() {
			return Type(v)
		}
	case int64:
		if Type(v).Valid() {
			return Type(v)
		}
	case float64:
		if v == float64(int(v)) && Type(int(v)).Valid() {
			return Type(int(v))
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			if Type(n).Valid() {
				return Type(n)
			}
			return TypeUnknown
		}
		if t, ok := TypeByName(s); ok {
			return t
		}
	}
	return TypeUnknown
}

// TextPayload is the content_data shape for text content.
type TextPayload struct {
	Text          string  `json:"text"`
	AudioURL      string  `json:"audioUrl,omitempty"`
	AudioFormat   string  `json:"audioFormat,omitempty"`
	AudioDuration float64 `json:"audioDuration,omitempty"`
	AudioVoice    string  `json:"audioVoice,omitempty"`
}

// CodePayload is the content_data shape for code content. The code body is
// expected to be English; only the explanation carries a language claim.
type CodePayload struct {
	Code        string `json:"code"`
	Language    string `json:"language,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Payload is the decoded, loosely-shaped content_data bag. Typed accessors
// below replace the ad-hoc optional-chaining the formats otherwise invite.
type Payload map[string]any

func DecodePayload(raw datatypes.JSON) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

func EncodePayload(p Payload) (datatypes.JSON, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (p Payload) String(key string) string {
	if p == nil {
		return ""
	}
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

func (p Payload) Map(key string) map[string]any {
	if p == nil {
		return nil
	}
	if m, ok := p[key].(map[string]any); ok {
		return m
	}
	return nil
}

func (p Payload) Slice(key string) []any {
	if p == nil {
		return nil
	}
	if s, ok := p[key].([]any); ok {
		return s
	}
	return nil
}
