package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnswerKind tags which case of Answer is populated.
type AnswerKind int

const (
	// KindNone is the absent answer.
	KindNone AnswerKind = iota
	// KindText carries a string (choice and fill-in types).
	KindText
	// KindBool carries a boolean (true/false type).
	KindBool
	// KindMatching carries a stem -> option mapping.
	KindMatching
)

// String returns a readable kind name.
func (k AnswerKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindMatching:
		return "matching"
	default:
		return "none"
	}
}

// Answer is a correct or submitted answer. The zero value is the absent answer.
type Answer struct {
	kind  AnswerKind
	text  string
	value bool
	pairs map[string]string
}

// TextAnswer builds a text answer.
func TextAnswer(text string) Answer {
	return Answer{kind: KindText, text: text}
}

// BoolAnswer builds a boolean answer.
func BoolAnswer(value bool) Answer {
	return Answer{kind: KindBool, value: value}
}

// MatchingAnswer builds a matching answer from a copy of pairs.
func MatchingAnswer(pairs map[string]string) Answer {
	cloned := maps.Clone(pairs)
	if cloned == nil {
		cloned = map[string]string{}
	}
	return Answer{kind: KindMatching, pairs: cloned}
}

// Kind reports which case is populated.
func (a Answer) Kind() AnswerKind {
	return a.kind
}

// IsZero reports whether the answer is absent.
func (a Answer) IsZero() bool {
	return a.kind == KindNone
}

// Text returns the text case.
func (a Answer) Text() (string, bool) {
	return a.text, a.kind == KindText
}

// Bool returns the boolean case.
func (a Answer) Bool() (bool, bool) {
	return a.value, a.kind == KindBool
}

// Pairs returns a copy of the matching case.
func (a Answer) Pairs() (map[string]string, bool) {
	if a.kind != KindMatching {
		return nil, false
	}
	return maps.Clone(a.pairs), true
}

// Pair returns the option mapped to stem.
func (a Answer) Pair(stem string) (string, bool) {
	if a.kind != KindMatching {
		return "", false
	}
	option, ok := a.pairs[stem]
	return option, ok
}

// Len returns the number of matching entries; 0 for other kinds.
func (a Answer) Len() int {
	if a.kind != KindMatching {
		return 0
	}
	return len(a.pairs)
}

// WithPair returns a matching answer with stem mapped to option. An absent
// answer starts an empty mapping.
func (a Answer) WithPair(stem, option string) Answer {
	next := MatchingAnswer(nil)
	if a.kind == KindMatching {
		next = MatchingAnswer(a.pairs)
	}
	next.pairs[stem] = option
	return next
}

// Clone returns a deep copy.
func (a Answer) Clone() Answer {
	if a.kind == KindMatching {
		return MatchingAnswer(a.pairs)
	}
	return a
}

// Equal compares two answers case-sensitively.
func (a Answer) Equal(other Answer) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case KindText:
		return a.text == other.text
	case KindBool:
		return a.value == other.value
	case KindMatching:
		return maps.Equal(a.pairs, other.pairs)
	default:
		return true
	}
}

// String renders the answer's string form: text as-is, booleans as
// "true"/"false", matching pairs as sorted "stem=option" entries.
func (a Answer) String() string {
	switch a.kind {
	case KindText:
		return a.text
	case KindBool:
		return strconv.FormatBool(a.value)
	case KindMatching:
		keys := slices.Sorted(maps.Keys(a.pairs))
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+"="+a.pairs[key])
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// AnswerFromValue converts a decoded JSON or YAML value into an Answer.
func AnswerFromValue(value any) (Answer, error) {
	switch typed := value.(type) {
	case nil:
		return Answer{}, nil
	case string:
		return TextAnswer(typed), nil
	case bool:
		return BoolAnswer(typed), nil
	case map[string]any:
		pairs := make(map[string]string, len(typed))
		for key, raw := range typed {
			option, ok := raw.(string)
			if !ok {
				return Answer{}, fmt.Errorf("matching entry %q must be a string, got %T", key, raw)
			}
			pairs[key] = option
		}
		return MatchingAnswer(pairs), nil
	case map[string]string:
		return MatchingAnswer(typed), nil
	default:
		return Answer{}, fmt.Errorf("unsupported answer value of type %T", value)
	}
}

// plain returns the Go value used for encoding.
func (a Answer) plain() any {
	switch a.kind {
	case KindText:
		return a.text
	case KindBool:
		return a.value
	case KindMatching:
		return maps.Clone(a.pairs)
	default:
		return nil
	}
}

// MarshalJSON encodes the answer as a string, bool, object, or null.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.plain())
}

// UnmarshalJSON decodes a string, bool, object, or null.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var value any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	decoded, err := AnswerFromValue(value)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// MarshalYAML encodes the answer as a scalar, mapping, or null.
func (a Answer) MarshalYAML() (any, error) {
	return a.plain(), nil
}

// UnmarshalYAML decodes a scalar, mapping, or null node.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	var value any
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	decoded, err := AnswerFromValue(value)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
