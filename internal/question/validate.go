package question

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Raw is an unvalidated question record as produced by the generator or a
// question file. CorrectAnswer holds the decoded JSON/YAML value.
type Raw struct {
	ID            string   `json:"id" yaml:"id"`
	QuestionText  string   `json:"questionText" yaml:"questionText"`
	QuestionType  string   `json:"questionType" yaml:"questionType"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	Stems         []string `json:"stems,omitempty" yaml:"stems,omitempty"`
	CorrectAnswer any      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// ToRaw converts a validated question back into its raw record form.
func (q Question) ToRaw() Raw {
	return Raw{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		QuestionType:  string(q.QuestionType),
		Options:       normalizeStringSlice(q.Options),
		Stems:         normalizeStringSlice(q.Stems),
		CorrectAnswer: q.CorrectAnswer.plain(),
		Explanation:   q.Explanation,
	}
}

// Validate converts a raw record into a trusted Question. Text fields are
// trimmed; any problem yields a *SchemaError listing every issue found.
func Validate(raw Raw) (Question, error) {
	collector := &issueCollector{}
	validated := validateInto(collector, "", raw)
	if err := collector.result(); err != nil {
		return Question{}, err
	}
	return validated, nil
}

// ValidateAll validates a sequence of records and rejects duplicate ids.
func ValidateAll(raws []Raw) ([]Question, error) {
	collector := &issueCollector{}
	out := make([]Question, 0, len(raws))
	seenIDs := map[string]struct{}{}
	for i, raw := range raws {
		prefix := fmt.Sprintf("questions[%d].", i)
		q := validateInto(collector, prefix, raw)
		if q.ID != "" {
			if _, exists := seenIDs[q.ID]; exists {
				collector.add(prefix+"id", fmt.Sprintf("duplicate id %q", q.ID))
			} else {
				seenIDs[q.ID] = struct{}{}
			}
		}
		out = append(out, q)
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return out, nil
}

// Check re-validates an already typed question, for example one decoded from storage.
func Check(q Question) error {
	_, err := Validate(q.ToRaw())
	return err
}

func validateInto(collector *issueCollector, prefix string, raw Raw) Question {
	q := Question{
		ID:           strings.TrimSpace(raw.ID),
		QuestionText: strings.TrimSpace(raw.QuestionText),
		Options:      normalizeStringSlice(raw.Options),
		Stems:        normalizeStringSlice(raw.Stems),
		Explanation:  strings.TrimSpace(raw.Explanation),
	}
	if q.ID == "" {
		collector.add(prefix+"id", "is required")
	}
	if q.QuestionText == "" {
		collector.add(prefix+"questionText", "is required")
	}

	questionType, ok := ParseType(raw.QuestionType)
	if !ok {
		if strings.TrimSpace(raw.QuestionType) == "" {
			collector.add(prefix+"questionType", "is required")
		} else {
			collector.add(prefix+"questionType", fmt.Sprintf("unsupported type %q", raw.QuestionType))
		}
		return q
	}
	q.QuestionType = questionType

	answer, err := AnswerFromValue(raw.CorrectAnswer)
	if err != nil {
		collector.add(prefix+"correctAnswer", err.Error())
		return q
	}
	if answer.IsZero() {
		collector.add(prefix+"correctAnswer", "is required")
		return q
	}
	if answer.Kind() != questionType.AnswerKind() {
		collector.add(prefix+"correctAnswer", fmt.Sprintf("expected %s answer for %s, got %s", questionType.AnswerKind(), questionType, answer.Kind()))
		return q
	}

	switch {
	case questionType.IsChoice():
		q.CorrectAnswer = validateChoice(collector, prefix, q.Options, answer)
	case questionType == TrueFalse:
		q.Options = nil
		q.CorrectAnswer = answer
	case questionType == FillInTheBlank:
		q.Options = nil
		text, _ := answer.Text()
		text = strings.TrimSpace(text)
		if text == "" {
			collector.add(prefix+"correctAnswer", "must not be empty")
		}
		q.CorrectAnswer = TextAnswer(text)
	case questionType == Matching:
		q.CorrectAnswer = validateMatching(collector, prefix, q.Stems, q.Options, answer)
	}
	if questionType != Matching && len(q.Stems) > 0 {
		collector.add(prefix+"stems", fmt.Sprintf("only allowed for %s questions", Matching))
	}
	return q
}

func validateChoice(collector *issueCollector, prefix string, options []string, answer Answer) Answer {
	if len(options) < 2 {
		collector.add(prefix+"options", "must include at least two entries")
	}
	checkEntries(collector, prefix+"options", options)
	text, _ := answer.Text()
	text = strings.TrimSpace(text)
	for _, option := range options {
		if option == text {
			return TextAnswer(option)
		}
	}
	for _, option := range options {
		if NormalizeAnswerText(option) == NormalizeAnswerText(text) {
			return TextAnswer(option)
		}
	}
	collector.add(prefix+"correctAnswer", fmt.Sprintf("unknown option %q", text))
	return TextAnswer(text)
}

func validateMatching(collector *issueCollector, prefix string, stems, options []string, answer Answer) Answer {
	if len(stems) == 0 {
		collector.add(prefix+"stems", "must include at least one entry")
	}
	if len(options) == 0 {
		collector.add(prefix+"options", "must include at least one entry")
	}
	checkEntries(collector, prefix+"stems", stems)
	checkEntries(collector, prefix+"options", options)

	pairs, _ := answer.Pairs()
	trimmed := make(map[string]string, len(pairs))
	for stem, option := range pairs {
		trimmed[strings.TrimSpace(stem)] = strings.TrimSpace(option)
	}
	stemSet := toSet(stems)
	optionSet := toSet(options)
	for _, stem := range slices.Sorted(maps.Keys(trimmed)) {
		option := trimmed[stem]
		if _, ok := stemSet[stem]; !ok {
			collector.add(prefix+"correctAnswer", fmt.Sprintf("unknown stem %q", stem))
		}
		if _, ok := optionSet[option]; !ok {
			collector.add(prefix+"correctAnswer", fmt.Sprintf("unknown option %q for stem %q", option, stem))
		}
	}
	for _, stem := range stems {
		if _, ok := trimmed[stem]; !ok && stem != "" {
			collector.add(prefix+"correctAnswer", fmt.Sprintf("missing stem %q", stem))
		}
	}
	return MatchingAnswer(trimmed)
}

func checkEntries(collector *issueCollector, field string, values []string) {
	seen := map[string]struct{}{}
	for i, value := range values {
		if value == "" {
			collector.add(fmt.Sprintf("%s[%d]", field, i), "is required")
			continue
		}
		if _, exists := seen[value]; exists {
			collector.add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("duplicate entry %q", value))
			continue
		}
		seen[value] = struct{}{}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
