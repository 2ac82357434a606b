package bank

import (
	"strings"

	"quizgen/internal/question"
)

// SelectByIDs filters all down to the questions whose ids are in ids,
// keeping bank order. An empty selection cannot start a quiz and is
// rejected; ids missing from the bank are a RangeError.
func SelectByIDs(all []question.Question, ids []string) ([]question.Question, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil, &question.ConfigurationError{Message: "select at least one question"}
	}
	selected := make([]question.Question, 0, len(wanted))
	for _, q := range all {
		if _, ok := wanted[q.ID]; ok {
			selected = append(selected, q.Clone())
			delete(wanted, q.ID)
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if _, ok := wanted[id]; ok {
				missing = append(missing, id)
				delete(wanted, id)
			}
		}
		return nil, &question.RangeError{Field: "question id", Value: strings.Join(missing, ", ")}
	}
	return selected, nil
}

// SelectAll returns every question, rejecting an empty bank.
func SelectAll(all []question.Question) ([]question.Question, error) {
	if len(all) == 0 {
		return nil, &question.ConfigurationError{Message: "the question bank is empty"}
	}
	return question.CloneAll(all), nil
}
