package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizgen/internal/question"
	"quizgen/internal/quiz"
	"quizgen/internal/ui/quizui"
)

// runPlainQuiz drives a session with numbered line prompts. Input that ends
// before the last question aborts the quiz.
func runPlainQuiz(session *quiz.Session, reader *bufio.Reader, out io.Writer) (quiz.Result, error) {
	for session.State() != quiz.StateCompleted {
		q, _ := session.Current()
		position, total := session.Progress()
		fmt.Fprintf(out, "\nQuestion %d/%d\n%s\n", position, total, q.QuestionText)

		var err error
		switch q.QuestionType {
		case question.FillInTheBlank:
			err = askText(session, reader, out)
		case question.Matching:
			err = askMatching(session, q, reader, out)
		default:
			err = askChoice(session, q, reader, out)
		}
		if err != nil {
			return quiz.Result{}, err
		}
		if err := session.Submit(); err != nil {
			return quiz.Result{}, err
		}
	}
	result, _ := session.Result()
	return result, nil
}

func askChoice(session *quiz.Session, q question.Question, reader *bufio.Reader, out io.Writer) error {
	choices := q.Options
	if q.QuestionType == question.TrueFalse {
		choices = []string{quiz.BoolLabel(true), quiz.BoolLabel(false)}
	}
	printChoices(out, choices)
	return ask(reader, out, fmt.Sprintf("Answer [1-%d]: ", len(choices)), func(line string) error {
		index, err := pickChoice(line, choices)
		if err != nil {
			return err
		}
		if q.QuestionType == question.TrueFalse {
			return session.SelectAnswer(question.BoolAnswer(index == 0))
		}
		return session.SelectAnswer(question.TextAnswer(choices[index]))
	})
}

func askText(session *quiz.Session, reader *bufio.Reader, out io.Writer) error {
	return ask(reader, out, "Answer: ", func(line string) error {
		return session.SelectAnswer(question.TextAnswer(line))
	})
}

func askMatching(session *quiz.Session, q question.Question, reader *bufio.Reader, out io.Writer) error {
	printChoices(out, q.Options)
	for _, stem := range q.Stems {
		err := ask(reader, out, fmt.Sprintf("%s → [1-%d]: ", stem, len(q.Options)), func(line string) error {
			index, err := pickChoice(line, q.Options)
			if err != nil {
				return err
			}
			return session.SelectMatch(stem, q.Options[index])
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ask prompts until apply accepts a line.
func ask(reader *bufio.Reader, out io.Writer, label string, apply func(line string) error) error {
	for {
		fmt.Fprint(out, label)
		line, err := readLine(reader)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			fmt.Fprintln(out)
			return quizui.ErrAborted
		}
		applyErr := apply(line)
		if applyErr == nil {
			return nil
		}
		fmt.Fprintln(out, answerMessage(applyErr))
		if err != nil {
			return quizui.ErrAborted
		}
	}
}

func printChoices(out io.Writer, choices []string) {
	for i, choice := range choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, choice)
	}
}

// pickChoice accepts the exact choice text (case-insensitive) or a 1-based
// number. Text wins so numeric options can be typed as shown.
func pickChoice(line string, choices []string) (int, error) {
	for i, choice := range choices {
		if strings.EqualFold(choice, line) {
			return i, nil
		}
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, &question.RangeError{Field: "choice", Value: strconv.Quote(line)}
	}
	if n < 1 || n > len(choices) {
		return 0, &question.RangeError{Field: "choice", Value: line}
	}
	return n - 1, nil
}

func answerMessage(err error) string {
	var validationErr *question.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}
