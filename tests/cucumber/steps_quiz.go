//go:build cucumber

package cucumber

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quizgen/internal/question"
	"quizgen/internal/quiz"
	"quizgen/internal/testutil"
)

func (s *featureState) aChoiceQuestionAnswered(answer string) error {
	s.question = testutil.MultipleChoice("c1", "Capital of France?", []string{"Berlin", answer, "Rome"}, answer)
	return nil
}

func (s *featureState) theAnswerGrades(answer, verdict string) error {
	got := quiz.IsCorrect(s.question, question.TextAnswer(answer))
	if got != (verdict == "correct") {
		return fmt.Errorf("expected %q to grade %s", answer, verdict)
	}
	return nil
}

func (s *featureState) aMatchingQuestion(stems, options string) error {
	stemList, optionList := splitList(stems), splitList(options)
	if len(stemList) != len(optionList) {
		return fmt.Errorf("expected as many stems as options")
	}
	pairs := make([][2]string, 0, len(stemList))
	for i := range stemList {
		pairs = append(pairs, [2]string{stemList[i], optionList[i]})
	}
	s.question = testutil.Matching("m1", "Match each item.", pairs...)
	return nil
}

func (s *featureState) anAnswerMissingStemGradesIncorrect(missing string) error {
	pairs, _ := s.question.CorrectAnswer.Pairs()
	delete(pairs, missing)
	if quiz.IsCorrect(s.question, question.MatchingAnswer(pairs)) {
		return fmt.Errorf("expected a mapping without %q to grade incorrect", missing)
	}
	return nil
}

func (s *featureState) anAnswerCoveringEveryStemGradesCorrect() error {
	if !quiz.IsCorrect(s.question, s.question.CorrectAnswer) {
		return fmt.Errorf("expected the full mapping to grade correct")
	}
	return nil
}

func (s *featureState) aQuizOfChoiceQuestions(count int) error {
	s.questions = make([]question.Question, 0, count)
	for i := range count {
		s.questions = append(s.questions, testutil.MultipleChoice(fmt.Sprintf("q%d", i+1), fmt.Sprintf("Question %d", i+1), []string{"A", "B", "C"}, "B"))
	}
	session, err := quiz.NewSession(s.questions)
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

func (s *featureState) iAnswerCorrectly(correct int) error {
	for i := 0; s.session.State() == quiz.StateAwaitingAnswer; i++ {
		answer := "A"
		if i < correct {
			answer = "B"
		}
		if err := s.session.SelectAnswer(question.TextAnswer(answer)); err != nil {
			return err
		}
		if err := s.session.Submit(); err != nil {
			return err
		}
	}
	return nil
}

func (s *featureState) theQuizIsCompleted() error {
	result, ok := s.session.Result()
	if !ok {
		return fmt.Errorf("expected the session to be completed, state %s", s.session.State())
	}
	s.result = result
	return nil
}

func (s *featureState) answersAreCorrect(correct, total int) error {
	if s.result.CorrectAnswers != correct || s.result.TotalQuestions != total {
		return fmt.Errorf("expected %d of %d correct, got %d of %d", correct, total, s.result.CorrectAnswers, s.result.TotalQuestions)
	}
	return nil
}

func (s *featureState) theScoreIs(value string) error {
	want, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	if math.Abs(s.result.Score-want) > 1e-9 {
		return fmt.Errorf("expected score %v, got %v", want, s.result.Score)
	}
	return nil
}

func (s *featureState) iStartAnEmptyQuiz() error {
	s.session, s.err = quiz.NewSession(nil)
	return nil
}

func (s *featureState) itFailsWithConfigurationError() error {
	var configErr *question.ConfigurationError
	if !errors.As(s.err, &configErr) {
		return fmt.Errorf("expected ConfigurationError, got %v", s.err)
	}
	return nil
}

func (s *featureState) itFailsWithRangeError() error {
	var rangeErr *question.RangeError
	if !errors.As(s.err, &rangeErr) {
		return fmt.Errorf("expected RangeError, got %v", s.err)
	}
	return nil
}

func (s *featureState) noSessionIsCreated() error {
	if s.session != nil {
		return fmt.Errorf("expected no session")
	}
	return nil
}

func (s *featureState) aChoiceQuestionWithOptions(options, answer string) error {
	s.question = testutil.MultipleChoice("c1", "Pick one.", splitList(options), answer)
	return question.Check(s.question)
}

func (s *featureState) iEditOption(index int, text string) error {
	edited, err := question.EditOption(s.question, index, text)
	if err != nil {
		s.err = err
		return nil
	}
	s.question = edited
	return nil
}

func (s *featureState) theCorrectAnswerIs(want string) error {
	if got, _ := s.question.CorrectAnswer.Text(); got != want {
		return fmt.Errorf("expected correct answer %q, got %q", want, got)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
