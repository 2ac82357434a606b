// Command bankfixture seeds a question bank with deterministic questions of
// every type, for trying the quiz and bank commands without a generator key.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"quizgen/internal/bank"
	"quizgen/internal/question"
)

// fixtureNamespace keeps ids stable across runs.
var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func main() {
	backend := flag.String("backend", string(bank.BackendFile), "bank backend: file|sqlite|duckdb")
	outPath := flag.String("out", "", "bank file path")
	count := flag.Int("count", 10, "number of questions")
	flag.Parse()
	if *outPath == "" || *count < 1 {
		fmt.Fprintln(os.Stderr, "usage: bankfixture --out <path> [--backend file|sqlite|duckdb] [--count n]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	added, err := seed(ctx, bank.Backend(*backend), *outPath, *count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed bank: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added %d questions to %s\n", added, *outPath)
}

func seed(ctx context.Context, backend bank.Backend, path string, count int) (int, error) {
	persistence, err := bank.Open(ctx, backend, path)
	if err != nil {
		return 0, err
	}
	defer persistence.Close()

	questions := make([]question.Question, 0, count)
	for i := range count {
		q := fixtureQuestion(i)
		if err := question.Check(q); err != nil {
			return 0, fmt.Errorf("fixture question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return bank.NewStore(persistence, nil).AddAll(ctx, questions)
}

// fixtureQuestion cycles through the question types.
func fixtureQuestion(index int) question.Question {
	id := uuid.NewSHA1(fixtureNamespace, fmt.Appendf(nil, "question-%d", index)).String()
	n := index + 1
	switch question.Types[index%len(question.Types)] {
	case question.TrueFalse:
		return question.Question{
			ID:            id,
			QuestionText:  fmt.Sprintf("%d is an even number.", n),
			QuestionType:  question.TrueFalse,
			CorrectAnswer: question.BoolAnswer(n%2 == 0),
		}
	case question.FillInTheBlank:
		return question.Question{
			ID:            id,
			QuestionText:  fmt.Sprintf("%d + %d = ____", n, n),
			QuestionType:  question.FillInTheBlank,
			CorrectAnswer: question.TextAnswer(fmt.Sprint(2 * n)),
		}
	case question.Matching:
		return question.Question{
			ID:           id,
			QuestionText: "Match each number to its double.",
			QuestionType: question.Matching,
			Stems:        []string{fmt.Sprint(n), fmt.Sprint(n + 1)},
			Options:      []string{fmt.Sprint(2 * n), fmt.Sprint(2 * (n + 1))},
			CorrectAnswer: question.MatchingAnswer(map[string]string{
				fmt.Sprint(n):     fmt.Sprint(2 * n),
				fmt.Sprint(n + 1): fmt.Sprint(2 * (n + 1)),
			}),
		}
	case question.CauseAndEffect:
		return question.Question{
			ID:            id,
			QuestionText:  "What happens when water is heated to 100C at sea level?",
			QuestionType:  question.CauseAndEffect,
			Options:       []string{"It boils", "It freezes", "Nothing"},
			CorrectAnswer: question.TextAnswer("It boils"),
			Explanation:   "Water boils at 100C at sea level.",
		}
	default:
		return question.Question{
			ID:            id,
			QuestionText:  fmt.Sprintf("What is %d × 3?", n),
			QuestionType:  question.MultipleChoice,
			Options:       []string{fmt.Sprint(3 * n), fmt.Sprint(3*n + 1), fmt.Sprint(3*n + 2)},
			CorrectAnswer: question.TextAnswer(fmt.Sprint(3 * n)),
		}
	}
}
