//go:build cucumber

package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cucumber/godog"

	"quizgen/internal/bank"
	"quizgen/internal/question"
	"quizgen/internal/quiz"
)

// featureState holds scenario state shared by all steps.
type featureState struct {
	repoDir     string
	configPath  string
	previousWD  string
	previousEnv map[string]*string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool

	question  question.Question
	questions []question.Question
	session   *quiz.Session
	result    quiz.Result
	err       error

	blob  *bank.MemoryBlob
	store *bank.Store
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a git repository with a valid quizgen configuration$`, state.aGitRepositoryWithValidConfig)
	ctx.Step(`^LLM provider credentials are missing$`, state.llmCredentialsAreMissing)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the error message mentions "([^"]+)"$`, state.theErrorMessageMentions)

	ctx.Step(`^a multiple choice question whose correct answer is "([^"]*)"$`, state.aChoiceQuestionAnswered)
	ctx.Step(`^the answer "([^"]*)" grades (correct|incorrect)$`, state.theAnswerGrades)
	ctx.Step(`^a matching question pairing "([^"]*)" with "([^"]*)"$`, state.aMatchingQuestion)
	ctx.Step(`^an answer missing the stem "([^"]*)" grades incorrect$`, state.anAnswerMissingStemGradesIncorrect)
	ctx.Step(`^an answer covering every stem grades correct$`, state.anAnswerCoveringEveryStemGradesCorrect)
	ctx.Step(`^a quiz of (\d+) multiple choice questions$`, state.aQuizOfChoiceQuestions)
	ctx.Step(`^I answer (\d+) questions correctly and the rest incorrectly$`, state.iAnswerCorrectly)
	ctx.Step(`^the quiz is completed$`, state.theQuizIsCompleted)
	ctx.Step(`^(\d+) of (\d+) answers are correct$`, state.answersAreCorrect)
	ctx.Step(`^the score is ([\d.]+)$`, state.theScoreIs)
	ctx.Step(`^I start a quiz with no questions$`, state.iStartAnEmptyQuiz)
	ctx.Step(`^it fails with a configuration error$`, state.itFailsWithConfigurationError)
	ctx.Step(`^it fails with a range error$`, state.itFailsWithRangeError)
	ctx.Step(`^no session is created$`, state.noSessionIsCreated)

	ctx.Step(`^a choice question with options "([^"]*)" and correct answer "([^"]*)"$`, state.aChoiceQuestionWithOptions)
	ctx.Step(`^I edit option (\d+) to "([^"]*)"$`, state.iEditOption)
	ctx.Step(`^the correct answer is "([^"]*)"$`, state.theCorrectAnswerIs)

	ctx.Step(`^an empty question bank$`, state.anEmptyQuestionBank)
	ctx.Step(`^I add the sample questions$`, state.iAddTheSampleQuestions)
	ctx.Step(`^the bank holds (\d+) questions$`, state.theBankHolds)
	ctx.Step(`^I remove "([^"]*)"$`, state.iRemove)
	ctx.Step(`^no error is reported$`, state.noErrorIsReported)
	ctx.Step(`^I save the loaded bank and load it again$`, state.iSaveTheLoadedBank)
	ctx.Step(`^the bank lists "([^"]*)"$`, state.theBankLists)
	ctx.Step(`^the stored bank is corrupt$`, state.theStoredBankIsCorrupt)
}

// reset clears buffers and resets state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.previousEnv = map[string]*string{}
	s.initialized = false
	s.repoDir = ""
	s.configPath = ""
	s.previousWD = ""
	s.question = question.Question{}
	s.questions = nil
	s.session = nil
	s.result = quiz.Result{}
	s.err = nil
	s.blob = nil
	s.store = nil
}

// cleanup restores environment and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	for key, value := range s.previousEnv {
		if value == nil {
			_ = os.Unsetenv(key)
			continue
		}
		_ = os.Setenv(key, *value)
	}
	if s.repoDir != "" {
		_ = os.RemoveAll(s.repoDir)
	}
}

// setEnv records and sets an environment variable for the scenario.
func (s *featureState) setEnv(key, value string) error {
	if _, exists := s.previousEnv[key]; !exists {
		if current, ok := os.LookupEnv(key); ok {
			previous := current
			s.previousEnv[key] = &previous
		} else {
			s.previousEnv[key] = nil
		}
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set env %s: %w", key, err)
	}
	return nil
}
