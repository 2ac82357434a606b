//go:build cucumber

package cucumber

import (
	"io"
	"testing"

	"github.com/cucumber/godog"
)

func TestCucumberFeatures(t *testing.T) {
	options := godog.Options{
		Format:    "progress",
		Paths:     []string{"features"},
		Tags:      "@smoke",
		Output:    io.Discard,
		Strict:    true,
		TestingT:  t,
		Randomize: 0,
	}

	suite := godog.TestSuite{
		Name:                "quizgen-features",
		ScenarioInitializer: InitializeScenario,
		Options:             &options,
	}

	if suite.Run() != 0 {
		t.Fatalf("cucumber features failed")
	}
}
