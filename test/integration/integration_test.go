//go:build integration

// Package integration runs the API scenarios under features/ against an
// in-process server with SQLite, miniredis and a mocked Resend endpoint.
package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/budget-tracker/backend/test/integration/steps"
)

// suiteOptions reads the runner knobs from the environment:
// GODOG_TAGS filters scenarios, GODOG_FORMAT picks the formatter
// (e.g. "junit:report.xml" on CI) and GODOG_PATHS narrows the feature files.
func suiteOptions(t *testing.T) godog.Options {
	opts := godog.Options{
		Format:   "pretty",
		Paths:    []string{"features"},
		Output:   colors.Colored(os.Stdout),
		Strict:   true,
		TestingT: t,
		// Scenarios share the suite database and mock servers.
		Concurrency: 1,
	}

	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	if format := os.Getenv("GODOG_FORMAT"); format != "" {
		opts.Format = format
		opts.NoColors = true
	}
	if paths := os.Getenv("GODOG_PATHS"); paths != "" {
		opts.Paths = strings.Split(paths, ",")
	}
	return opts
}

func TestFeatures(t *testing.T) {
	opts := suiteOptions(t)

	suite := godog.TestSuite{
		Name:                 "budget-tracker-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}
