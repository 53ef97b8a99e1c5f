//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	BearerToken string
	AccessToken string
	AccountID   string
	TwapiPath   string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
		AccessToken: os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccountID:   os.Getenv("TWITTER_ACCOUNT_ID"),
		TwapiPath:   getTwapiPath(),
		Verbose:     os.Getenv("TWAPI_VERBOSE") == "true",
	}
}

// getTwapiPath determines the path to the twapi binary
func getTwapiPath() string {
	if path := os.Getenv("TWAPI_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../twapi",
		"./twapi",
		"../twapi",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "twapi"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.BearerToken == "" || config.AccessToken == "" {
		t.Skip("TWITTER_BEARER_TOKEN or TWITTER_ACCESS_TOKEN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.TwapiPath); err != nil {
		t.Skipf("twapi binary not found at %s, skipping integration test", config.TwapiPath)
	}
}

// SkipIfNoAccount skips tests that act on the configured account
func (config *TestConfig) SkipIfNoAccount(t *testing.T) {
	t.Helper()

	if config.AccountID == "" {
		t.Skip("TWITTER_ACCOUNT_ID not set, skipping account test")
	}
}

// CommandRunner provides utilities for running twapi commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a twapi command with JSON output and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a twapi command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	args = append(args, "--output", "json")

	cmd := exec.Command(runner.config.TwapiPath, args...) // #nosec G204 -- test binary
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.TwapiPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestText creates unique tweet text
func GenerateTestText(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// CleanupTweet attempts to delete a test tweet
func (runner *CommandRunner) CleanupTweet(id string) {
	if id == "" {
		return
	}

	stdout, stderr, err := runner.Run("tweet", "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for tweet %s: %s\nStderr: %s", id, stdout, stderr)
	}
}
