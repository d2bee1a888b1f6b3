package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	pkgerrors "github.com/fantasyedge/newsscout/pkg/errors"
	"github.com/fantasyedge/newsscout/pkg/logging"
)

// Provider runs one extraction prompt against a language model and
// returns the raw response text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelVersion() string
}

// CLIProviderConfig configures the subprocess-backed provider.
type CLIProviderConfig struct {
	// Command is the executable plus leading arguments; the prompt is
	// appended as the final argument.
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
	Version string        `yaml:"version"`
}

// DefaultCLIProviderConfig drives the claude CLI in plain-text mode.
func DefaultCLIProviderConfig() CLIProviderConfig {
	return CLIProviderConfig{
		Command: []string{"claude", "-p", "--output-format", "text"},
		Timeout: 180 * time.Second,
		Version: "claude-cli-v1",
	}
}

// CLIProvider shells out to a local model CLI for each completion. The
// subprocess inherits the call's context deadline capped by the
// configured timeout, so a hung model invocation cannot stall a batch.
type CLIProvider struct {
	config CLIProviderConfig
	log    logging.Logger
}

// NewCLIProvider creates a provider from config, applying defaults for
// unset fields.
func NewCLIProvider(config CLIProviderConfig, log logging.Logger) (*CLIProvider, error) {
	defaults := DefaultCLIProviderConfig()
	if len(config.Command) == 0 {
		config.Command = defaults.Command
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.Version == "" {
		config.Version = defaults.Version
	}
	return &CLIProvider{
		config: config,
		log:    log.With(logging.F("component", "llm_provider")),
	}, nil
}

// ModelVersion identifies the model for audit columns.
func (p *CLIProvider) ModelVersion() string { return p.config.Version }

// Complete runs the CLI with the prompt appended as the final argument
// and returns trimmed stdout.
func (p *CLIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	args := append(append([]string{}, p.config.Command[1:]...), prompt)
	cmd := exec.CommandContext(ctx, p.config.Command[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			p.log.Error("model CLI timed out",
				logging.F("timeout", p.config.Timeout.String()))
			return "", fmt.Errorf("model CLI timed out after %s: %w", p.config.Timeout, pkgerrors.ErrTimeout)
		}
		p.log.Error("model CLI failed",
			logging.Err(err),
			logging.F("stderr", truncate(stderr.String(), 500)))
		return "", fmt.Errorf("model CLI: %w", err)
	}

	p.log.Debug("model CLI completed",
		logging.F("latency_ms", elapsed.Milliseconds()),
		logging.F("response_bytes", stdout.Len()))
	return strings.TrimSpace(stdout.String()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
