package inventory

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes a single external command and returns its trimmed
// stdout. Implementations must honor the context deadline.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandTimeout bounds a single inventory command.
const DefaultCommandTimeout = 10 * time.Second

// safeEnvVars is the allowlist of environment variables passed to
// inventory commands. Keeps DATABASE_URL, JWT secrets and webhook
// tokens out of the child process environment.
var safeEnvVars = map[string]bool{
	"HOME":   true,
	"USER":   true,
	"PATH":   true,
	"SHELL":  true,
	"TERM":   true,
	"LANG":   true,
	"LC_ALL": true,
	"TZ":     true,
	"TMPDIR": true,
}

// buildSafeEnvironment creates a filtered environment for inventory
// command execution.
func buildSafeEnvironment() []string {
	var env []string
	for _, e := range os.Environ() {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if safeEnvVars[parts[0]] {
			env = append(env, e)
		}
	}
	return env
}

// ExecRunner runs commands through os/exec with a filtered
// environment and a per-command timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates a runner with the default command timeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Timeout: DefaultCommandTimeout}
}

// Run executes the command and returns its trimmed stdout.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = buildSafeEnvironment()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("command %s timed out after %s", name, timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("command %s failed: %s", name, msg)
		}
		return "", fmt.Errorf("command %s failed: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
