package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
)

// DefaultTimeout bounds a command when neither the Command nor the Exec
// sets one.
const DefaultTimeout = 120 * time.Second

// Command describes one process invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     map[string]string // added to (or replacing entries in) the inherited environment
	Timeout time.Duration
}

// String returns the command line, space-joined.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result captures the outcome of a command. ReturnCode is -1 when the
// process never produced an exit status (missing binary, timeout).
type Result struct {
	Success    bool   `json:"success"`
	Command    string `json:"command"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"return_code"`
}

// Runner executes commands. Implementations never return a nil Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) *Result
}

// Func adapts a function to the Runner interface.
type Func func(ctx context.Context, cmd Command) *Result

// Run calls f.
func (f Func) Run(ctx context.Context, cmd Command) *Result { return f(ctx, cmd) }

// Exec runs commands as child processes.
type Exec struct {
	timeout time.Duration
	logger  *log.Logger

	// Stdout and Stderr, when set, also receive the live output.
	Stdout io.Writer
	Stderr io.Writer
}

// Option configures an Exec.
type Option func(*Exec)

// WithTimeout sets the default per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Exec) { e.timeout = d }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Exec) { e.logger = l }
}

// New creates an Exec with the given options.
func New(opts ...Option) *Exec {
	e := &Exec{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger)
	return e
}

// Run executes cmd, capturing trimmed stdout and stderr. A non-zero exit
// is reported through the Result rather than as a Go error.
func (e *Exec) Run(ctx context.Context, cmd Command) *Result {
	res := &Result{Command: cmd.String(), ReturnCode: -1}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = e.timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		res.Stderr = fmt.Sprintf("Command not found: %s. Make sure it is installed and on your PATH.", cmd.Name)
		e.logger.Debug().Str("command", res.Command).Msg("command not found")
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = time.Second
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for k, v := range cmd.Env {
			env = setEnv(env, k, v)
		}
		c.Env = env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = tee(&stdoutBuf, e.Stdout)
	c.Stderr = tee(&stderrBuf, e.Stderr)

	start := time.Now()
	err = c.Run()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.Stderr = fmt.Sprintf("Command timed out after %ds.", int(timeout.Seconds()))
		e.logger.Warn().Str("command", res.Command).Dur("timeout", timeout).Msg("command timed out")
		return res
	}

	res.Stdout = strings.TrimSpace(stdoutBuf.String())
	res.Stderr = strings.TrimSpace(stderrBuf.String())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ReturnCode = exitErr.ExitCode()
		} else if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	} else {
		res.ReturnCode = 0
		res.Success = true
	}

	e.logger.Debug().
		Str("command", res.Command).
		Int("return_code", res.ReturnCode).
		Dur("elapsed", elapsed).
		Msg("command finished")
	return res
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
