// Package runner executes external commands (uv, git, gh, python3) with a
// timeout and captures their output as a structured Result. Consumers accept
// the Runner interface so tests can substitute a Func.
package runner
