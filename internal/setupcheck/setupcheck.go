package setupcheck

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
)

// Minimum versions the generated projects are known to work with.
const (
	MinPython = ">= 3.10"
	MinUV     = ">= 0.4.0"
)

// TokenEnvVar holds the PyPI upload token.
const TokenEnvVar = "UV_PUBLISH_TOKEN"

// ToolCheck reports one binary. Version is the raw first line of
// `<tool> --version`; MeetsMinimum is nil when no minimum applies or the
// version could not be parsed.
type ToolCheck struct {
	Installed    bool   `json:"installed"`
	Path         string `json:"path,omitempty"`
	Version      string `json:"version,omitempty"`
	MeetsMinimum *bool  `json:"meets_minimum,omitempty"`
	Minimum      string `json:"minimum,omitempty"`
}

// GitHubCheck reports the gh CLI and its login.
type GitHubCheck struct {
	Installed     bool   `json:"installed"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// TokenCheck reports whether an upload token is in the environment.
type TokenCheck struct {
	Configured bool `json:"configured"`
}

// Checks groups the individual checks.
type Checks struct {
	Python    ToolCheck   `json:"python"`
	UV        ToolCheck   `json:"uv"`
	Git       ToolCheck   `json:"git"`
	GitHubCLI GitHubCheck `json:"github_cli"`
	PyPIToken TokenCheck  `json:"pypi_token"`
}

// Report is the full environment status.
type Report struct {
	Checks       Checks   `json:"checks"`
	AllReady     bool     `json:"all_ready"`
	MissingSteps []string `json:"missing_steps"`
	NextSteps    []string `json:"next_steps"`
}

// Checker runs the checks. LookPath and Getenv default to the os/exec and
// os implementations and are swapped out in tests.
type Checker struct {
	runner   runner.Runner
	LookPath func(string) (string, error)
	Getenv   func(string) string
}

// New creates a Checker that runs version probes through r.
func New(r runner.Runner) *Checker {
	return &Checker{runner: r, LookPath: exec.LookPath, Getenv: os.Getenv}
}

// Check inspects the environment. It never fails; anything missing shows
// up in MissingSteps.
func (c *Checker) Check(ctx context.Context) *Report {
	var checks Checks

	// python3 is probed directly; a missing binary simply fails the run.
	py := c.runner.Run(ctx, runner.Command{Name: "python3", Args: []string{"--version"}})
	checks.Python.Installed = py.Success
	if py.Success {
		checks.Python.Version = firstLine(py.Stdout)
		if checks.Python.Version == "" {
			// Python 2 printed its version on stderr.
			checks.Python.Version = firstLine(py.Stderr)
		}
		checks.Python.Minimum = MinPython
		checks.Python.MeetsMinimum = meets(checks.Python.Version, MinPython)
	}

	checks.UV = c.probe(ctx, "uv", MinUV)
	checks.Git = c.probe(ctx, "git", "")

	if _, err := c.LookPath("gh"); err == nil {
		checks.GitHubCLI.Installed = true
		auth := c.runner.Run(ctx, runner.Command{Name: "gh", Args: []string{"auth", "status"}})
		checks.GitHubCLI.Authenticated = auth.Success
		if auth.Success {
			who := c.runner.Run(ctx, runner.Command{Name: "gh", Args: []string{"api", "user", "--jq", ".login"}})
			if who.Success {
				checks.GitHubCLI.Username = strings.TrimSpace(who.Stdout)
			}
		}
	}

	checks.PyPIToken.Configured = c.Getenv(TokenEnvVar) != ""

	missing := missingSteps(checks)
	return &Report{
		Checks:       checks,
		AllReady:     len(missing) == 0,
		MissingSteps: missing,
		NextSteps:    nextSteps(len(missing)),
	}
}

func (c *Checker) probe(ctx context.Context, name, minimum string) ToolCheck {
	var tc ToolCheck
	path, err := c.LookPath(name)
	if err != nil {
		return tc
	}
	tc.Installed = true
	tc.Path = path

	res := c.runner.Run(ctx, runner.Command{Name: name, Args: []string{"--version"}})
	if res.Success {
		tc.Version = firstLine(res.Stdout)
	}
	if minimum != "" {
		tc.Minimum = minimum
		tc.MeetsMinimum = meets(tc.Version, minimum)
	}
	return tc
}

func missingSteps(c Checks) []string {
	missing := []string{}
	if !c.Python.Installed {
		missing = append(missing, "Install Python 3.10+: https://www.python.org/downloads/")
	} else if below(c.Python) {
		missing = append(missing, fmt.Sprintf("Upgrade Python (found %q, need %s)", c.Python.Version, MinPython))
	}
	if !c.UV.Installed {
		missing = append(missing, "Install uv: https://docs.astral.sh/uv/getting-started/installation/")
	} else if below(c.UV) {
		missing = append(missing, fmt.Sprintf("Upgrade uv (found %q, need %s): run 'uv self update'", c.UV.Version, MinUV))
	}
	if !c.Git.Installed {
		missing = append(missing, "Install git: https://git-scm.com/downloads")
	}
	if !c.GitHubCLI.Installed {
		missing = append(missing, "Install GitHub CLI: https://cli.github.com/")
	} else if !c.GitHubCLI.Authenticated {
		missing = append(missing, "Authenticate GitHub CLI: run 'gh auth login'")
	}
	if !c.PyPIToken.Configured {
		missing = append(missing,
			"Set up PyPI token: get one at https://pypi.org/manage/account/token/ then export "+TokenEnvVar+"=pypi-...")
	}
	return missing
}

func nextSteps(missing int) []string {
	if missing == 0 {
		return []string{
			"Everything is set up! The user is ready to create MCP servers.",
			"Skip all setup instructions and go straight to asking what they want to build.",
			"Use check_pypi_name to verify their package name, then scaffold_server to create it.",
		}
	}
	return []string{
		fmt.Sprintf("The user needs to complete %d setup step(s) before they can fully publish.", missing),
		"Walk them through only the missing steps listed above.",
		"They can still scaffold and develop locally even without all steps complete.",
	}
}

func below(tc ToolCheck) bool {
	return tc.MeetsMinimum != nil && !*tc.MeetsMinimum
}

// meets parses the version out of a `--version` line such as
// "Python 3.12.1" or "uv 0.4.18 (abc123 2024-10-01)" and tests it against
// constraint. It returns nil when no version can be parsed.
func meets(line, constraint string) *bool {
	v := ParseVersion(line)
	if v == nil {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil
	}
	ok := c.Check(v)
	return &ok
}

// ParseVersion returns the first whitespace-separated field of line that
// parses as a version, tolerating a leading "v".
func ParseVersion(line string) *semver.Version {
	for _, field := range strings.Fields(line) {
		v, err := semver.NewVersion(strings.TrimPrefix(field, "v"))
		if err == nil {
			return v
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
