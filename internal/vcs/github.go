package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
)

const (
	// CommitMessage is used for the initial commit.
	CommitMessage = "Initial commit (scaffolded with mcp-creator)"

	// NetworkTimeout bounds the commands that talk to GitHub.
	NetworkTimeout = 30 * time.Second

	unknownOwner = "OWNER"
)

// Options describes the repository to create.
type Options struct {
	RepoName    string
	Description string
	Private     bool
}

// Result is the outcome of SetupGitHub.
type Result struct {
	Success   bool     `json:"success"`
	RepoURL   string   `json:"repo_url,omitempty"`
	Note      string   `json:"note,omitempty"`
	Error     string   `json:"error,omitempty"`
	NextSteps []string `json:"next_steps,omitempty"`
}

// Publisher drives git and gh through a runner.
type Publisher struct {
	runner runner.Runner
	logger *log.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// New creates a Publisher.
func New(r runner.Runner, opts ...Option) *Publisher {
	p := &Publisher{runner: r}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger)
	return p
}

// SetupGitHub initializes git in projectDir if needed, commits everything,
// and creates the GitHub repository with --push. When the repository
// already exists it adds it as origin and pushes instead.
func (p *Publisher) SetupGitHub(ctx context.Context, projectDir string, opts Options) *Result {
	dir, err := filepath.Abs(projectDir)
	if err == nil {
		_, err = os.Stat(dir)
	}
	if err != nil {
		return &Result{Error: fmt.Sprintf("Project directory not found: %s", dir)}
	}
	if strings.TrimSpace(opts.RepoName) == "" {
		return &Result{Error: "repo name is required"}
	}

	run := func(timeout time.Duration, name string, args ...string) *runner.Result {
		return p.runner.Run(ctx, runner.Command{Name: name, Args: args, Dir: dir, Timeout: timeout})
	}

	if !run(0, "gh", "auth", "status").Success {
		return &Result{
			Error: "GitHub CLI (gh) is not installed or not authenticated.",
			NextSteps: []string{
				"Install gh: https://cli.github.com/",
				"Then run: gh auth login",
			},
		}
	}

	if !run(0, "git", "rev-parse", "--git-dir").Success {
		if init := run(0, "git", "init"); !init.Success {
			return &Result{Error: "git init failed: " + init.Stderr}
		}
	}

	run(0, "git", "add", ".")
	// Fails harmlessly when there is nothing new to commit.
	if c := run(0, "git", "commit", "-m", CommitMessage); !c.Success {
		p.logger.Debug().Str("stderr", c.Stderr).Msg("git commit skipped")
	}

	visibility := "--public"
	if opts.Private {
		visibility = "--private"
	}
	args := []string{"repo", "create", opts.RepoName, visibility, "--source", dir, "--push"}
	if opts.Description != "" {
		args = append(args, "--description", opts.Description)
	}

	create := run(NetworkTimeout, "gh", args...)
	if create.Success {
		url := p.repoURL(ctx, dir, opts.RepoName)
		p.logger.Info().Str("repo", url).Msg("github repo created")
		return &Result{
			Success: true,
			RepoURL: url,
			NextSteps: []string{
				"GitHub repo created: " + url,
				"Use generate_launchguide with this URL as the docs_url for marketplace submission.",
			},
		}
	}

	if !strings.Contains(strings.ToLower(create.Stderr), "already exists") {
		return &Result{
			Error: "Failed to create GitHub repo: " + create.Stderr,
			NextSteps: []string{
				"Check that gh is authenticated: gh auth status",
				"Try creating the repo manually: gh repo create",
			},
		}
	}

	url := p.repoURL(ctx, dir, opts.RepoName)
	run(0, "git", "remote", "add", "origin", url+".git")
	if !run(NetworkTimeout, "git", "push", "-u", "origin", "main").Success {
		run(NetworkTimeout, "git", "push", "-u", "origin", "HEAD")
	}
	p.logger.Info().Str("repo", url).Msg("pushed to existing github repo")

	return &Result{
		Success: true,
		RepoURL: url,
		Note:    "Repo already existed, pushed to it.",
		NextSteps: []string{
			"Code pushed to " + url,
			"Use generate_launchguide with this URL as the docs_url.",
		},
	}
}

func (p *Publisher) repoURL(ctx context.Context, dir, repo string) string {
	owner := unknownOwner
	res := p.runner.Run(ctx, runner.Command{Name: "gh", Args: []string{"api", "user", "--jq", ".login"}, Dir: dir})
	if res.Success && strings.TrimSpace(res.Stdout) != "" {
		owner = strings.TrimSpace(res.Stdout)
	}
	return fmt.Sprintf("https://github.com/%s/%s", owner, repo)
}
