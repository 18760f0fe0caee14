package packaging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
	"github.com/mcpcreator-labs/mcp-creator/internal/runner"
)

const (
	// TokenEnvVar is read by uv publish.
	TokenEnvVar = "UV_PUBLISH_TOKEN"

	// TokenURL is where creators mint an upload token.
	TokenURL = "https://pypi.org/manage/account/token/"

	defaultRegistry = "https://pypi.org"
)

// Result is the outcome of a build or publish. The embedded runner result
// is zero when the command never ran.
type Result struct {
	runner.Result
	BuiltFiles  []string `json:"built_files,omitempty"`
	PackageName string   `json:"package_name,omitempty"`
	Error       string   `json:"error,omitempty"`
	NextSteps   []string `json:"next_steps"`
}

// Packager runs uv against a project directory.
type Packager struct {
	runner   runner.Runner
	registry string
	logger   *log.Logger
}

// Option configures a Packager.
type Option func(*Packager)

// WithRegistryURL publishes to a different index, e.g. https://test.pypi.org.
func WithRegistryURL(u string) Option {
	return func(p *Packager) {
		if u != "" {
			p.registry = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Packager) { p.logger = l }
}

// New creates a Packager that executes commands through r.
func New(r runner.Runner, opts ...Option) *Packager {
	p := &Packager{runner: r, registry: defaultRegistry}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger)
	return p
}

// Build runs `uv build` in projectDir and lists the artifacts produced.
func (p *Packager) Build(ctx context.Context, projectDir string) *Result {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return &Result{Error: err.Error(), NextSteps: []string{"Check the project directory path."}}
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
		return &Result{
			Error:     fmt.Sprintf("No pyproject.toml found at %s.", dir),
			NextSteps: []string{"Make sure you're pointing to the right project directory."},
		}
	}

	run := p.runner.Run(ctx, runner.Command{Name: "uv", Args: []string{"build"}, Dir: dir})
	res := &Result{Result: *run}
	p.logger.Info().Str("path", dir).Bool("success", run.Success).Msg("uv build")

	if !run.Success {
		res.NextSteps = []string{
			"Build failed. Check the error output above.",
			"Common fixes: make sure uv is installed, dependencies are correct, and there are no syntax errors.",
		}
		return res
	}

	files, err := DistFiles(dir)
	if err != nil {
		p.logger.Warn().Err(err).Msg("listing dist")
	}
	res.BuiltFiles = files
	res.NextSteps = []string{
		"Build successful!",
		"Built files: " + strings.Join(files, ", "),
		"Next: use publish_package to upload to PyPI, or test locally first.",
	}
	return res
}

// Publish runs `uv publish` in projectDir. The token comes from the
// argument, falling back to UV_PUBLISH_TOKEN in the environment.
func (p *Packager) Publish(ctx context.Context, projectDir, token string) *Result {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return &Result{Error: err.Error(), NextSteps: []string{"Check the project directory path."}}
	}
	if !hasDistEntries(dir) {
		return &Result{
			Error:     "No dist/ directory or it's empty. Run build_package first.",
			NextSteps: []string{"Use build_package to build the project before publishing."},
		}
	}

	env := map[string]string{}
	if token != "" {
		env[TokenEnvVar] = token
	} else if _, ok := os.LookupEnv(TokenEnvVar); !ok {
		return &Result{
			Error: "No PyPI token found. Set " + TokenEnvVar + " or pass a token.",
			NextSteps: []string{
				"Get a PyPI API token at " + TokenURL,
				"Then either: export " + TokenEnvVar + "=pypi-... or pass it to this tool.",
			},
		}
	}

	args := []string{"publish"}
	if p.registry != defaultRegistry {
		args = append(args, "--publish-url", p.registry+"/legacy/")
	}

	run := p.runner.Run(ctx, runner.Command{Name: "uv", Args: args, Dir: dir, Env: env})
	res := &Result{Result: *run}
	p.logger.Info().Str("path", dir).Bool("success", run.Success).Msg("uv publish")

	if !run.Success {
		res.NextSteps = []string{
			"Publish failed. Check the error output.",
			"Common issues: invalid token, package name conflict, or network error.",
		}
		return res
	}

	name, err := ReadPackageName(dir)
	if err != nil {
		name = "your-package"
	}
	res.PackageName = name
	res.NextSteps = []string{
		"Published to PyPI! Install with: pip install " + name,
		fmt.Sprintf("View at: %s/project/%s/", p.registry, name),
		"Next: use setup_github to create a GitHub repo and push the code.",
		"Then use generate_launchguide to create a LAUNCHGUIDE.md for marketplace submission.",
	}
	return res
}
