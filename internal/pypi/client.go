package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/logging"
)

const (
	// DefaultBaseURL is the public package index.
	DefaultBaseURL = "https://pypi.org"

	// DefaultTimeout bounds one availability check.
	DefaultTimeout = 10 * time.Second
)

// Availability is the outcome of a name check. Available is nil when the
// index could not give a definite answer.
type Availability struct {
	Name                string   `json:"name"`
	Available           *bool    `json:"available"`
	ExistingVersion     string   `json:"existing_version,omitempty"`
	ExistingDescription string   `json:"existing_description,omitempty"`
	Error               string   `json:"error,omitempty"`
	Suggestion          string   `json:"suggestion,omitempty"`
	NextSteps           []string `json:"next_steps"`
}

// projectInfo is the subset of the JSON API response we read.
type projectInfo struct {
	Info struct {
		Version string `json:"version"`
		Summary string `json:"summary"`
	} `json:"info"`
}

// Client queries the package index JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at a different index.
func WithBaseURL(u string) Option {
	return func(cl *Client) {
		if u != "" {
			cl.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNop(c.logger)
	return c
}

// CheckName reports whether name is free on the index. A 404 means the
// name is available; a 200 means it is taken. Anything else leaves the
// answer unknown and explains why.
func (c *Client) CheckName(ctx context.Context, name string) *Availability {
	res := c.lookup(ctx, name)
	res.NextSteps = nextSteps(res)
	return res
}

func (c *Client) lookup(ctx context.Context, name string) *Availability {
	res := &Availability{Name: name}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		res.Error = fmt.Sprintf("creating request: %v", err)
		res.Suggestion = "Check the registry URL in your configuration."
		return res
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mcp-creator")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("package", name).Err(err).Msg("registry unreachable")
		res.Error = err.Error()
		res.Suggestion = "Could not reach PyPI. Check your internet connection."
		return res
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("package", name).Int("status", resp.StatusCode).Msg("registry lookup")

	switch resp.StatusCode {
	case http.StatusNotFound:
		res.Available = boolPtr(true)
		return res
	case http.StatusOK:
	default:
		res.Error = fmt.Sprintf("PyPI returned HTTP %d", resp.StatusCode)
		res.Suggestion = "Try again in a moment."
		return res
	}

	res.Available = boolPtr(false)
	res.Suggestion = fmt.Sprintf("Try %q or add a unique prefix.", name+"-mcp")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return res
	}
	var info projectInfo
	if err := json.Unmarshal(body, &info); err == nil {
		res.ExistingVersion = info.Info.Version
		res.ExistingDescription = info.Info.Summary
	}
	return res
}

func nextSteps(a *Availability) []string {
	switch {
	case a.Available == nil:
		return []string{"Could not check PyPI right now.", a.Suggestion}
	case *a.Available:
		return []string{
			fmt.Sprintf("Great, %q is available on PyPI!", a.Name),
			"Next: define what tools your MCP server should have, then use scaffold_server to create the project.",
		}
	default:
		return []string{fmt.Sprintf("%q is already taken on PyPI.", a.Name), a.Suggestion}
	}
}

func boolPtr(b bool) *bool { return &b }
