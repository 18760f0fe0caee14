package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phuslu/log"

	"github.com/mcpcreator-labs/mcp-creator/internal/launchguide"
	"github.com/mcpcreator-labs/mcp-creator/internal/mutate"
	"github.com/mcpcreator-labs/mcp-creator/internal/profile"
	"github.com/mcpcreator-labs/mcp-creator/internal/scaffold"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
	"github.com/mcpcreator-labs/mcp-creator/internal/vcs"
)

// Tools returns every tool with its handler, in the order assistants are
// expected to use them.
func (s *Server) Tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: getProfileTool(), Handler: s.wrap("get_creator_profile", s.handleGetProfile)},
		{Tool: updateProfileTool(), Handler: s.wrap("update_creator_profile", s.handleUpdateProfile)},
		{Tool: checkSetupTool(), Handler: s.wrap("check_setup", s.handleCheckSetup)},
		{Tool: checkNameTool(), Handler: s.wrap("check_pypi_name", s.handleCheckName)},
		{Tool: scaffoldTool(), Handler: s.wrap("scaffold_server", s.handleScaffold)},
		{Tool: addToolTool(), Handler: s.wrap("add_tool", s.handleAddTool)},
		{Tool: buildTool(), Handler: s.wrap("build_package", s.handleBuild)},
		{Tool: publishTool(), Handler: s.wrap("publish_package", s.handlePublish)},
		{Tool: githubTool(), Handler: s.wrap("setup_github", s.handleGitHub)},
		{Tool: launchguideTool(), Handler: s.wrap("generate_launchguide", s.handleLaunchguide)},
	}
}

// ─── profile ──────────────────────────────────────────────────────

func getProfileTool() mcp.Tool {
	return mcp.NewTool("get_creator_profile",
		mcp.WithDescription("Load the creator's persistent profile: setup status, GitHub/PyPI usernames and project history. "+
			"Call this FIRST in every session. If setup_complete is true, skip onboarding and go straight to building."),
	)
}

func (s *Server) handleGetProfile(_ context.Context, _ mcp.CallToolRequest, _ *log.Logger) (any, error) {
	p, err := s.profiles.Load()
	if err != nil {
		return nil, err
	}
	return map[string]any{"profile": p, "next_steps": profile.NextSteps(p)}, nil
}

func updateProfileTool() mcp.Tool {
	return mcp.NewTool("update_creator_profile",
		mcp.WithDescription("Update the creator's profile after setup steps or project creation. "+
			"Call this after setup completes, a project is published, or GitHub/PyPI info is learned."),
		mcp.WithBoolean("setup_complete", mcp.Description("Mark setup as done")),
		mcp.WithString("github_username", mcp.Description("GitHub username")),
		mcp.WithString("pypi_username", mcp.Description("PyPI username")),
		mcp.WithString("default_output_dir", mcp.Description("Where projects are created by default")),
		mcp.WithString("add_project", mcp.Description(`Project to record, as JSON: {"name", "pypi_url", "github_url", "description"}`)),
	)
}

type updateProfileArgs struct {
	SetupComplete    *bool           `json:"setup_complete"`
	GitHubUsername   *string         `json:"github_username"`
	PyPIUsername     *string         `json:"pypi_username"`
	DefaultOutputDir *string         `json:"default_output_dir"`
	AddProject       json.RawMessage `json:"add_project"`
}

func (s *Server) handleUpdateProfile(_ context.Context, req mcp.CallToolRequest, l *log.Logger) (any, error) {
	var args updateProfileArgs
	if err := req.BindArguments(&args); err != nil {
		return nil, err
	}
	patch := profile.Patch{
		SetupComplete:    args.SetupComplete,
		GitHubUsername:   args.GitHubUsername,
		PyPIUsername:     args.PyPIUsername,
		DefaultOutputDir: args.DefaultOutputDir,
	}
	var project profile.Project
	ok, err := decodeArg("add_project", args.AddProject, &project)
	if err != nil {
		return nil, err
	}
	if ok {
		if strings.TrimSpace(project.Name) == "" {
			return nil, errors.New("add_project needs a name")
		}
		patch.AddProject = &project
	}

	p, err := s.profiles.Update(patch)
	if err != nil {
		return nil, err
	}
	l.Debug().Str("path", s.profiles.Path()).Msg("profile updated")
	return map[string]any{"success": true, "profile": p, "next_steps": []string{"Profile updated."}}, nil
}

// ─── environment and naming ───────────────────────────────────────

func checkSetupTool() mcp.Tool {
	return mcp.NewTool("check_setup",
		mcp.WithDescription("Check the user's environment for required tools (python3, uv, git, gh CLI, PyPI token). "+
			"Call this after get_creator_profile if setup_complete is false."),
	)
}

func (s *Server) handleCheckSetup(ctx context.Context, _ mcp.CallToolRequest, _ *log.Logger) (any, error) {
	return s.setup.Check(ctx), nil
}

func checkNameTool() mcp.Tool {
	return mcp.NewTool("check_pypi_name",
		mcp.WithDescription("Check if a package name is available on PyPI. Call this first before scaffolding."),
		mcp.WithString("package_name", mcp.Required(), mcp.Description("Proposed PyPI package name")),
	)
}

func (s *Server) handleCheckName(ctx context.Context, req mcp.CallToolRequest, l *log.Logger) (any, error) {
	name, err := req.RequireString("package_name")
	if err != nil {
		return nil, err
	}
	l.Debug().Str("package", name).Msg("checking name")
	return s.pypi.CheckName(ctx, name), nil
}

// ─── generation ───────────────────────────────────────────────────

func scaffoldTool() mcp.Tool {
	return mcp.NewTool("scaffold_server",
		mcp.WithDescription("Scaffold a complete, runnable MCP server project. "+
			"Pass the package name, description, and a JSON array of tool definitions. "+
			"Each tool def: {name, description, parameters: [{name, type, required, description, default}], returns}. "+
			"The generated server runs immediately with stub implementations."),
		mcp.WithString("package_name", mcp.Required(), mcp.Description(`PyPI package name, e.g. "my-weather-mcp"`)),
		mcp.WithString("description", mcp.Required(), mcp.Description("One-line description of the server")),
		mcp.WithString("tools", mcp.Required(), mcp.Description("JSON array of tool definitions")),
		mcp.WithString("output_dir", mcp.Description("Parent directory for the project folder")),
		mcp.WithString("env_vars", mcp.Description(`JSON array of env var defs: [{"name", "description", "required"}]`)),
		mcp.WithBoolean("licensed", mcp.Description("Gate tools behind a marketplace license key")),
		mcp.WithString("gated_tools", mcp.Description("JSON array of tool names to gate; all tools when omitted")),
		mcp.WithString("hosting", mcp.Description(`"local" (stdio, default) or "remote" (HTTP)`), mcp.Enum("local", "remote")),
	)
}

type scaffoldArgs struct {
	PackageName string          `json:"package_name"`
	Description string          `json:"description"`
	Tools       json.RawMessage `json:"tools"`
	OutputDir   string          `json:"output_dir"`
	EnvVars     json.RawMessage `json:"env_vars"`
	Licensed    bool            `json:"licensed"`
	GatedTools  json.RawMessage `json:"gated_tools"`
	Hosting     string          `json:"hosting"`
}

func (s *Server) handleScaffold(_ context.Context, req mcp.CallToolRequest, l *log.Logger) (any, error) {
	var args scaffoldArgs
	if err := req.BindArguments(&args); err != nil {
		return nil, err
	}

	doc := map[string]any{
		"package_name": args.PackageName,
		"description":  args.Description,
		"tools":        []any{},
		"licensed":     args.Licensed,
	}
	if args.Hosting != "" {
		doc["hosting"] = args.Hosting
	}
	for key, raw := range map[string]json.RawMessage{"tools": args.Tools, "env_vars": args.EnvVars, "gated_tools": args.GatedTools} {
		var v any
		ok, err := decodeArg(key, raw, &v)
		if err != nil {
			return nil, err
		}
		if ok {
			doc[key] = v
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	p, err := toolspec.ParseProject(data)
	if err != nil {
		return nil, err
	}

	outputDir, err := s.profiles.OutputDir(args.OutputDir, s.outputDir)
	if err != nil {
		return nil, err
	}
	res, err := scaffold.Generate(p, outputDir)
	if err != nil {
		return nil, err
	}
	l.Info().Str("package", p.PackageName).Str("path", res.ProjectDir).Int("files", res.FilesCreated()).Msg("project scaffolded")
	return res, nil
}

func addToolTool() mcp.Tool {
	return mcp.NewTool("add_tool",
		mcp.WithDescription("Add a new tool to an existing scaffolded MCP server. "+
			"Pass the project directory and a JSON tool definition. "+
			"Creates the tool module, service stub, test, and updates server.py."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Project root containing src/")),
		mcp.WithString("tool", mcp.Required(), mcp.Description("JSON tool definition")),
		mcp.WithBoolean("gated", mcp.Description("Gate the tool behind the license check when the project is licensed")),
		mcp.WithBoolean("allow_duplicate", mcp.Description("Add the tool even if one with the same name exists")),
	)
}

type addToolArgs struct {
	ProjectDir     string          `json:"project_dir"`
	Tool           json.RawMessage `json:"tool"`
	Gated          bool            `json:"gated"`
	AllowDuplicate bool            `json:"allow_duplicate"`
}

func (s *Server) handleAddTool(_ context.Context, req mcp.CallToolRequest, l *log.Logger) (any, error) {
	var args addToolArgs
	if err := req.BindArguments(&args); err != nil {
		return nil, err
	}
	if args.ProjectDir == "" {
		return nil, errors.New("project_dir is required")
	}
	data, err := payload(args.Tool)
	if err != nil {
		return nil, fmt.Errorf("tool: %w", err)
	}
	if data == nil {
		return nil, errors.New("tool is required")
	}
	tool, err := toolspec.ParseTool(data)
	if err != nil {
		return nil, err
	}

	res := mutate.AddTool(args.ProjectDir, *tool, mutate.Options{Gated: args.Gated, AllowDuplicate: args.AllowDuplicate})
	l.Info().Str("tool", tool.Name).Bool("success", res.Success).Bool("server_updated", res.ServerUpdated).Msg("add tool")
	return res, nil
}

// ─── release ──────────────────────────────────────────────────────

func buildTool() mcp.Tool {
	return mcp.NewTool("build_package",
		mcp.WithDescription("Build the MCP server package using 'uv build'. Run this after implementing your tools."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Project root containing pyproject.toml")),
	)
}

func (s *Server) handleBuild(ctx context.Context, req mcp.CallToolRequest, _ *log.Logger) (any, error) {
	dir, err := req.RequireString("project_dir")
	if err != nil {
		return nil, err
	}
	return s.packager.Build(ctx, dir), nil
}

func publishTool() mcp.Tool {
	return mcp.NewTool("publish_package",
		mcp.WithDescription("Publish the built package to PyPI using 'uv publish'. "+
			"Requires a PyPI token: either pass it directly or set UV_PUBLISH_TOKEN."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Project root containing dist/")),
		mcp.WithString("token", mcp.Description("PyPI API token")),
	)
}

func (s *Server) handlePublish(ctx context.Context, req mcp.CallToolRequest, _ *log.Logger) (any, error) {
	dir, err := req.RequireString("project_dir")
	if err != nil {
		return nil, err
	}
	return s.packager.Publish(ctx, dir, req.GetString("token", "")), nil
}

func githubTool() mcp.Tool {
	return mcp.NewTool("setup_github",
		mcp.WithDescription("Initialize git, create a GitHub repo, and push the project. "+
			"Requires the gh CLI to be installed and authenticated. "+
			"Run this after publishing to PyPI so the repo URL can be included in the LAUNCHGUIDE."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Project root")),
		mcp.WithString("repo_name", mcp.Required(), mcp.Description(`GitHub repo name, e.g. "my-weather-mcp"`)),
		mcp.WithString("description", mcp.Description("One-line repo description")),
		mcp.WithBoolean("private", mcp.Description("Create a private repo (default public)")),
	)
}

func (s *Server) handleGitHub(ctx context.Context, req mcp.CallToolRequest, _ *log.Logger) (any, error) {
	dir, err := req.RequireString("project_dir")
	if err != nil {
		return nil, err
	}
	repo, err := req.RequireString("repo_name")
	if err != nil {
		return nil, err
	}
	return s.github.SetupGitHub(ctx, dir, vcs.Options{
		RepoName:    repo,
		Description: req.GetString("description", ""),
		Private:     req.GetBool("private", false),
	}), nil
}

func launchguideTool() mcp.Tool {
	return mcp.NewTool("generate_launchguide",
		mcp.WithDescription("Generate a LAUNCHGUIDE.md for MCP Marketplace submission. "+
			"Limits: tagline max 100 chars, features max 30 items, tags max 30."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("Project root")),
		mcp.WithString("package_name", mcp.Required(), mcp.Description("PyPI package name")),
		mcp.WithString("tagline", mcp.Required(), mcp.Description("One-liner, max 100 chars")),
		mcp.WithString("description", mcp.Required(), mcp.Description("What the server does, how it works, who it's for")),
		mcp.WithString("category", mcp.Required(), mcp.Description("e.g. Developer Tools, Data & Analytics, Productivity")),
		mcp.WithString("features", mcp.Required(), mcp.Description(`Features, one per line prefixed with "- ", max 30`)),
		mcp.WithString("tools_summary", mcp.Required(), mcp.Description("Tool descriptions for Getting Started, one per line")),
		mcp.WithString("tags", mcp.Required(), mcp.Description("Comma-separated tags, max 30")),
		mcp.WithString("setup_requirements", mcp.Description("Env vars or setup steps")),
		mcp.WithString("docs_url", mcp.Description("Docs or README link; defaults to the PyPI page")),
	)
}

type launchguideArgs struct {
	ProjectDir string `json:"project_dir"`
	launchguide.Guide
}

func (s *Server) handleLaunchguide(_ context.Context, req mcp.CallToolRequest, _ *log.Logger) (any, error) {
	var args launchguideArgs
	if err := req.BindArguments(&args); err != nil {
		return nil, err
	}
	if args.ProjectDir == "" {
		return nil, errors.New("project_dir is required")
	}
	return launchguide.Generate(args.ProjectDir, args.Guide), nil
}
