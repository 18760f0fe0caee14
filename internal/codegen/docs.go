package codegen

import (
	"fmt"

	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// NeedsEnvExample reports whether a project gets a .env.example file.
func NeedsEnvExample(p *toolspec.Project) bool {
	return len(p.EnvVars) > 0 || p.Licensed || p.Remote()
}

// RenderEnvExample renders .env.example. The second return is false when
// the project declares nothing worth listing.
func RenderEnvExample(p *toolspec.Project) (string, bool) {
	if !NeedsEnvExample(p) {
		return "", false
	}

	lines := []string{"# Environment variables for this MCP server", ""}
	if p.Licensed {
		lines = append(lines,
			"# License key for paid features (required)",
			"# Get one at "+MarketplaceURL,
			LicenseEnvVar+"=",
			"",
		)
	}
	if p.Remote() {
		lines = append(lines,
			fmt.Sprintf("# Server port (optional, default %d)", DefaultPort),
			fmt.Sprintf("PORT=%d", DefaultPort),
			"",
		)
	}
	for _, v := range p.EnvVars {
		tag := "optional"
		if v.IsRequired() {
			tag = "required"
		}
		lines = append(lines,
			fmt.Sprintf("# %s (%s)", v.Description, tag),
			v.Name+"=",
			"",
		)
	}
	return joinLines(lines...), true
}

// RenderReadme renders README.md. Local projects document installation and
// client configuration; remote projects document connection and deployment.
func RenderReadme(p *toolspec.Project) string {
	pkg := p.PackageName
	lines := []string{"# " + pkg, "", p.Description, ""}

	if p.Remote() {
		lines = append(lines,
			"## Connect", "",
			"This is a remote MCP server. Add it to your MCP client config:", "",
			"```json",
			"{",
			`  "mcpServers": {`,
			fmt.Sprintf(`    "%s": {`, pkg),
			`      "url": "https://your-server.com/sse"`,
			"    }",
			"  }",
			"}",
			"```", "",
		)
	} else {
		lines = append(lines,
			"## Install", "",
			"```bash", "pip install "+pkg, "```", "",
		)
	}

	lines = append(lines, "## Tools", "")
	for _, t := range p.Tools {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", t.Name, t.Summary()))
	}
	lines = append(lines, "")

	if p.Licensed {
		lines = append(lines,
			"## License Key", "",
			fmt.Sprintf("This server requires a license key from [MCP Marketplace](%s/server/%s).", MarketplaceURL, pkg), "",
			fmt.Sprintf("Set the `%s` environment variable:", LicenseEnvVar), "",
			"```bash", fmt.Sprintf("export %s=mcp_live_your_key_here", LicenseEnvVar), "```", "",
		)
	}

	if p.Remote() {
		lines = append(lines,
			"## Deployment", "",
			"```bash",
			"docker build -t "+pkg+" .",
			fmt.Sprintf("docker run -p %d:%d %s", DefaultPort, DefaultPort, pkg),
			"```", "",
		)
	} else {
		lines = append(lines,
			"## Usage", "",
			"Add the server to your MCP client config:", "",
			"```json",
			"{",
			`  "mcpServers": {`,
			fmt.Sprintf(`    "%s": {`, pkg),
			fmt.Sprintf(`      "command": "%s",`, pkg),
		)
		if p.Licensed {
			lines = append(lines,
				`      "args": [],`,
				fmt.Sprintf(`      "env": { "%s": "mcp_live_your_key_here" }`, LicenseEnvVar),
			)
		} else {
			lines = append(lines, `      "args": []`)
		}
		lines = append(lines, "    }", "  }", "}", "```", "")
	}

	lines = append(lines,
		"## Development", "",
		"```bash",
		fmt.Sprintf("git clone https://github.com/YOUR_USERNAME/%s.git", pkg),
		"cd "+pkg,
		"uv venv .venv && source .venv/bin/activate",
		`uv pip install -e ".[dev]"`,
		"pytest -v",
		"```",
		"",
	)
	return joinLines(lines...)
}
