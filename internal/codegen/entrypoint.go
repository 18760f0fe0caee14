package codegen

import (
	"fmt"

	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// Sentinel lines written into every entrypoint. The mutator locates
// insertion points by their exact text, so they must never change.
const (
	SentinelImportsStart = "# --- IMPORTS ---"
	SentinelImportsEnd   = "# --- END IMPORTS ---"
	SentinelToolsStart   = "# --- TOOLS ---"
	SentinelToolsEnd     = "# --- END TOOLS ---"
)

// Sentinels lists the four sentinel lines in the order they appear.
var Sentinels = []string{
	SentinelImportsStart,
	SentinelImportsEnd,
	SentinelToolsStart,
	SentinelToolsEnd,
}

// MarketplaceURL is where licensed servers send users for a key.
const MarketplaceURL = "https://mcp-marketplace.io"

// LicenseEnvVar holds the license key at runtime.
const LicenseEnvVar = "MCP_LICENSE_KEY"

// LicenseHelper is the name of the license-check function emitted into
// licensed entrypoints.
const LicenseHelper = "_require_license"

// RenderImportLine renders the import of one tool's implementation.
func RenderImportLine(moduleName, toolName string) string {
	return fmt.Sprintf("from %s.tools.%s import %s as _%s_impl", moduleName, toolName, toolName, toolName)
}

// RenderRegistration renders one @mcp.tool entry, starting with a blank
// line. A gated entry runs the license check before delegating.
func RenderRegistration(t toolspec.Tool, gated bool) string {
	lines := []string{
		"",
		fmt.Sprintf("@mcp.tool(description=%s)", quote(t.Summary())),
		fmt.Sprintf("def %s(%s) -> str:", t.Name, paramList(t)),
		fmt.Sprintf(`    """Call the %s tool."""`, t.Name),
	}
	if gated {
		lines = append(lines,
			fmt.Sprintf("    err = %s(%s)", LicenseHelper, quote(t.Name)),
			"    if err:",
			"        return err",
		)
	}
	lines = append(lines, fmt.Sprintf("    return _%s_impl(%s)", t.Name, keywordArgs(t)))
	return joinLines(lines...)
}

// RenderEntrypoint renders src/<module>/server.py.
func RenderEntrypoint(p *toolspec.Project) string {
	module := p.ModuleName()

	lines := []string{fmt.Sprintf(`"""MCP server for %s."""`, docText(p.PackageName)), ""}

	var stdlib []string
	if p.Licensed {
		stdlib = append(stdlib, "import json")
	}
	if p.Remote() {
		stdlib = append(stdlib, "import os")
	}
	if len(stdlib) > 0 {
		lines = append(lines, stdlib...)
		lines = append(lines, "")
	}

	lines = append(lines, "from mcp.server.fastmcp import FastMCP")
	if p.Licensed {
		lines = append(lines, "from mcp_marketplace_license import verify_license")
	}
	if p.Remote() {
		lines = append(lines, fmt.Sprintf("from %s.transport import run_http", module))
	} else {
		lines = append(lines, fmt.Sprintf("from %s.transport import run_stdio", module))
	}

	lines = append(lines, "", SentinelImportsStart)
	for _, t := range p.Tools {
		lines = append(lines, RenderImportLine(module, t.Name))
	}
	lines = append(lines, SentinelImportsEnd, "", fmt.Sprintf("mcp = FastMCP(%s)", quote(p.PackageName)))

	if p.Licensed {
		lines = append(lines, licenseHelperLines(p.PackageName)...)
	}

	lines = append(lines, "", SentinelToolsStart)
	for _, t := range p.Tools {
		lines = append(lines, RenderRegistration(t, p.IsGated(t.Name)))
	}
	lines = append(lines, SentinelToolsEnd, "", "")

	lines = append(lines, "def main():", `    """Run the MCP server."""`)
	if p.Remote() {
		lines = append(lines,
			fmt.Sprintf(`    port = int(os.environ.get("PORT", "%d"))`, DefaultPort),
			`    run_http(mcp, host="0.0.0.0", port=port)`,
		)
	} else {
		lines = append(lines, "    run_stdio(mcp)")
	}

	lines = append(lines, "", "", `if __name__ == "__main__":`, "    main()", "")
	return joinLines(lines...)
}

func licenseHelperLines(packageName string) []string {
	return []string{
		"",
		"",
		fmt.Sprintf("def %s(tool_name: str) -> str | None:", LicenseHelper),
		`    """Return None if licensed, or a JSON error string."""`,
		fmt.Sprintf("    result = verify_license(slug=%s)", quote(packageName)),
		`    if result.get("valid"):`,
		"        return None",
		"    return json.dumps({",
		`        "error": "premium_required",`,
		`        "reason": result.get("reason", "unknown"),`,
		`        "message": f"The '{tool_name}' tool requires a license. "`,
		fmt.Sprintf(`            "Set %s to unlock it. "`, LicenseEnvVar),
		fmt.Sprintf(`            "Get your key at %s/server/%s",`, MarketplaceURL, packageName),
		"    })",
	}
}
