package codegen

import (
	"fmt"
	"strings"

	"github.com/mcpcreator-labs/mcp-creator/internal/naming"
	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// RenderToolModule renders src/<module>/tools/<tool>.py, the public function
// that instantiates the service and serializes its result.
func RenderToolModule(moduleName string, t toolspec.Tool) string {
	class := naming.ToClassName(t.Name)
	summary := docText(t.Summary())

	return joinLines(
		fmt.Sprintf(`"""%s"""`, sentence(summary)),
		"",
		"import json",
		"",
		fmt.Sprintf("from %s.services.%s_service import %s", moduleName, t.Name, class),
		"",
		"",
		fmt.Sprintf("def %s(%s) -> str:", t.Name, paramList(t)),
		fmt.Sprintf(`    """%s`, summary),
		"",
		"    Returns:",
		"        "+docText(t.ReturnsText()),
		`    """`,
		fmt.Sprintf("    service = %s()", class),
		fmt.Sprintf("    result = service.execute(%s)", keywordArgs(t)),
		"    return json.dumps(result, indent=2)",
		"",
	)
}

// RenderServiceModule renders src/<module>/services/<tool>_service.py, the
// stub the end user replaces with real logic. It echoes every parameter
// back together with a constant status.
func RenderServiceModule(t toolspec.Tool) string {
	class := naming.ToClassName(t.Name)
	summary := docText(t.Summary())

	signature := "self"
	if params := paramList(t); params != "" {
		signature += ", " + params
	}

	lines := []string{
		fmt.Sprintf(`"""%s service layer."""`, strings.TrimSuffix(summary, ".")),
		"",
		"",
		fmt.Sprintf("class %s:", class),
		fmt.Sprintf(`    """%s`, sentence(summary)),
		"",
		"    TODO: Replace the stub implementation with your real logic.",
		`    """`,
		"",
		fmt.Sprintf("    def execute(%s) -> dict:", signature),
		fmt.Sprintf(`        """Run %s and return results."""`, t.Name),
		"        # TODO: Implement your logic here",
		"        return {",
	}
	for _, p := range t.Parameters {
		lines = append(lines, fmt.Sprintf(`            "%s": %s,`, p.Name, p.Name))
	}
	lines = append(lines,
		`            "status": "ok",`,
		"        }",
		"",
	)
	return joinLines(lines...)
}

// RenderAggregateTest renders tests/test_server.py, asserting that every
// declared tool is registered on the server.
func RenderAggregateTest(moduleName string, toolNames []string) string {
	expected := "set()"
	if len(toolNames) > 0 {
		quoted := make([]string, len(toolNames))
		for i, n := range toolNames {
			quoted[i] = quote(n)
		}
		expected = "{" + strings.Join(quoted, ", ") + "}"
	}

	return joinLines(
		`"""Test that all tools are registered on the MCP server."""`,
		"",
		fmt.Sprintf("from %s.server import mcp", moduleName),
		"",
		"",
		"def test_tools_registered():",
		"    tool_names = set(mcp._tool_manager._tools.keys())",
		"    expected = "+expected,
		`    assert expected.issubset(tool_names), f"Missing tools: {expected - tool_names}"`,
		"",
	)
}

// RenderToolTest renders tests/test_<tool>.py. The tool is called with one
// fixed literal per parameter and must return a JSON object.
func RenderToolTest(moduleName string, t toolspec.Tool) string {
	args := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		args[i] = p.Name + "=" + p.ScalarType().TestLiteral()
	}

	return joinLines(
		fmt.Sprintf(`"""Test %s tool."""`, t.Name),
		"",
		"import json",
		"",
		fmt.Sprintf("from %s.tools.%s import %s", moduleName, t.Name, t.Name),
		"",
		"",
		fmt.Sprintf("def test_%s_returns_json():", t.Name),
		fmt.Sprintf("    result = %s(%s)", t.Name, strings.Join(args, ", ")),
		"    data = json.loads(result)",
		"    assert isinstance(data, dict)",
		"",
	)
}
