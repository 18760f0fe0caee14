package codegen

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mcpcreator-labs/mcp-creator/internal/toolspec"
)

// stringEscaper escapes text for a double-quoted Python or TOML basic string.
// Both languages share these escape sequences.
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote returns s as a double-quoted string literal.
func quote(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// docEscaper keeps free text from terminating a triple-quoted docstring.
var docEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"""`, `\"\"\"`,
)

func docText(s string) string {
	return docEscaper.Replace(s)
}

// sentence appends a period unless s already ends with terminal punctuation.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

// pyLiteral renders a default value as a Python expression.
func pyLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return pyFloat(float64(val))
	case float64:
		return pyFloat(val)
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = pyLiteral(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = quote(k) + ": " + pyLiteral(val[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return quote(fmt.Sprint(val))
	}
}

func pyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return `float("nan")`
	case math.IsInf(f, 1):
		return `float("inf")`
	case math.IsInf(f, -1):
		return `float("-inf")`
	}
	// Keep a float literal a float: 5.0 must not render as the int 5.
	out := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(out, ".en") {
		out += ".0"
	}
	return out
}

// paramDecl renders one parameter of a Python signature. Optional
// parameters are always annotated as nullable.
func paramDecl(p toolspec.Parameter) string {
	annotation := p.ScalarType().Annotation()
	if p.IsRequired() {
		return p.Name + ": " + annotation
	}
	return fmt.Sprintf("%s: %s | None = %s", p.Name, annotation, pyLiteral(p.Default))
}

// paramList renders the full parameter list of a tool signature.
func paramList(t toolspec.Tool) string {
	params := t.OrderedParameters()
	decls := make([]string, len(params))
	for i, p := range params {
		decls[i] = paramDecl(p)
	}
	return strings.Join(decls, ", ")
}

// keywordArgs renders "a=a, b=b" for every parameter in declared order.
func keywordArgs(t toolspec.Tool) string {
	args := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		args[i] = p.Name + "=" + p.Name
	}
	return strings.Join(args, ", ")
}

// joinLines joins rendered lines with newlines.
func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
