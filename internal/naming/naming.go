package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToModuleName converts a registry package name into the importable module
// name used under src/, e.g. "my-weather-mcp" → "my_weather_mcp".
func ToModuleName(packageName string) string {
	return strings.ReplaceAll(packageName, "-", "_")
}

// ToPackageName is the inverse of ToModuleName. It is used when a project is
// rediscovered from its src/ directory and only the module name is known.
func ToPackageName(moduleName string) string {
	return strings.ReplaceAll(moduleName, "_", "-")
}

// ToClassName converts a snake_case identifier to PascalCase,
// e.g. "get_weather" → "GetWeather". Each segment is capitalised the way
// Python's str.capitalize does it: the first rune upper-cased and the rest
// lowered, so "get_2fa" → "Get2fa".
func ToClassName(identifier string) string {
	// A Caser carries state and must not be shared between goroutines.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	for _, seg := range strings.Split(identifier, "_") {
		if seg == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(seg)
		b.WriteString(upper.String(seg[:size]))
		b.WriteString(lower.String(seg[size:]))
	}
	return b.String()
}
