// Package toolspec defines the project and tool definitions the generator
// consumes. Payloads arrive as JSON or YAML and are validated against the
// embedded JSON Schemas in schema/ before they are decoded, so a missing
// required key is reported up front rather than surfacing mid-render.
package toolspec
