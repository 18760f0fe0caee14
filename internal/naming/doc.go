// Package naming holds the identifier conversions shared by the code
// generator and the mutator: package name to module name, snake_case to
// class name, and the fixed parameter type vocabulary.
package naming
