package naming

import "strings"

// ScalarType is the closed set of parameter types a tool may declare.
type ScalarType int

const (
	String ScalarType = iota
	Integer
	Float
	Boolean
	List
	Map
)

// typeTags maps every accepted type tag to its ScalarType. Lookups are done
// on the lower-cased tag.
var typeTags = map[string]ScalarType{
	"string":  String,
	"str":     String,
	"integer": Integer,
	"int":     Integer,
	"number":  Float,
	"float":   Float,
	"boolean": Boolean,
	"bool":    Boolean,
	"list":    List,
	"array":   List,
	"dict":    Map,
	"object":  Map,
}

// ParseScalarType maps a declared type tag to a ScalarType. Matching is
// case-insensitive and unknown tags fall back to String; it never fails.
func ParseScalarType(tag string) ScalarType {
	if t, ok := typeTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return t
	}
	return String
}

// KnownTypeTag reports whether tag is part of the accepted vocabulary.
func KnownTypeTag(tag string) bool {
	_, ok := typeTags[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// Annotation returns the Python type annotation for t.
func (t ScalarType) Annotation() string {
	switch t {
	case Integer:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "bool"
	case List:
		return "list"
	case Map:
		return "dict"
	default:
		return "str"
	}
}

// TestLiteral returns the literal passed for a parameter of type t in a
// generated smoke test.
func (t ScalarType) TestLiteral() string {
	switch t {
	case Integer:
		return "1"
	case Float:
		return "1.0"
	case Boolean:
		return "True"
	default:
		return `"test"`
	}
}

// String returns the canonical tag for t.
func (t ScalarType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "number"
	case Boolean:
		return "boolean"
	case List:
		return "list"
	case Map:
		return "object"
	default:
		return "string"
	}
}
