package naming

import "testing"

func TestToModuleName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-weather-mcp", "my_weather_mcp"},
		{"acme-mcp", "acme_mcp"},
		{"plain", "plain"},
		{"", ""},
		{"a--b", "a__b"},
	}
	for _, tt := range tests {
		if got := ToModuleName(tt.in); got != tt.want {
			t.Errorf("ToModuleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToPackageName(t *testing.T) {
	if got := ToPackageName("my_weather_mcp"); got != "my-weather-mcp" {
		t.Errorf("ToPackageName = %q, want %q", got, "my-weather-mcp")
	}
}

func TestToClassName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"get_weather", "GetWeather"},
		{"ping", "Ping"},
		{"get_UV_index", "GetUvIndex"},
		{"_private", "Private"},
		{"get_2fa", "Get2fa"},
		{"v2_api", "V2Api"},
		{"get_x509cert", "GetX509cert"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToClassName(tt.in); got != tt.want {
				t.Errorf("ToClassName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseScalarType(t *testing.T) {
	tests := []struct {
		tag  string
		want ScalarType
	}{
		{"string", String},
		{"str", String},
		{"integer", Integer},
		{"INT", Integer},
		{"number", Float},
		{"float", Float},
		{"Boolean", Boolean},
		{"bool", Boolean},
		{"list", List},
		{"array", List},
		{"dict", Map},
		{"object", Map},
		{"uuid", String},
		{"", String},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseScalarType(tt.tag); got != tt.want {
				t.Errorf("ParseScalarType(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestScalarTypeRendering(t *testing.T) {
	tests := []struct {
		typ        ScalarType
		annotation string
		literal    string
	}{
		{String, "str", `"test"`},
		{Integer, "int", "1"},
		{Float, "float", "1.0"},
		{Boolean, "bool", "True"},
		{List, "list", `"test"`},
		{Map, "dict", `"test"`},
	}
	for _, tt := range tests {
		if got := tt.typ.Annotation(); got != tt.annotation {
			t.Errorf("%v.Annotation() = %q, want %q", tt.typ, got, tt.annotation)
		}
		if got := tt.typ.TestLiteral(); got != tt.literal {
			t.Errorf("%v.TestLiteral() = %q, want %q", tt.typ, got, tt.literal)
		}
	}
}

func TestKnownTypeTag(t *testing.T) {
	if !KnownTypeTag("Array") {
		t.Error("Array should be known")
	}
	if KnownTypeTag("tuple") {
		t.Error("tuple should not be known")
	}
}
