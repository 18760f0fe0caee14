package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "mcp-creator"},
		{"DisplayName", DisplayName(), "MCP Creator"},
		{"HomeDir", HomeDir(), ".mcp-creator"},
		{"EnvPrefix", EnvPrefix(), "MCP_CREATOR"},
		{"RegistryURL", RegistryURL(), "https://pypi.org"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("profile"); got != "MCP_CREATOR_PROFILE" {
		t.Errorf("EnvVar(profile) = %q", got)
	}
}
