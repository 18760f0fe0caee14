package setupcheck

import (
	"fmt"
	"io"
)

// Print writes a human-readable report in the doctor style.
func Print(w io.Writer, r *Report) {
	fmt.Fprintln(w, "Setup check:")
	printTool(w, "python3", r.Checks.Python)
	printTool(w, "uv", r.Checks.UV)
	printTool(w, "git", r.Checks.Git)

	gh := r.Checks.GitHubCLI
	switch {
	case !gh.Installed:
		fmt.Fprintln(w, "  [MISS] gh not found")
	case !gh.Authenticated:
		fmt.Fprintln(w, "  [WARN] gh found but not authenticated")
	case gh.Username != "":
		fmt.Fprintf(w, "  [ OK ] gh authenticated as %s\n", gh.Username)
	default:
		fmt.Fprintln(w, "  [ OK ] gh authenticated")
	}

	if r.Checks.PyPIToken.Configured {
		fmt.Fprintf(w, "  [ OK ] %s is set\n", TokenEnvVar)
	} else {
		fmt.Fprintf(w, "  [MISS] %s is not set\n", TokenEnvVar)
	}

	if r.AllReady {
		fmt.Fprintln(w, "\nAll set.")
		return
	}
	fmt.Fprintln(w, "\nMissing steps:")
	for _, s := range r.MissingSteps {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func printTool(w io.Writer, name string, tc ToolCheck) {
	if !tc.Installed {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	version := tc.Version
	if version == "" {
		version = "version unknown"
	}
	if below(tc) {
		fmt.Fprintf(w, "  [WARN] %s %s (need %s)\n", name, version, tc.Minimum)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s %s\n", name, version)
}
