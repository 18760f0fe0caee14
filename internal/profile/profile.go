package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/mcpcreator-labs/mcp-creator/internal/filewriter"
	"github.com/mcpcreator-labs/mcp-creator/internal/userdata"
)

// Project is one entry in the creator's project history.
type Project struct {
	Name        string `json:"name"`
	PyPIURL     string `json:"pypi_url,omitempty"`
	GitHubURL   string `json:"github_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Profile is the persisted creator state.
type Profile struct {
	SetupComplete    bool      `json:"setup_complete"`
	GitHubUsername   string    `json:"github_username"`
	PyPIUsername     string    `json:"pypi_username"`
	DefaultOutputDir string    `json:"default_output_dir"`
	Projects         []Project `json:"projects"`
}

// ProjectNames returns the names of recorded projects in order.
func (p *Profile) ProjectNames() []string {
	names := make([]string, len(p.Projects))
	for i, pr := range p.Projects {
		names[i] = pr.Name
	}
	return names
}

// Patch lists the fields to change. Nil fields are left alone.
type Patch struct {
	SetupComplete    *bool
	GitHubUsername   *string
	PyPIUsername     *string
	DefaultOutputDir *string
	AddProject       *Project
}

// Apply merges the patch into p. A project is appended only if no recorded
// project has the same name.
func (patch Patch) Apply(p *Profile) {
	if patch.SetupComplete != nil {
		p.SetupComplete = *patch.SetupComplete
	}
	if patch.GitHubUsername != nil {
		p.GitHubUsername = *patch.GitHubUsername
	}
	if patch.PyPIUsername != nil {
		p.PyPIUsername = *patch.PyPIUsername
	}
	if patch.DefaultOutputDir != nil {
		p.DefaultOutputDir = *patch.DefaultOutputDir
	}
	if patch.AddProject != nil && !slices.Contains(p.ProjectNames(), patch.AddProject.Name) {
		p.Projects = append(p.Projects, *patch.AddProject)
	}
}

// Store reads and writes a profile file. Updates through one Store are
// serialised.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a Store at the default profile location.
func DefaultStore() (*Store, error) {
	path, err := userdata.GetProfilePath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the profile. A missing file yields a fresh, empty profile.
func (s *Store) Load() (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Profile{Projects: []Project{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", s.path, err)
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	return &p, nil
}

// Save writes the profile with owner-only permissions.
func (s *Store) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := filewriter.WriteFile(s.path, append(data, '\n'), filewriter.FilePermSecure); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Update loads the profile, applies patch and saves it.
func (s *Store) Update(patch Patch) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// OutputDir picks the parent directory for a new project: the explicit
// argument, then the configured default unless it is ".", then the
// profile's default_output_dir, then ".".
func (s *Store) OutputDir(arg, configured string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if configured != "" && configured != "." {
		return configured, nil
	}
	p, err := s.Load()
	if err != nil {
		return "", err
	}
	if p.DefaultOutputDir != "" {
		return p.DefaultOutputDir, nil
	}
	return ".", nil
}

// NextSteps returns guidance for the start of a session, based on how far
// the creator has got.
func NextSteps(p *Profile) []string {
	switch {
	case p.SetupComplete && len(p.Projects) > 0:
		return []string{
			fmt.Sprintf("Returning creator with %d project(s): %s.", len(p.Projects), strings.Join(p.ProjectNames(), ", ")),
			"Skip all setup and ask what they want to build next.",
			"They can also add tools to existing projects or publish updates.",
		}
	case p.SetupComplete:
		return []string{
			"Setup is complete but no projects yet.",
			"Skip setup instructions and go straight to asking what they want to build.",
		}
	default:
		return []string{
			"New creator: run check_setup to see what they need to install.",
			"Walk them through any missing setup steps.",
		}
	}
}
