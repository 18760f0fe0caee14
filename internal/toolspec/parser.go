package toolspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ParseProject validates a JSON or YAML project payload and decodes it.
// A malformed payload yields a *ValidationError.
func ParseProject(data []byte) (*Project, error) {
	result, err := ValidateProject(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &ValidationError{Subject: "project", Issues: result.Issues}
	}

	var p Project
	if err := decode(data, &p); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseProjectFile reads and parses a project file.
func ParseProjectFile(path string) (*Project, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseProject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseTool validates and decodes a single tool payload.
func ParseTool(data []byte) (*Tool, error) {
	result, err := ValidateTool(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &ValidationError{Subject: "tool", Issues: result.Issues}
	}

	var t Tool
	if err := decode(data, &t); err != nil {
		return nil, fmt.Errorf("decoding tool: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseTools decodes a JSON or YAML list of tools, validating each entry.
func ParseTools(data []byte) ([]Tool, error) {
	var raw []any
	if err := decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding tool list: %w", err)
	}

	tools := make([]Tool, 0, len(raw))
	for i, item := range raw {
		itemJSON, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", i, err)
		}
		t, err := ParseTool(itemJSON)
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", i, err)
		}
		tools = append(tools, *t)
	}
	return tools, nil
}

// decode unmarshals JSON (keeping numeric literals as json.Number) or YAML.
func decode(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && isJSON(trimmed) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		return dec.Decode(v)
	}
	return yaml.Unmarshal(trimmed, v)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
