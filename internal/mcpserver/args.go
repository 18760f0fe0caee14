package mcpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// payload returns the JSON carried by an argument that clients may send
// either structured or as a JSON-encoded string. An absent or null
// argument yields nil.
func payload(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	return []byte(s), nil
}

// decodeArg decodes a structured-or-string argument into v. It reports
// whether the argument was present.
func decodeArg(name string, raw json.RawMessage, v any) (bool, error) {
	data, err := payload(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%s is not valid JSON: %w", name, err)
	}
	return true, nil
}
