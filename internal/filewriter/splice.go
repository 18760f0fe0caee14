package filewriter

import (
	"fmt"
	"os"
	"strings"
)

// Splice describes one insertion relative to a sentinel line.
type Splice struct {
	Sentinel string
	Fragment string
	Before   bool // insert above the sentinel instead of below it
}

// InsertBeforeLine inserts fragment on its own line(s) directly above the
// first line equal to sentinel. It reports false, leaving text unchanged,
// when no such line exists.
func InsertBeforeLine(text, sentinel, fragment string) (string, bool) {
	return insertAt(text, sentinel, fragment, true)
}

// InsertAfterLine inserts fragment directly below the first line equal to
// sentinel.
func InsertAfterLine(text, sentinel, fragment string) (string, bool) {
	return insertAt(text, sentinel, fragment, false)
}

func insertAt(text, sentinel, fragment string, before bool) (string, bool) {
	lines := strings.Split(text, "\n")
	idx := findLine(lines, sentinel)
	if idx < 0 {
		return text, false
	}

	at := idx + 1
	if before {
		at = idx
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, fragment)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n"), true
}

// findLine returns the index of the first line matching sentinel, ignoring
// trailing whitespace and carriage returns.
func findLine(lines []string, sentinel string) int {
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r") == sentinel {
			return i
		}
	}
	return -1
}

// SpliceFile applies edits to the file at path in order and writes it back
// once. applied[i] reports whether edit i found its sentinel. The file is
// rewritten only when every edit applies; otherwise it is left untouched.
func SpliceFile(path string, edits ...Splice) ([]bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	applied := make([]bool, len(edits))
	complete := true
	for i, e := range edits {
		text, applied[i] = insertAt(text, e.Sentinel, e.Fragment, e.Before)
		complete = complete && applied[i]
	}
	if !complete || len(edits) == 0 {
		return applied, nil
	}

	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return applied, fmt.Errorf("writing %s: %w", path, err)
	}
	return applied, nil
}
