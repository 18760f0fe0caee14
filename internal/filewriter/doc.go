// Package filewriter persists generated files and splices fragments into
// existing ones at sentinel lines.
package filewriter
