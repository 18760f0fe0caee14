// Package mutate adds tools to projects generated by package scaffold.
//
// The entrypoint of a generated project carries four sentinel comment
// lines. A new tool's import is inserted directly above the import-block
// close marker and its registration directly below the registration-block
// open marker, so newer tools register ahead of older ones. The per-tool
// files are rendered by the same functions scaffold uses, so a tool added
// later is indistinguishable from one declared at generation time apart
// from its position in the entrypoint. The aggregate registration test is
// not rewritten.
package mutate
