// Package vcs turns a generated project into a git repository and
// publishes it to GitHub using the git and gh command-line tools.
package vcs
