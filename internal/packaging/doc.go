// Package packaging builds and publishes generated projects with uv.
package packaging
