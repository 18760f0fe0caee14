// Package pypi checks package-name availability against the PyPI JSON API.
// It makes exactly one request per call, with no retries or caching.
package pypi
