//go:build tools

// Package tools tracks code generators (mockgen) as module dependencies so
// `go generate ./...` is reproducible.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
