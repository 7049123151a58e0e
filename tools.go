//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep counterfeiter, which
// regenerates internal/transfer/transferfakes through go generate, pinned
// in go.mod.
package sdtp

import (
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)
