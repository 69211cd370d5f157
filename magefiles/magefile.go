//go:build mage

// Package main provides build targets for vanprop using Mage.
//
// Usage:
//
//	mage build            Compile the server and CLI binaries to bin/
//	mage test             Run unit tests (integration tests skipped)
//	mage testIntegration  Run all tests against the DB_* database
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binLint   = "golangci-lint"
	binaryDir = "bin"
)

// binaries maps output names to their main packages.
var binaries = map[string]string{
	"vanprop-server": "./cmd/server",
	"vanprop":        "./cmd/vanprop",
}

// Build compiles the server and CLI binaries to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		if err := sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test runs unit tests. Database tests skip themselves in short mode.
func Test() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// TestIntegration runs every test, including those that need Postgres.
// Packages run one at a time because they share the test database.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV(binGo, "test", "-p", "1", "-count=1", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
