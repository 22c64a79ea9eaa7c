//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	semver "github.com/Masterminds/semver/v3"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const GOLANGCI_LINT_VERSION_CONSTRAINT = ">= 1.52.0"

const buildPackage = "github.com/sweepproject/sweep/internal/sweepctl/build"

var localBin = filepath.Join(".tools", "bin")

// Build compiles sweepctl into bin/ with version metadata baked in.
func Build() error {
	version, err := sh.Output("git", "describe", "--tags", "--dirty", "--always")
	if err != nil {
		version = "UNKNOWN"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "UNKNOWN"
	}
	ldflags := strings.Join([]string{
		fmt.Sprintf("-X %s.ReleaseVersion=%s", buildPackage, version),
		fmt.Sprintf("-X %s.GitCommit=%s", buildPackage, commit),
		fmt.Sprintf("-X %s.GoVersion=%s", buildPackage, runtime.Version()),
		fmt.Sprintf("-X %s.BuildTime=%s", buildPackage, time.Now().UTC().Format(time.RFC3339)),
	}, " ")
	return sh.Run("go", "build", "-ldflags", ldflags, "-o", filepath.Join("bin", binaryWithExt("sweepctl")), "./cmd/sweepctl")
}

// Gotestsum downloads gotestsum locally if necessary
func gotestsum() error {
	if err := os.MkdirAll(localBin, 0o755); err != nil {
		return err
	}
	bin := filepath.Join(localBin, binaryWithExt("gotestsum"))
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		gobin, err := filepath.Abs(localBin)
		if err != nil {
			return err
		}
		cmd := exec.Command("go", "install", "gotest.tools/gotestsum@v1.8.2")
		cmd.Env = append(os.Environ(), "GOBIN="+gobin)
		return cmd.Run()
	}
	return nil
}

// Tests is a mage target that runs the tests and generates coverage reports.
func Tests() error {
	mg.Deps(gotestsum)
	return sh.Run(
		filepath.Join(localBin, binaryWithExt("gotestsum")),
		"--", "-coverprofile=test_coverage.out", "./internal/...", "./cmd/...",
	)
}

// Extract the version of golangci-lint
func golangciLintVersion() (*semver.Version, error) {
	output, err := sh.Output(binaryWithExt("golangci-lint"), "--version")
	if err != nil {
		return nil, errors.Errorf("error running version cmd: %v", err)
	}
	fields := strings.Fields(output)
	if len(fields) < 4 {
		return nil, errors.Errorf("unexpected version cmd output: %s", output)
	}
	version, err := semver.NewVersion(strings.TrimPrefix(fields[3], "v"))
	if err != nil {
		return nil, errors.Errorf("error parsing version: %v", err)
	}
	return version, nil
}

// Check if the version of golangci-lint meets the predefined constraints
func golangciLintCheck() error {
	version, err := golangciLintVersion()
	if err != nil {
		return errors.Errorf("error getting version: %v", err)
	}
	constraint, err := semver.NewConstraint(GOLANGCI_LINT_VERSION_CONSTRAINT)
	if err != nil {
		return errors.Errorf("error parsing constraint: %v", err)
	}
	if !constraint.Check(version) {
		return errors.Errorf("found version %v but it failed constraint %v", version, constraint)
	}
	return nil
}

// Linting Check
func CheckLint() error {
	mg.Deps(golangciLintCheck)
	return sh.Run(binaryWithExt("golangci-lint"), "run", "--timeout", "10m")
}

// Fixing Linting
func LintFix() error {
	mg.Deps(golangciLintCheck)
	return sh.Run(binaryWithExt("golangci-lint"), "run", "--fix", "--timeout", "10m")
}

// Clean up after yourself
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", ".tools", "test_coverage.out"} {
		os.RemoveAll(path)
	}
}

func binaryWithExt(name string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("%s.exe", name)
	}
	return name
}
