//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "pronounceit"

var Default = Build

// Build compiles the pronounceit binary into the repository root
func Build() error {
	return sh.RunV("go", "build", "-o", binaryName, "./cmd/pronounceit")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs pronounceit into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/pronounceit")
}

// ImportDict loads the CMU dictionary into the sqlite store.
// The dictionary path is taken from CMUDICT if set.
func ImportDict() error {
	mg.Deps(Build)

	args := []string{"--import"}
	if path := os.Getenv("CMUDICT"); path != "" {
		args = append(args, "--cmudict", path)
	}
	return sh.RunV(filepath.Join(".", binaryName), args...)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Removing", binaryName)
	return sh.Rm(binaryName)
}
