// Package utils holds small filesystem helpers used by internal/config
// (and through it by cmd/euchresrv).
package utils

import (
	"fmt"
	"os"
)

// EnsureDataDirExists creates datadir (and any missing parents) if it
// doesn't already exist.
func EnsureDataDirExists(datadir string) error {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return fmt.Errorf("failed to create datadir %s: %v", datadir, err)
	}
	return nil
}
