// Package initcmder provides the init command for initializing a local .vitals
// directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	dirName       = ".vitals"
	corpusDirName = "corpus"
)

const initLongDesc string = `Initialize a new .vitals/ directory in the current working directory.

Creates a local .vitals/ directory with an empty corpus/ subdirectory.
The local directory takes precedence over the default ~/.vitals/
directory for configuration and corpus resolution.

This is useful for maintaining separate health data per directory.

Examples:
  vitals init`

const initShortDesc string = "Initialize a local .vitals/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		fmt.Printf("Already initialized: %s\n", dir)
		return nil
	}

	if err := os.MkdirAll(filepath.Join(dir, corpusDirName), 0o755); err != nil {
		return fmt.Errorf("creating .vitals directory: %w", err)
	}

	fmt.Printf("Initialized .vitals directory: %s\n", dir)
	return nil
}
