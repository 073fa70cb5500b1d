// File: cmd/shell.go
package cmd

import (
	"github.com/spf13/cobra"
)

// newShellCmd opens the interactive shell, optionally seeded with files.
func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [input.pdf ...]",
		Short: "Open the interactive merge shell",
		Long: `Open a terminal interface for building the input list. Files can be typed,
dropped onto the terminal or pasted from the clipboard, then reordered and
merged into a single PDF.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(args)
		},
	}
}
