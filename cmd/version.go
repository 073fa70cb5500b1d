// File: cmd/version.go
package cmd

import (
	"fmt"

	"github.com/coderforge/pdfjoin/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd displays the version of the pdfjoin binary.
// The --short flag prints the version number only.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of pdfjoin",
		Long:  `Display the current version information of the pdfjoin CLI tool.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
