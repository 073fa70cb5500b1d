// File: cmd/info.go
package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/coderforge/pdfjoin/pkg/inspect"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newInfoCmd prints the page count of every input without merging.
func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <input1.pdf> [input2.pdf ...]",
		Short: "Show the page count of each input file",
		Long: `Read every input the same way a merge would and report its page count.
Files that are missing or unreadable are listed with the reason.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.collect(args)
			if err != nil {
				return err
			}

			entries := inspect.PageCounts(cmd.Context(), list.Paths(), a.cfg.Workers, a.pageCounter(), a.logger)
			fmt.Fprintln(cmd.OutOrStdout(), renderInfo(entries))
			return nil
		},
	}
}

func renderInfo(entries []inspect.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		pages := strconv.Itoa(e.Pages)
		status := "ok"
		if e.Err != nil {
			pages = "-"
			status = e.Err.Error()
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), filepath.Base(e.Path), pages, status})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "FILE", "PAGES", "STATUS").
		Rows(rows...)

	total, readable := inspect.Total(entries)
	return fmt.Sprintf("%s\n%d of %d files readable, %d pages total", t.String(), readable, len(entries), total)
}
