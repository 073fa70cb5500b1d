package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coderforge/pdfjoin/pkg/config"
	"github.com/coderforge/pdfjoin/pkg/filelist"
	"github.com/coderforge/pdfjoin/pkg/joiner"
	"github.com/coderforge/pdfjoin/pkg/logging"
	"github.com/coderforge/pdfjoin/pkg/pdf"
	"github.com/coderforge/pdfjoin/pkg/shell"
	"github.com/coderforge/pdfjoin/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrMergeFailed is returned after a failed merge has already been reported
// on the console.
var ErrMergeFailed = errors.New("merge failed")

// noGUIArg is the positional keyword that forces command-line mode.
const noGUIArg = "no-gui"

// flags holds the values bound to persistent and root flags.
type flags struct {
	configPath string
	debug      bool
	noGUI      bool
	validation string
	expandDirs bool
	recursive  bool
	exclude    []string
	workers    int
}

// deps are the process-level collaborators a command tree needs.
type deps struct {
	interactive func() bool
	runShell    func(shell.Options) error
}

func defaultDeps() deps {
	return deps{
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		runShell: shell.Run,
	}
}

// app is the resolved state shared by every command once flags are parsed.
type app struct {
	deps   deps
	flags  flags
	cfg    config.Config
	logger *zap.Logger
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return newRootCmd(defaultDeps()).Execute()
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pdfjoin [no-gui] <output_file.pdf> <input1.pdf> <input2.pdf> ...",
		Short: "pdfjoin concatenates PDF files into a single document",
		Long: `pdfjoin appends the pages of every input PDF, in the order given, to a single
output file. Missing or unreadable inputs are reported and skipped.

Run without file arguments in a terminal to open the interactive shell, or pass
"no-gui" to stay on the command line.`,
		Version:       version.Get().Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd, args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Path to a YAML config file (default $"+config.EnvConfigPath+" or the user config dir)")
	pf.BoolVar(&a.flags.debug, "debug", false, "Enable development logging")
	pf.StringVar(&a.flags.validation, "validation", string(pdf.ModeRelaxed), "PDF validation mode: relaxed or strict")
	pf.BoolVar(&a.flags.expandDirs, "expand-dirs", false, "Replace directory arguments with the PDF files they contain")
	pf.BoolVarP(&a.flags.recursive, "recursive", "r", false, "Descend into subdirectories when expanding directories")
	pf.StringSliceVarP(&a.flags.exclude, "exclude", "e", nil, "Ignore pattern for expanded directories (repeatable)")
	pf.IntVar(&a.flags.workers, "workers", 0, "Concurrent page counters (0 = one per CPU)")
	root.Flags().BoolVar(&a.flags.noGUI, noGUIArg, false, "Never open the interactive shell")

	root.AddCommand(newVersionCmd(), newInfoCmd(a), newShellCmd(a))
	return root
}

// setup loads the config file, applies explicitly set flags on top of it and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("debug") {
		cfg.Debug = a.flags.debug
	}
	if fs.Changed("validation") {
		cfg.Validation = a.flags.validation
	}
	if fs.Changed("expand-dirs") {
		cfg.ExpandDirs = a.flags.expandDirs
	}
	if fs.Changed("recursive") {
		cfg.Recursive = a.flags.recursive
	}
	if fs.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, a.flags.exclude...)
	}
	if fs.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Setup(logging.Options{
		Debug:      cfg.Debug,
		Level:      cfg.LogLevel,
		AppName:    version.AppName,
		AppVersion: version.Get().Version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	if used != "" {
		a.logger.Debug("Loaded config file", zap.String("path", used))
	}
	return nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	positional, noGUI := splitNoGUI(args)
	noGUI = noGUI || a.flags.noGUI

	if len(positional) < 2 {
		if !noGUI && a.deps.interactive() {
			return a.runShell(positional)
		}
		printUsage(cmd.OutOrStdout(), noGUI)
		return nil
	}
	return a.runMerge(cmd.OutOrStdout(), positional[0], positional[1:])
}

// splitNoGUI removes every no-gui keyword from args and reports whether one was present.
func splitNoGUI(args []string) ([]string, bool) {
	var rest []string
	found := false
	for _, arg := range args {
		if strings.EqualFold(arg, noGUIArg) {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return rest, found
}

func printUsage(w io.Writer, cliMode bool) {
	if cliMode {
		fmt.Fprintln(w, "Usage Error (CLI Mode).")
	} else {
		fmt.Fprintln(w, "Usage Error.")
	}
	fmt.Fprintln(w, "Correct syntax: pdfjoin no-gui <output_file.pdf> <input1.pdf> <input2.pdf> ...")
	fmt.Fprintln(w, "Example: pdfjoin no-gui my_merged_doc.pdf chapter1.pdf chapter2.pdf")
}

// newJoiner returns a joiner backed by pdfcpu documents.
func (a *app) newJoiner(out io.Writer) *joiner.Joiner {
	mode := a.cfg.ValidationMode()
	logger := a.logger
	return joiner.New(func() joiner.Accumulator {
		return pdf.NewDocument(mode, logger)
	}, logger, out)
}

// collect turns file arguments into the ordered input list.
func (a *app) collect(args []string) (*filelist.List, error) {
	return filelist.Collect(args, filelist.CollectOptions{
		ExpandDirs: a.cfg.ExpandDirs,
		Recursive:  a.cfg.Recursive,
		Exclude:    a.cfg.Exclude,
		Logger:     a.logger,
	})
}

// runMerge merges inputs into output. Without directory expansion the
// arguments are used exactly as given, repeats included.
func (a *app) runMerge(out io.Writer, output string, inputs []string) error {
	j := a.newJoiner(out)

	var err error
	if a.cfg.ExpandDirs {
		list, collectErr := a.collect(inputs)
		if collectErr != nil {
			a.logger.Error("Failed to collect input files", zap.Error(collectErr))
			return collectErr
		}
		_, err = j.MergeList(list, output)
	} else {
		_, err = j.Merge(inputs, output)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}
	return nil
}

func (a *app) pageCounter() func(string) (int, error) {
	mode := a.cfg.ValidationMode()
	return func(path string) (int, error) {
		return pdf.PageCount(path, mode)
	}
}

func (a *app) runShell(args []string) error {
	list, err := a.collect(args)
	if err != nil {
		a.logger.Error("Failed to collect input files", zap.Error(err))
		return err
	}

	j := a.newJoiner(io.Discard)
	return a.deps.runShell(shell.Options{
		List: list,
		Merge: func(inputs []string, output string) (joiner.Result, error) {
			return j.Merge(inputs, output)
		},
		Count:         a.pageCounter(),
		Workers:       a.cfg.Workers,
		DefaultOutput: a.cfg.DefaultOutput,
		Logger:        a.logger,
	})
}
