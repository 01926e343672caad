package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fsx/internal/app"
	"fsx/internal/config"
	"fsx/internal/report"
)

// errOperationFailed is returned under --strict once the failure has been reported.
var errOperationFailed = errors.New("operation failed")

var (
	strict  bool
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it is missing.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates an App. The caller must defer closeApp.
// operation names the exercise being run (e.g. "CreateFile", "ReadLines").
// Only a broken config file fails here; an unusable run history or log
// directory degrades to an unrecorded run.
func newApp(cmd *cobra.Command, operation string) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var mirror io.Writer
	if verbose {
		mirror = cmd.ErrOrStderr()
	}

	return app.New(cfg, operation, mirror), nil
}

// closeApp closes a and reports a failure to record the run as a warning.
// The exercise has already completed, so the exit status is left alone.
func closeApp(cmd *cobra.Command, a io.Closer) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
}

func newPrinter(cmd *cobra.Command) *report.Printer {
	var diag io.Writer
	if verbose {
		diag = cmd.ErrOrStderr()
	}
	return report.NewPrinter(cmd.OutOrStdout(), diag)
}

// pathArg returns the PATH argument, or def when none was given.
func pathArg(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}

// interactive reports whether r is a terminal.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outcome decides the exit status of a reported exercise failure.
func outcome(err error) error {
	if err != nil && strict {
		return errOperationFailed
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:           "fsx",
	Short:         "Small filesystem exercises",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var createCmd = &cobra.Command{
	Use:   "create [PATH]",
	Short: "Create an empty file unless something already exists there",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "CreateFile")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		res, err := a.CreateFile(pathArg(args, a.Config().Exercises.CreatePath))
		newPrinter(cmd).CreateFile(res, err)
		return outcome(err)
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists [PATH]",
	Short: "Create a file if needed, then check that it exists",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "CheckExists")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		res, err := a.CheckExists(pathArg(args, a.Config().Exercises.CreatePath))
		newPrinter(cmd).CheckExists(res, err)
		return outcome(err)
	},
}

var permsCmd = &cobra.Command{
	Use:   "perms [PATH]",
	Short: "Report whether a file can be read and written",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "CheckPermissions")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		perms := a.CheckPermissions(pathArg(args, a.Config().Exercises.PermissionsPath))
		newPrinter(cmd).Permissions(perms)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Read a name from standard input and report whether it is a file or a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ClassifyPath")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		p := newPrinter(cmd)
		p.Prompt()

		c, err := a.ClassifyInput(cmd.InOrStdin())

		// Piped input is not echoed, so end the prompt line ourselves.
		if !interactive(cmd.InOrStdin()) {
			fmt.Fprintln(cmd.OutOrStdout())
		}

		if err != nil {
			p.InputError(err)
			return outcome(err)
		}
		p.Classification(c)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write [PATH]",
	Short: "Replace the content of a file with one line of text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "WriteLine")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		text := a.Config().Exercises.Line
		if cmd.Flags().Changed("text") {
			text, _ = cmd.Flags().GetString("text")
		}

		err = a.WriteLine(pathArg(args, a.Config().Exercises.TextPath), text)
		newPrinter(cmd).WriteLine(err)
		return outcome(err)
	},
}

var readCmd = &cobra.Command{
	Use:   "read [PATH]",
	Short: "Print every line of a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "ReadLines")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		p := newPrinter(cmd)
		err = a.ReadLines(pathArg(args, a.Config().Exercises.TextPath), p.Line)
		if err != nil {
			p.ReadError(err)
		}
		return outcome(err)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded exercise runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "History")
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)

		runs, err := a.History(limit)
		if err != nil {
			return err
		}
		newPrinter(cmd).Runs(runs)
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), l10n.F("Configuration initialized at %s", defaults["config_path"]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, l10n.F("Configuration from %s:", defaults["config_path"]))
		fmt.Fprintln(out)
		m := &config.Manager{}
		return m.Write(out, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Exit with status 1 when an exercise fails")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print error details and the log to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// exercises
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(permsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().String("text", "", "Text to write instead of the configured line")
	rootCmd.AddCommand(readCmd)

	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of runs to show")
	rootCmd.AddCommand(configCmd)
}
