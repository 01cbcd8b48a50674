// Package main provides the CLI entry point for xlmerge.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlmerge-go/internal/config"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/discover"
)

var (
	outputPath string
	pattern    string
	recursive  bool
	valuesOnly bool
	configPath string
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlmerge [source-dir]",
		Short: "Merge Excel workbooks into a single workbook",
		Long: `xlmerge copies the first sheet of every Excel workbook in a folder
into one consolidated workbook, one sheet per file, named after the file.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: combined.xlsx in the source folder)")
	rootCmd.Flags().StringVarP(&pattern, "pattern", "p", discover.DefaultPattern, "Glob pattern used to filter Excel files")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Search for Excel files recursively")
	rootCmd.Flags().BoolVar(&valuesOnly, "values-only", false, "Copy the last calculated values instead of formulas")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with default settings")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	var cfg config.Config
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		applyConfig(cmd, cfg)
	}

	source, output, defaulted, err := resolvePaths(args, cfg.Source, outputPath, executableDir)
	if err != nil {
		return err
	}
	if defaulted {
		printInfo(cmd.OutOrStdout(), fmt.Sprintf(
			"No source directory provided. Using the folder that contains this program:\n  %s", source))
	}

	opts := xlmerge.DefaultOptions()
	opts.Pattern = pattern
	opts.Recursive = recursive
	opts.ValuesOnly = valuesOnly
	opts.Logger = logger

	result, err := xlmerge.Merge(source, output, opts)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// applyConfig fills flags the user did not set explicitly from cfg.
func applyConfig(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("output") && cfg.Output != "" {
		outputPath = cfg.Output
	}
	if !flags.Changed("pattern") && cfg.Pattern != "" {
		pattern = cfg.Pattern
	}
	if !flags.Changed("recursive") && cfg.Recursive {
		recursive = true
	}
	if !flags.Changed("values-only") && cfg.ValuesOnly {
		valuesOnly = true
	}
}

// resolvePaths picks the source directory (argument, then config, then the
// executable's folder) and the output path (flag or config, else
// combined.xlsx inside the source directory). exeDir is consulted only when
// neither argument nor config names a source; defaulted reports that case.
func resolvePaths(args []string, cfgSource, output string, exeDir func() (string, error)) (source, out string, defaulted bool, err error) {
	switch {
	case len(args) > 0:
		source = args[0]
	case cfgSource != "":
		source = cfgSource
	default:
		if source, err = exeDir(); err != nil {
			return "", "", false, fmt.Errorf("locate executable: %w", err)
		}
		defaulted = true
	}

	out = output
	if out == "" {
		out = filepath.Join(source, xlmerge.DefaultOutputName)
	}
	return source, out, defaulted, nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
