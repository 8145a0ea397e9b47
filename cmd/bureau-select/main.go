// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-select is an interactive terminal form of select boxes. It
// reads a form definition (YAML or JSONC) naming each field's options,
// whether it takes one value or many, and its initial selection, then
// lets the user pick with the keyboard or mouse. On exit the final
// selections are printed to stdout as text, JSON or YAML.
//
// Without --definition a built-in demo form is shown: the same four
// options once as a multiple select and once as a single select.
//
// Ctrl+S quits and saves the selections to a CBOR state file; the next
// run with an unchanged option list starts from them. The TUI renders
// on stderr so stdout can be piped.
package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-select/lib/catalogdef"
	"github.com/bureau-foundation/bureau-select/lib/config"
	"github.com/bureau-foundation/bureau-select/lib/selectstate"
	"github.com/bureau-foundation/bureau-select/lib/selectui"
	"github.com/bureau-foundation/bureau-select/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// flags holds the command line. Values only override the config file
// when the flag was given.
type flags struct {
	configPath     string
	definitionPath string
	statePath      string
	noState        bool
	logOutput      string
	logLevel       string
	boxWidth       int
	output         string
	noColor        bool
}

func newFlagSet(values *flags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("bureau-select", pflag.ContinueOnError)
	flagSet.StringVarP(&values.configPath, "config", "c", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVarP(&values.definitionPath, "definition", "d", "", "form definition file, .yaml or .jsonc (default: built-in demo)")
	flagSet.StringVar(&values.statePath, "state", "", "state file for saved selections")
	flagSet.BoolVar(&values.noState, "no-state", false, "neither restore nor save selections")
	flagSet.StringVar(&values.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.StringVar(&values.logLevel, "log-level", "", "minimum level shown in the status bar: debug, info, warn, error")
	flagSet.IntVar(&values.boxWidth, "width", 0, "select box width in columns")
	flagSet.StringVarP(&values.output, "output", "o", outputText, "result format: "+strings.Join(outputFormats, ", "))
	flagSet.BoolVar(&values.noColor, "no-color", false, "disable colors")
	flagSet.Bool("version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

// applyFlags copies every flag that was set on the command line into
// cfg.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, values flags) {
	if flagSet.Changed("definition") {
		cfg.Definition = values.definitionPath
	}
	if flagSet.Changed("state") {
		cfg.State.Path = values.statePath
	}
	if flagSet.Changed("no-state") {
		cfg.State.Disabled = values.noState
	}
	if flagSet.Changed("log-output") {
		cfg.Log.Output = values.logOutput
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = values.logLevel
	}
	if flagSet.Changed("width") {
		cfg.BoxWidth = values.boxWidth
	}
}

func run(args []string) error {
	var values flags
	flagSet := newFlagSet(&values)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return Validation("%w", err).WithHint("Run 'bureau-select --help' for usage.")
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion, _ := flagSet.GetBool("version"); showVersion {
		fmt.Printf("bureau-select %s\n", version.Full())
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return Validation("unexpected argument: %s", rest[0])
	}
	if !slices.Contains(outputFormats, values.output) {
		return Validation("unknown --output format %q", values.output).
			WithHint("Use one of: " + strings.Join(outputFormats, ", ") + ".")
	}

	cfg, err := loadConfig(values.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, flagSet, values)
	if err := cfg.Validate(); err != nil {
		return Validation("invalid configuration:\n%w", err)
	}
	level, _ := cfg.SlogLevel()
	theme, _ := cfg.ResolvedTheme()
	stderrLogger := newStderrLogger(level)

	definition, err := loadDefinition(cfg.Definition)
	if err != nil {
		return err
	}

	var state *selectstate.State
	if !cfg.State.Disabled {
		state, err = selectstate.Load(cfg.State.Path)
		if err != nil {
			stderrLogger.Warn("ignoring unreadable state file", "path", cfg.State.Path, "error", err)
			state = selectstate.New()
		}
	}

	if values.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger, tuiHandler, closeLog, err := newTUILogger(level, cfg.Log.Output)
	if err != nil {
		return Validation("cannot open log file %s: %w", cfg.Log.Output, err)
	}
	defer closeLog()

	model, err := selectui.NewModel(definition, selectui.Options{
		Theme:    theme,
		BoxWidth: cfg.BoxWidth,
		Logger:   logger,
		State:    state,
	})
	if err != nil {
		return Validation("cannot build form: %w", err)
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(os.Stderr),
	)
	tuiHandler.SetProgram(program)

	finished, err := program.Run()
	tuiHandler.SetProgram(nil)
	if err != nil {
		return Internal("terminal UI failed: %w", err)
	}
	final := finished.(selectui.Model)

	if final.Saved() && state != nil {
		final.Record(state)
		if err := selectstate.Save(cfg.State.Path, state); err != nil {
			return Internal("cannot save selections: %w", err)
		}
		stderrLogger.Info("selections saved", "path", cfg.State.Path, "fields", len(state.Names()))
	}

	return writeResult(os.Stdout, values.output, final.Result())
}

// loadConfig reads path, or the file named by the environment when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("cannot load config: %w", err).
			WithHint("Check the file named by --config or $" + config.EnvironmentVariable + ".")
	}
	return cfg, nil
}

// loadDefinition reads and validates the form definition at path, or
// returns the demo form for an empty path.
func loadDefinition(path string) (*catalogdef.Definition, error) {
	if path == "" {
		return catalogdef.Demo(), nil
	}
	definition, err := catalogdef.ReadFile(path)
	if err != nil {
		return nil, Validation("cannot load definition: %w", err).
			WithHint("Definitions are YAML (.yaml, .yml) or JSON with comments (.json, .jsonc).")
	}
	if problems := catalogdef.Validate(definition); len(problems) > 0 {
		return nil, Validation("invalid definition %s:\n  %s", path, strings.Join(problems, "\n  "))
	}
	return definition, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `bureau-select: pick values from select boxes in the terminal.

Shows one select box per field of a form definition. Fields take a
single value or many. On exit the selections are printed to stdout.

Keys:
  tab, shift+tab    move between fields
  enter, space      open the list, or pick the highlighted option
  up, down          open the list, or move the highlight
  esc               close the list
  ctrl+s            save the selections and quit
  q, ctrl+c         quit

Usage:
  bureau-select [flags]

Examples:
  # Try the built-in demo form
  bureau-select

  # Pick from a definition and read the result as JSON
  bureau-select --definition form.yaml --output json | jq .

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
