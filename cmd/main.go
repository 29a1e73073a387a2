// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"copyright-scan/internal/config"
	"copyright-scan/internal/core"
	"copyright-scan/internal/version"

	"copyright-scan/internal/formatters"
	_ "copyright-scan/internal/formatters/json"
	_ "copyright-scan/internal/formatters/text"
	_ "copyright-scan/internal/formatters/yaml"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// configFlags holds command line flag values
type configFlags struct {
	file             string
	outputFormat     string
	outputFile       string
	configFile       string
	aliasFile        string
	recursive        bool
	verbose          bool
	debug            bool
	noColor          bool
	includePackaging bool
	noSimplify       bool
	showVersion      bool
	listFormats      bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format           string
	aliasFile        string
	recursive        bool
	verbose          bool
	debug            bool
	noColor          bool
	includePackaging bool
	noSimplify       bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.listFormats {
		printFormats()
		return
	}

	if flags.file == "" {
		fmt.Fprintln(os.Stderr, "Error: no input specified (use -file)")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfigOrDefault(flags.configFile)
	final := resolveConfiguration(cfg, flags)

	if err := formatters.ValidateFormat(final.format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Disable colors when not writing to a terminal, or when asked to.
	if final.noColor || flags.outputFile != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	result, err := core.ScanPath(core.ScanConfig{
		Path:             flags.file,
		Recursive:        final.recursive,
		IncludePackaging: final.includePackaging,
		NoSimplify:       final.noSimplify,
		AliasFile:        final.aliasFile,
		Verbose:          final.verbose,
		Debug:            final.debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	formatter, _ := formatters.Get(final.format)
	output, err := formatter.Format(result.Results, formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: final.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting results: %v\n", err)
		os.Exit(1)
	}

	if flags.outputFile != "" {
		if err := os.WriteFile(flags.outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(output)
	}

	if final.verbose && result.FailedFiles > 0 {
		fmt.Fprintf(os.Stderr, "%d file(s) could not be processed\n", result.FailedFiles)
	}
}

func parseFlags() *configFlags {
	flags := &configFlags{}

	flag.StringVar(&flags.file, "file", "", "Copyright file or directory to scan")
	flag.StringVar(&flags.outputFormat, "format", "", "Output format (text, json, yaml)")
	flag.StringVar(&flags.outputFile, "output", "", "Write output to a file instead of stdout")
	flag.StringVar(&flags.configFile, "config", "", "Path to a configuration file")
	flag.StringVar(&flags.aliasFile, "alias-file", "", "Override the built-in declared-license alias table")
	flag.BoolVar(&flags.recursive, "recursive", false, "Scan directories recursively for copyright files")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show copyright statements and per-file warnings")
	flag.BoolVar(&flags.debug, "debug", false, "Emit per-operation debug records to stderr")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.includePackaging, "include-packaging", false, "Include debian/* packaging paragraphs in the results")
	flag.BoolVar(&flags.noSimplify, "no-simplify", false, "Do not simplify the combined license expression")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.listFormats, "list-formats", false, "List available output formats")

	flag.Usage = printUsage
	flag.Parse()

	// A bare positional argument also names the input.
	if flags.file == "" && flag.NArg() > 0 {
		flags.file = flag.Arg(0)
	}
	return flags
}

// resolveConfiguration resolves final configuration values from the config
// file and command line flags. Flags that were explicitly set win.
func resolveConfiguration(cfg *config.Config, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	final.format = "text"
	if cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	final.aliasFile = cfg.Defaults.AliasFile
	if isFlagSet("alias-file") {
		final.aliasFile = flags.aliasFile
	}

	final.recursive = cfg.Defaults.Recursive || flags.recursive
	final.verbose = cfg.Defaults.Verbose || flags.verbose
	final.debug = cfg.Defaults.Debug || flags.debug
	final.noColor = cfg.Defaults.NoColor || flags.noColor
	final.includePackaging = cfg.Defaults.IncludePackaging || flags.includePackaging
	final.noSimplify = cfg.Defaults.NoSimplify || flags.noSimplify

	return final
}

// isFlagSet checks whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printFormats() {
	fmt.Println("Available output formats:")
	for _, name := range formatters.List() {
		f, _ := formatters.Get(name)
		fmt.Printf("  %-8s %s\n", name, f.Description())
	}
}

func printUsage() {
	bold := color.New(color.Bold)
	bold.Fprintln(os.Stderr, "copyright-scan - normalize licenses and copyrights from Debian copyright files")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  copyright-scan -file <path> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  copyright-scan -file /usr/share/doc/curl/copyright")
	fmt.Fprintln(os.Stderr, "  copyright-scan -file rootfs/ -recursive -format json")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
