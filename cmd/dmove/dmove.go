package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"golang.org/x/term"

	"github.com/dmove/dmove/internal/config"
	"github.com/dmove/dmove/internal/configpaths"
	"github.com/dmove/dmove/internal/log"
)

func main() {
	handlePlainHelpFlag()

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("dmove"),
		kong.Description(Description()),
		kong.UsageOnError(),
		kong.Help(help),
		// Flags and env override config files; earlier files win.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func handlePlainHelpFlag() {
	for i, arg := range os.Args[1:] {
		if arg == "-p" {
			os.Setenv("DMOVE_HELP_STYLE", "plain")
			os.Args[i+1] = "-h"
			return
		}
	}
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("DMOVE_CONFIG")
}

// help prints kong's help, compact on narrow terminals. DMOVE_HELP_STYLE
// forces "plain" or "full".
func help(options kong.HelpOptions, ctx *kong.Context) error {
	style := strings.ToLower(os.Getenv("DMOVE_HELP_STYLE"))
	if style == "" {
		style = detectHelpStyle()
	}
	if style == "plain" {
		options.Compact = true
		options.NoExpandSubcommands = true
	}
	return kong.DefaultHelpPrinter(options, ctx)
}

func detectHelpStyle() string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) || os.Getenv("TERM") == "dumb" {
		return "plain"
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 100 {
		return "plain"
	}
	return "full"
}
