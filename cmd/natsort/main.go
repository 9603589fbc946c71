package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lanrat/natsort/internal/cmd"
	"github.com/lanrat/natsort/internal/configpaths"
	"github.com/lanrat/natsort/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Everything it opens
// is closed before it returns.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	userCfg := findUserConfig(args)
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	parser, err := kong.New(&cli,
		kong.Name("natsort"),
		kong.Description("Natural sort keys and natural order sorting of lines"),
		kong.Writers(stdout, stderr),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	if err != nil {
		fmt.Fprintf(stderr, "natsort: %v\n", err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(false)
		}
		return 2
	}

	// stdout carries the results, logs go to stderr
	logger, closeLog, err := log.SetupLogger(cli.Log.Level, cli.Log.File, stderr)
	if err != nil {
		parser.Errorf("failed to setup logger: %s", err)
		return 2
	}
	defer func() { _ = closeLog() }()

	kctx.Bind(logger)
	kctx.Bind(&cmd.Streams{In: stdin, Out: stdout})

	if err := kctx.Run(); err != nil {
		logger.Error("command failed", "cmd", kctx.Command(), "error", err)
		return 1
	}
	return 0
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("NATSORT_CONFIG"); v != "" {
		return v
	}
	return ""
}
