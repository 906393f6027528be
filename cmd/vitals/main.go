// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/pelletier/go-toml/v2"
	"github.com/shayne/vitals/internal/config"
	"github.com/shayne/yargs"
)

func main() {
	if err := runCLI(); err != nil {
		reportCLIError(err)
		os.Exit(1)
	}
}

type usageError struct {
	message string
}

func (e usageError) Error() string {
	return e.message
}

type silentError struct {
	err error
}

func (e silentError) Error() string {
	return e.err.Error()
}

func (e silentError) Unwrap() error {
	return e.err
}

func reportCLIError(err error) {
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.message)
		return
	}
	var quietErr silentError
	if errors.As(err, &quietErr) {
		return
	}
	fmt.Fprintf(os.Stderr, "vitals: %v\n", err)
}

func newUsageError(message string) error {
	return usageError{message: message}
}

func newSilentError(err error) error {
	if err == nil {
		return nil
	}
	return silentError{err: err}
}

var (
	version = "dev"
	commit  = ""
)

func runCLI() error {
	args := normalizeArgs(os.Args[1:])
	if file, ok := sessionRequest(args); ok {
		if !sessionAvailable() {
			if file == "" {
				return newUsageError("interactive session needs a terminal; run `vitals --help` for commands")
			}
			return newUsageError(fmt.Sprintf("interactive session needs a terminal; try `vitals info %s`", file))
		}
		return runSession(file)
	}
	handlers := map[string]yargs.SubcommandHandler{
		"info":     handleInfoCommand,
		"describe": handleDescribeCommand,
		"missing":  handleMissingCommand,
		"corr":     handleCorrCommand,
		"test":     handleTestCommand,
		"regress":  handleRegressCommand,
		"plot":     handlePlotCommand,
		"pca":      handlePCACommand,
		"kmeans":   handleKMeansCommand,
		"hclust":   handleHClustCommand,
		"export":   handleExportCommand,
		"config":   handleConfigCommand,
		"version":  handleVersionCommand,
	}
	if err := yargs.RunSubcommands(context.Background(), args, helpConfig, struct{}{}, handlers); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return nil
		}
		return err
	}
	return nil
}

// sessionRequest reports whether args ask for the interactive session:
// nothing at all, or a single CSV path with no subcommand.
func sessionRequest(args []string) (file string, ok bool) {
	if len(args) == 0 {
		return "", true
	}
	if len(args) != 1 {
		return "", false
	}
	arg := args[0]
	if strings.HasPrefix(arg, "-") || isKnownCommand(arg) {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(arg), ".csv") {
		return "", false
	}
	return arg, true
}

func sessionAvailable() bool {
	if os.Getenv("VITALS_NO_SESSION") != "" {
		return false
	}
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return stdinTTY && stdoutTTY
}

var helpConfig = yargs.HelpConfig{
	Command: yargs.CommandInfo{
		Name:        "vitals",
		Description: "Statistics, hypothesis tests, and charts for health-data CSV files",
		Examples: []string{
			"vitals data.csv",
			"vitals info data.csv",
			"vitals describe data.csv --column 身高",
			"vitals describe data.csv --all",
			"vitals corr data.csv --heatmap",
			"vitals test t data.csv --value 血压 --group 性别",
			"vitals test normality data.csv --column 年龄",
			"vitals regress data.csv --x 身高 --y 体重 --plot",
			"vitals plot hist data.csv --column 年龄 --bins 15",
			"vitals pca data.csv --plot 2d",
			"vitals kmeans data.csv --k 3 --elbow",
			"vitals export data.csv --out stats.xlsx",
			"vitals config set language en",
			"vitals --version",
		},
	},
	SubCommands: map[string]yargs.SubCommandInfo{
		"info": {
			Name:        "info",
			Description: "Show the load summary: rows, columns, and column kinds",
			Usage:       "<file>",
		},
		"describe": {
			Name:        "describe",
			Description: "Descriptive statistics for one continuous column or all of them",
			Usage:       "<file> [--column <name> | --all]",
		},
		"missing": {
			Name:        "missing",
			Description: "Per-column missing value counts and complete row total",
			Usage:       "<file>",
		},
		"corr": {
			Name:        "corr",
			Description: "Pearson correlation matrix over continuous columns",
			Usage:       "<file> [--columns a,b,...] [--heatmap] [--open]",
		},
		"test": {
			Name:        "test",
			Description: "Hypothesis tests",
			Usage:       "normality|t|paired|anova|chi2|mannwhitney|kruskal <file> [flags]",
			Examples: []string{
				"vitals test normality data.csv --column 体重",
				"vitals test t data.csv --value 血压 --group 性别",
				"vitals test paired data.csv --first 治疗前 --second 治疗后",
				"vitals test anova data.csv --value 收缩压 --group 组别",
				"vitals test chi2 data.csv --rows 性别 --cols 吸烟",
				"vitals test mannwhitney data.csv --value 血糖 --group 性别",
				"vitals test kruskal data.csv --value 血糖 --group 组别",
			},
		},
		"regress": {
			Name:        "regress",
			Description: "Simple linear regression of y on x",
			Usage:       "<file> --x <col> --y <col> [--plot] [--open]",
		},
		"plot": {
			Name:        "plot",
			Description: "Write a chart file",
			Usage:       "<kind> <file> [flags]",
			Examples: []string{
				"vitals plot hist data.csv --column 年龄",
				"vitals plot scatter data.csv --x 身高 --y 体重",
				"vitals plot box data.csv --column 血压 --group 性别",
				"vitals plot heatmap data.csv",
				"vitals plot radar data.csv --columns 身高,体重 --group 性别",
				"vitals plot scatter3d data.csv --x 身高 --y 体重 --z 年龄",
			},
		},
		"pca": {
			Name:        "pca",
			Description: "Principal component analysis over continuous columns",
			Usage:       "<file> [--columns a,b,...] [--components <n>] [--plot 2d|3d] [--open]",
		},
		"kmeans": {
			Name:        "kmeans",
			Description: "K-Means clustering over standardized continuous columns",
			Usage:       "<file> [--columns a,b,...] [--k <n>] [--elbow] [--plot] [--open]",
		},
		"hclust": {
			Name:        "hclust",
			Description: "Ward hierarchical clustering with an optional dendrogram",
			Usage:       "<file> [--columns a,b,...] [--plot] [--open]",
		},
		"export": {
			Name:        "export",
			Description: "Export descriptive statistics to an Excel workbook",
			Usage:       "<file> [--out <path>]",
		},
		"config": {
			Name:        "config",
			Description: "Show or update the local configuration",
			Usage:       "[get <key> | set <key> <value> | path]",
		},
		"version": {
			Name:        "version",
			Description: "Show CLI version",
		},
	},
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	if args[0] == "--version" {
		return append([]string{"version"}, args[1:]...)
	}
	if args[0] == "help" {
		return rewriteHelpArgs(args[1:])
	}
	return args
}

func rewriteHelpArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"--help"}
	}
	helpFlag := "--help"
	for _, arg := range args {
		if arg == "--help-llm" {
			helpFlag = "--help-llm"
			break
		}
	}
	if isHelpFlag(args[0]) || args[0] == "--help-llm" {
		return []string{helpFlag}
	}
	if isKnownCommand(args[0]) {
		return []string{args[0], helpFlag}
	}
	return []string{helpFlag}
}

func isKnownCommand(value string) bool {
	switch value {
	case "info", "describe", "missing", "corr", "test", "regress", "plot",
		"pca", "kmeans", "hclust", "export", "config", "version":
		return true
	default:
		return false
	}
}

func isHelpFlag(value string) bool {
	switch strings.TrimSpace(value) {
	case "-h", "--help", "--help-llm":
		return true
	default:
		return false
	}
}

func handleVersionCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, versionString())
	return nil
}

func versionString() string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		trimmed = "dev"
	}
	if strings.TrimSpace(commit) == "" {
		return trimmed
	}
	return fmt.Sprintf("%s (%s)", trimmed, strings.TrimSpace(commit))
}

type configArgs struct {
	Action string `pos:"0?" help:"get|set|path"`
	Key    string `pos:"1?" help:"config key"`
	Value  string `pos:"2?" help:"value for set"`
}

func handleConfigCommand(_ context.Context, args []string) error {
	return handleConfig(args)
}

func handleConfig(args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, struct{}, configArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, path, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	parsed := result.Args
	switch strings.TrimSpace(parsed.Action) {
	case "":
		return showConfig(cfg, path)
	case "path":
		fmt.Fprintln(os.Stdout, path)
		return nil
	case "get":
		key := strings.TrimSpace(parsed.Key)
		if key == "" {
			return newUsageError(fmt.Sprintf("usage: vitals config get <%s>", strings.Join(config.Keys(), "|")))
		}
		value, err := config.Get(cfg, key)
		if err != nil {
			return newUsageError(err.Error())
		}
		fmt.Fprintln(os.Stdout, value)
		return nil
	case "set":
		key := strings.TrimSpace(parsed.Key)
		if key == "" || strings.TrimSpace(parsed.Value) == "" {
			return newUsageError("usage: vitals config set <key> <value>")
		}
		if err := config.Set(&cfg, key, parsed.Value); err != nil {
			return newUsageError(err.Error())
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "wrote config to %s\n", path)
		return nil
	default:
		return newUsageError(fmt.Sprintf("unknown config action %q (expected get, set, or path)", parsed.Action))
	}
}

func showConfig(cfg config.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Config path: %s\n%s\n", path, string(data))
	return nil
}
