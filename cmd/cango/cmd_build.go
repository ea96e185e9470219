package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/cango/internal/config"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/transpiler"
)

// printDiagnostics 按 文件:行:列 的格式把诊断打到标准错误
func printDiagnostics(fileName string, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: [%s] %s\n",
			fileName, d.Pos.Line, d.Pos.Column, d.Severity, d.Category, d.Message)
	}
}

// buildCmd 翻译 C 翻译单元到 Go
func buildCmd(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", i18n.T(i18n.MsgBuildOptOutput))
	verbose := fs.Bool("v", false, i18n.T(i18n.MsgBuildOptVerbose))

	fs.Usage = func() {
		fmt.Println(i18n.T(i18n.MsgBuildUsage))
		fmt.Println()
		fmt.Println(i18n.T(i18n.MsgBuildDescription))
		fmt.Println()
		fmt.Println("Arguments:")
		fmt.Println(i18n.T(i18n.MsgBuildArgInput))
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		printError(i18n.T(i18n.MsgNoInput))
		fs.Usage()
		os.Exit(1)
	}

	input := fs.Arg(0)
	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, ".c") + ".go"
	}

	if err := translateFile(input, out, *verbose); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// translateFile 读入、翻译、写出一个翻译单元。
// 出现错误诊断时不落盘，返回错误。
func translateFile(input, output string, verbose bool) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return errors.New(i18n.T(i18n.MsgReadError, input, err))
	}

	cfg, _, err := config.FindAndLoad(filepath.Dir(input))
	if err != nil {
		return err
	}

	tr := transpiler.New()
	tr.SetConfig(cfg)
	result := tr.Translate(string(src), filepath.Base(input))

	printDiagnostics(filepath.Base(input), result.Diagnostics)
	if result.Metrics.Errors > 0 {
		return errors.New(i18n.T(i18n.MsgErrorCount, result.Metrics.Errors))
	}

	if err := os.WriteFile(output, []byte(result.GoSource), 0644); err != nil {
		return errors.New(i18n.T(i18n.MsgWriteError, output, err))
	}

	printInfo(i18n.T(i18n.MsgTranslated, input, output))
	if verbose {
		printInfo(i18n.T(i18n.MsgMetricsSummary,
			result.Metrics.Functions, result.Metrics.Declarations, result.Metrics.Warnings))
	}
	return nil
}
