package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tangzhangming/cango/internal/i18n"
)

// runCmd 翻译一个 C 文件并直接运行生成的 Go 程序
func runCmd(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, i18n.T(i18n.MsgBuildOptVerbose))

	fs.Usage = func() {
		fmt.Println(i18n.T(i18n.MsgRunUsage))
		fmt.Println()
		fmt.Println(i18n.T(i18n.MsgRunDescription))
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

	outDir, err := os.MkdirTemp("", "cango-run-")
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
	defer os.RemoveAll(outDir)

	goFile := filepath.Join(outDir, "main.go")
	if err := translateFile(input, goFile, *verbose); err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	cmd := exec.Command("go", "run", "main.go")
	cmd.Dir = outDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			printError(i18n.T(i18n.MsgGoRunFailed, err))
		}
		os.Exit(1)
	}
}
