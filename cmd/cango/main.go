package main

import (
	"fmt"
	"os"

	"github.com/tangzhangming/cango/internal/i18n"
)

const version = "0.1.0"

// command 一个子命令：处理函数和用法行的消息键
type command struct {
	run      func(args []string)
	usageKey string
}

// commandOrder 用法输出里的子命令顺序
var commandOrder = []string{"build", "run", "version", "help"}

var commands map[string]command

func init() {
	commands = map[string]command{
		"build": {run: buildCmd, usageKey: i18n.MsgCmdBuild},
		"run":   {run: runCmd, usageKey: i18n.MsgCmdRun},
		"version": {
			run:      func([]string) { fmt.Println("cango version", version) },
			usageKey: i18n.MsgCmdVersion,
		},
		"help": {
			run:      func([]string) { printUsage() },
			usageKey: i18n.MsgCmdHelp,
		},
	}
}

func main() {
	i18n.Init()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		printError(i18n.T(i18n.MsgUnknownCommand, os.Args[1]))
		printUsage()
		os.Exit(1)
	}
	cmd.run(os.Args[2:])
}

func printUsage() {
	fmt.Println(i18n.T(i18n.MsgUsage))
	fmt.Println()
	fmt.Println(i18n.T(i18n.MsgCommands))
	for _, name := range commandOrder {
		fmt.Println(i18n.T(commands[name].usageKey))
	}
	fmt.Println()
	fmt.Println(i18n.T(i18n.MsgUseHelp))
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func printInfo(msg string) {
	fmt.Println(msg)
}
