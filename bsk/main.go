// Command bsk is the terminal front end of the basket dashboard engine.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/etnz/baskets/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file in the working directory provides defaults for BSK_* variables.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("cannot load .env: %v", err)
	}

	// Answers shell completion requests and exits, if any.
	cmd.Completion().Complete("bsk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx := context.Background()

	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(sub) && !isBuiltin(sub) {
		if found, code := cmd.RunExtension(ctx, sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(ctx)))
}

func isBuiltin(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}
