package cmd

import (
	"slices"

	"github.com/google/subcommands"
)

// groups lists the subcommands, by group.
var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"session", []subcommands.Command{&runCmd{}}},
	{"catalog", []subcommands.Command{&basketsCmd{}, &basketCmd{}, &stockCmd{}, &composeCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// IsCommand reports whether name is a subcommand registered by Register.
func IsCommand(name string) bool {
	for _, g := range groups {
		if slices.ContainsFunc(g.commands, func(c subcommands.Command) bool { return c.Name() == name }) {
			return true
		}
	}
	return false
}
