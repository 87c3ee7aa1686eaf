package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/etnz/baskets"
)

// extensionPrefix is prepended to an unknown subcommand to find the binary
// implementing it in the PATH.
const extensionPrefix = "bsk-"

// RunExtension runs the bsk-<sub> binary found in the PATH with args, if any.
//
// It returns false when there is no such binary. Otherwise it returns true and
// the exit code of the extension, which receives the resolved settings in the
// BSK_* environment variables.
func RunExtension(ctx context.Context, sub string, args []string) (bool, int) {
	name := extensionPrefix + sub
	path, err := exec.LookPath(name)
	if err != nil {
		log.Printf("no extension %q in PATH: %v", name, err)
		return false, 0
	}

	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 2
	}

	ext := exec.CommandContext(ctx, path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = append(os.Environ(), extensionEnv(cfg)...)

	var exit *exec.ExitError
	switch err := ext.Run(); {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running extension %q: %v\n", name, err)
		return true, 1
	}
}

// extensionEnv lists the settings of cfg as environment variables.
func extensionEnv(cfg baskets.Config) []string {
	return []string{
		EnvContentFile + "=" + setting(*contentFile, EnvContentFile),
		EnvCurrency + "=" + cfg.Currency,
		EnvDefaultAmount + "=" + cfg.DefaultAmount.String(),
		EnvSubscriptionCode + "=" + cfg.SubscriptionCode,
	}
}
