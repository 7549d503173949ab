package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment of an extension, it mirrors the global flags.
const (
	EnvConfigFile = "WTS_CONFIG_FILE"
	EnvVerbose    = "WTS_VERBOSE"
)

// ExtensionPrefix prefixes the binaries found in PATH that extend wts.
const ExtensionPrefix = "wts-"

// extensionEnv returns the environment of an extension: the current one, where
// the WTS_* settings already are, plus the resolved global flags.
func extensionEnv() []string {
	return append(os.Environ(),
		EnvConfigFile+"="+configPath(),
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)
}

// RunExtension runs wts-<subcommand> with args when such a binary is in PATH.
//
// found is false when there is no such binary, otherwise code is the exit code
// of the extension, 1 if it could not be started.
func RunExtension(subcommand string, args []string) (found bool, code int) {
	bin, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		log.Printf("No extension for %q: %v", subcommand, err)
		return false, 0
	}

	ext := exec.Command(bin, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = extensionEnv()

	err = ext.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error running extension %s: %v\n", bin, err)
		return true, 1
	}
}
