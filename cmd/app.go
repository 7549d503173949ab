// Package cmd implements the wts command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wts/config"
	"github.com/google/subcommands"
)

// Commands lists the subcommands, a main package registers them.
var Commands = []subcommands.Command{
	&processCmd{},
	&chartsCmd{},
	&summaryCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file, defaults to $"+EnvConfigFile+", see 'wts topic config'.")

// Verbose enables the log output.
var Verbose = flag.Bool("v", false, "Log the pipeline progress to stderr.")

// Setup applies the global flags, it must be called after flag.Parse.
func Setup() {
	log.SetFlags(0)
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// Known reports whether name is a subcommand of the application.
func Known(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// configPath returns the -config flag, or $WTS_CONFIG_FILE when the flag is not set.
// The environment is read on use, after main has loaded the .env file.
func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	return os.Getenv(EnvConfigFile)
}

// loadConfig loads the configuration selected by the global flags.
func loadConfig() (*config.Config, subcommands.ExitStatus) {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	return cfg, subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
