package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/wts"
	"github.com/etnz/wts/census"
	"github.com/etnz/wts/date"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// writeExtract writes a census extract of consecutive months starting in January 2019.
func writeExtract(t *testing.T, path string, values ...int) {
	t.Helper()
	var b strings.Builder
	for i := 0; i < census.PreambleLines; i++ {
		fmt.Fprintf(&b, "preamble line %d\n", i+1)
	}
	b.WriteString("Month,Year,42\n")
	for i, v := range values {
		on := date.New(2019, time.January).AddMonths(i)
		fmt.Fprintf(&b, "%s,%d,\"%d\"\n", on.Month(), on.Year(), v)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

// setupWorkspace creates a raw directory with both extracts and a config file pointing to it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw")
	if err := os.Mkdir(raw, 0o755); err != nil {
		t.Fatal(err)
	}
	sales := make([]int, 24)
	inventories := make([]int, 24)
	for i := range sales {
		sales[i] = 100 + i
		inventories[i] = 250
	}
	writeExtract(t, filepath.Join(raw, "Sales_Adjusted.csv"), sales...)
	writeExtract(t, filepath.Join(raw, "Inventories_Adjusted.csv"), inventories...)

	content := fmt.Sprintf("raw_dir: %q\nprocessed_dir: %q\ncharts_dir: %q\n",
		raw, filepath.Join(dir, "processed"), filepath.Join(dir, "charts"))
	path := filepath.Join(dir, "wts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	previous := *configFile
	*configFile = path
	t.Cleanup(func() { *configFile = previous })
	return dir
}

// execute runs a subcommand with args like the commander would.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %q: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestProcessCommand(t *testing.T) {
	dir := setupWorkspace(t)
	metrics := filepath.Join(dir, "wts.prom")

	if got := execute(t, &processCmd{}, "-metrics-file", metrics); got != subcommands.ExitSuccess {
		t.Fatalf("process exit status = %v, want success", got)
	}

	output := filepath.Join(dir, "processed", "merged_wts_data_nominal.csv")
	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("merged dataset not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 25 {
		t.Errorf("merged dataset has %d lines, want 25", len(lines))
	}
	if got, want := lines[0], strings.Join(wts.DefaultColumns().Header(), ","); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	for _, path := range []string{filepath.Join(dir, "charts", "charts.xlsx"), metrics} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to be written: %v", path, err)
		}
	}
}

func TestProcessCommandNoCharts(t *testing.T) {
	dir := setupWorkspace(t)
	if got := execute(t, &processCmd{}, "-no-charts"); got != subcommands.ExitSuccess {
		t.Fatalf("process exit status = %v, want success", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "charts", "charts.xlsx")); !os.IsNotExist(err) {
		t.Errorf("charts drawn despite -no-charts (stat error %v)", err)
	}
}

func TestProcessCommandFailure(t *testing.T) {
	dir := setupWorkspace(t)
	if err := os.Remove(filepath.Join(dir, "raw", "Inventories_Adjusted.csv")); err != nil {
		t.Fatal(err)
	}
	if got := execute(t, &processCmd{}); got != subcommands.ExitFailure {
		t.Errorf("process exit status = %v, want failure", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "processed", "merged_wts_data_nominal.csv")); !os.IsNotExist(err) {
		t.Errorf("merged dataset written by a failed run (stat error %v)", err)
	}
	if got := execute(t, &processCmd{}, "extra"); got != subcommands.ExitUsageError {
		t.Errorf("process with arguments exit status = %v, want usage error", got)
	}
}

func TestSummaryAndChartsCommands(t *testing.T) {
	dir := setupWorkspace(t)
	if got := execute(t, &processCmd{}, "-no-charts"); got != subcommands.ExitSuccess {
		t.Fatalf("process exit status = %v, want success", got)
	}
	if got := execute(t, &summaryCmd{}); got != subcommands.ExitSuccess {
		t.Errorf("summary exit status = %v, want success", got)
	}

	out := filepath.Join(dir, "other.xlsx")
	if got := execute(t, &chartsCmd{}, "-o", out); got != subcommands.ExitSuccess {
		t.Errorf("charts exit status = %v, want success", got)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("charts not written: %v", err)
	}

	if got := execute(t, &summaryCmd{}, "-i", filepath.Join(dir, "missing.csv")); got != subcommands.ExitFailure {
		t.Errorf("summary of a missing file exit status = %v, want failure", got)
	}
}

func TestTopicCommand(t *testing.T) {
	if got := execute(t, &topicCmd{}, "columns"); got != subcommands.ExitSuccess {
		t.Errorf("topic columns exit status = %v, want success", got)
	}
	if got := execute(t, &topicCmd{}, "unknown"); got != subcommands.ExitFailure {
		t.Errorf("topic unknown exit status = %v, want failure", got)
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"process", "charts", "summary", "topic", "help"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false, want true", name)
		}
	}
	if Known("hello") {
		t.Error("Known(\"hello\") = true, want false")
	}
}

// unsetEnv removes key from the environment for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestConfigFileFromDotEnv(t *testing.T) {
	dir := setupWorkspace(t)
	yaml := *configFile
	*configFile = "" // no -config flag
	unsetEnv(t, EnvConfigFile)

	dotenv := filepath.Join(dir, ".env")
	if err := os.WriteFile(dotenv, []byte(EnvConfigFile+"="+yaml+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// main loads the .env file after the flags are declared.
	if err := godotenv.Load(dotenv); err != nil {
		t.Fatalf("godotenv.Load() failed: %v", err)
	}

	if got := configPath(); got != yaml {
		t.Errorf("configPath() = %q, want %q from .env", got, yaml)
	}
	cfg, status := loadConfig()
	if cfg == nil {
		t.Fatalf("loadConfig() exit status = %v", status)
	}
	if want := filepath.Join(dir, "raw"); cfg.RawDir != want {
		t.Errorf("RawDir = %q, want %q from the .env config file", cfg.RawDir, want)
	}
}

func TestConfigFlagOverridesEnv(t *testing.T) {
	setupWorkspace(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	if got := configPath(); got != *configFile {
		t.Errorf("configPath() = %q, want the -config flag %q", got, *configFile)
	}
	if cfg, status := loadConfig(); cfg == nil {
		t.Errorf("loadConfig() exit status = %v, the flag must win over %s", status, EnvConfigFile)
	}
}
