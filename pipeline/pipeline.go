// Package pipeline runs the wholesale trade indicators computation end to end.
//
// A run loads the sales and inventories extracts, aligns them on month,
// computes the metrics and writes the merged dataset. It either completes or
// leaves the output untouched.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/wts"
	"github.com/etnz/wts/census"
	"github.com/etnz/wts/date"
)

// Config holds everything a run needs. Paths are used as given.
type Config struct {
	Sales       census.Source
	Inventories census.Source
	Output      string // Path of the merged dataset.
}

// Columns returns the column names of the merged dataset.
func (c Config) Columns() wts.Columns {
	return wts.Columns{Sales: c.Sales.Name, Inventories: c.Inventories.Name}
}

func (c Config) validate() error {
	var errs error
	for _, s := range []struct {
		role string
		src  census.Source
	}{{"sales", c.Sales}, {"inventories", c.Inventories}} {
		if s.src.Path == "" {
			errs = errors.Join(errs, fmt.Errorf("missing %s extract path", s.role))
		}
		if s.src.Name == "" {
			errs = errors.Join(errs, fmt.Errorf("missing %s series name", s.role))
		}
	}
	if c.Sales.Name != "" && c.Sales.Name == c.Inventories.Name {
		errs = errors.Join(errs, fmt.Errorf("sales and inventories series are both named %q", c.Sales.Name))
	}
	if c.Output == "" {
		errs = errors.Join(errs, fmt.Errorf("missing output path"))
	}
	return errs
}

// Result describes a successful run.
type Result struct {
	Columns     wts.Columns
	Sales       census.Stats
	Inventories census.Stats
	Aligned     int
	Metrics     []wts.Metric
	Output      string
	Finished    time.Time
}

// Run loads both extracts, aligns them, computes the metrics and writes the merged dataset.
//
// Any error aborts the run before the output is written.
func Run(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	res := &Result{Columns: cfg.Columns(), Output: cfg.Output}

	sales, stats, err := load(cfg.Sales)
	if err != nil {
		return nil, err
	}
	res.Sales = stats

	inventories, stats, err := load(cfg.Inventories)
	if err != nil {
		return nil, err
	}
	res.Inventories = stats

	aligned, err := wts.Align(sales, inventories)
	if err != nil {
		return nil, err
	}
	res.Aligned = len(aligned)
	log.Printf("Aligned %d months, %v", len(aligned), date.Range{From: aligned[0].On, To: aligned[len(aligned)-1].On})

	if res.Metrics, err = wts.ComputeMetrics(aligned); err != nil {
		return nil, err
	}

	if err := writeAtomic(cfg.Output, res.Columns, res.Metrics); err != nil {
		return nil, err
	}
	res.Finished = time.Now()
	log.Printf("Saved %d records to %s", len(res.Metrics), cfg.Output)
	return res, nil
}

// load reads one extract and rejects a series without any valid month.
func load(src census.Source) (*wts.Series, census.Stats, error) {
	series, stats, err := census.LoadFile(src)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load %s: %w", src.Name, err)
	}
	log.Printf("Loaded %s from %s: %v", src.Name, filepath.Base(src.Path), stats)
	if series.Len() == 0 {
		return nil, stats, &wts.EmptyResultError{
			Stage:  "loading " + src.Name,
			Detail: fmt.Sprintf("%s has no valid month (%v)", src.Path, stats),
		}
	}
	return series, stats, nil
}

// writeAtomic writes the merged dataset to a temporary file next to path and
// renames it into place, so that readers never see a partial dataset.
func writeAtomic(path string, cols wts.Columns, metrics []wts.Metric) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := wts.EncodeMetrics(f, cols, metrics); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to move merged dataset into %s: %w", path, err)
	}
	return nil
}
