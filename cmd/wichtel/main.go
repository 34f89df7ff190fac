package main

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/arnavshah/wichtel-api-go/pkg/cliparse"
	"github.com/arnavshah/wichtel-api-go/pkg/persons"
	"github.com/arnavshah/wichtel-api-go/pkg/wichtel"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run draws wichtels for the input file and returns the process exit code.
// Logs go to stderr so stdout only carries the result.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := cliparse.ParseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		slog.New(slog.NewTextHandler(stderr, nil)).Error("Error parsing flags", "error", err)
		return 1
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	names, err := persons.Read(cfg.InputFile)
	if err != nil {
		logger.Error("could not read persons", "file", cfg.InputFile, "error", err)
		return 1
	}
	logger.Debug("persons loaded", "file", cfg.InputFile, "count", len(names))

	if dups := wichtel.Duplicates(names); len(dups) > 0 {
		logger.Warn("duplicate names share one entry in the result", "names", dups)
	}

	d := wichtel.NewDrawer(names, wichtel.NewRandomSource())
	d.Policy = cfg.Policy

	assignment, err := d.DrawBest(cfg.Attempts)
	if err != nil {
		logger.Error("unable to calculate wichtels", "policy", cfg.Policy.String(), "error", err)
		return 1
	}

	for _, s := range d.Skipped() {
		logger.Warn("person left without a recipient", "person", s.Person, "reason", s.Reason)
	}
	logger.Debug("draw finished", "assigned", len(assignment), "coverage", d.CoverageScore())

	if cfg.OutputFile == "" {
		err = persons.Print(stdout, assignment)
	} else {
		err = persons.Write(cfg.OutputFile, assignment)
	}
	if err != nil {
		logger.Error("could not write result", "error", err)
		return 1
	}

	return 0
}
