package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/arnavshah/wichtel-api-go/pkg/wichtel"
)

// ErrInputFileRequired is returned when neither -i nor -input-file is given.
var ErrInputFileRequired = errors.New("input file required (use -i or -input-file)")

type Config struct {
	InputFile  string
	OutputFile string // empty means stdout
	Policy     wichtel.ExhaustionPolicy
	Attempts   int
	Verbose    bool
}

// ParseFlags parses the wichtel command line. Usage and errors go to out.
func ParseFlags(args []string, out io.Writer) (Config, error) {
	var cfg Config
	var policy string

	fs := flag.NewFlagSet("wichtel", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&cfg.InputFile, "i", "", "Input file with the persons to draw (shorthand)")
	fs.StringVar(&cfg.InputFile, "input-file", "", "Input file with the persons to draw (JSON or YAML)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Output file (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output-file", "", "Output file; the result is printed to stdout when empty")
	fs.StringVar(&policy, "policy", "skip", "What to do when a person has nobody left to draw: skip or abort")
	fs.IntVar(&cfg.Attempts, "attempts", 1, "Number of draws to try, keeping the one that covers most persons")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.InputFile == "" {
		return Config{}, ErrInputFileRequired
	}

	p, err := wichtel.ParsePolicy(policy)
	if err != nil {
		return Config{}, err
	}
	cfg.Policy = p

	if cfg.Attempts < 1 {
		return Config{}, fmt.Errorf("attempts must be at least 1, got %d", cfg.Attempts)
	}

	return cfg, nil
}
