package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tydukes/coding-style-guide-sub009/internal/input"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
	}
}

// Exit codes returned by Run.
const (
	ExitClean    = 0 // no error findings
	ExitFindings = 1 // the report contains errors
	ExitError    = 2 // the report could not be produced
)

// Config holds all configuration for rendering a lint report.
type Config struct {
	// Path is the lint results document; "-" or empty reads stdin.
	Path          string
	Format        string
	Quiet         bool
	Color         ColorMode
	OutputFile    string
	Watch         bool
	Verbose       bool
	MmapThreshold int64
	// Dir is the directory file paths are shown relative to.
	Dir string
}

var (
	errWatchStdin    = errors.New("--watch needs a results file, not stdin")
	errOutputIsInput = errors.New("--output must not be the results file")
)

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Watch && (c.Path == "" || c.Path == input.StdinPath) {
		return errWatchStdin
	}
	if c.OutputFile != "" && c.Path != "" && c.Path != input.StdinPath && samePath(c.Path, c.OutputFile) {
		return errOutputIsInput
	}
	if c.MmapThreshold < 0 {
		return fmt.Errorf("invalid mmap threshold: %d", c.MmapThreshold)
	}
	if c.Color < ColorAuto || c.Color > ColorNever {
		return fmt.Errorf("invalid color mode: %d", c.Color)
	}
	return nil
}

// samePath reports whether a and b name the same file, following links when
// both exist.
func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
