// Package detector selects the log format and progress output from the environment.
package detector

import (
	"os"

	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// LogFormat is how the CLI presents logs.
type LogFormat int

const (
	// FormatAuto defers to DetectEnvironment.
	FormatAuto LogFormat = iota
	// FormatPretty prints colored logs for humans.
	FormatPretty
	// FormatJSON prints one JSON record per log line, progress included.
	FormatJSON
)

// String returns the flag value of f.
func (f LogFormat) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// OutputMode represents how task progress is rendered with pretty logs.
type OutputMode int

const (
	// ModeAuto defers to DetectOutputMode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive terminal UI.
	ModeTUI
	// ModeLinear forces prefixed line output.
	ModeLinear
)

// String returns the flag value of m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns FormatPretty when stderr is a terminal outside CI, FormatJSON otherwise.
func DetectEnvironment() LogFormat {
	return detect(term.IsTerminal(int(os.Stderr.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) LogFormat {
	if isTTY && !isCI(ci) {
		return FormatPretty
	}
	return FormatJSON
}

// DetectOutputMode returns ModeTUI when both stdin and stderr are terminals
// outside CI, ModeLinear otherwise.
func DetectOutputMode() OutputMode {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
	return detectMode(interactive, os.Getenv("CI"))
}

func detectMode(interactive bool, ci string) OutputMode {
	if interactive && !isCI(ci) {
		return ModeTUI
	}
	return ModeLinear
}

func isCI(ci string) bool {
	return ci == "true" || ci == "1"
}

// ResolveFormat applies the --log-format flag to the detected format.
func ResolveFormat(detected LogFormat, flag string) (LogFormat, error) {
	switch flag {
	case "auto", "":
		return detected, nil
	case "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return detected, zerr.With(zerr.Wrap(domain.ErrInvalidLogFormat, "unsupported log format"), "log_format", flag)
	}
}

// ResolveMode applies the --output-mode flag to the detected mode.
func ResolveMode(detected OutputMode, flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return detected, nil
	case "tui":
		return ModeTUI, nil
	case "linear":
		return ModeLinear, nil
	default:
		return detected, zerr.With(zerr.Wrap(domain.ErrInvalidOutputMode, "unsupported output mode"), "output_mode", flag)
	}
}
