// Package output builds termenv outputs with the CLI's color profile rules.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile detects the terminal's color support. NO_COLOR forces Ascii.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns basic ANSI colors for logs that are not attached
// to a terminal, such as CI. NO_COLOR forces Ascii.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// New creates a termenv.Output for w using the detected profile.
// A nil writer means os.Stderr.
func New(w io.Writer) *termenv.Output {
	return NewWithProfile(w, ColorProfile)
}

// NewANSI creates a termenv.Output for w using ColorProfileANSI.
func NewANSI(w io.Writer) *termenv.Output {
	return NewWithProfile(w, ColorProfileANSI)
}

// NewWithProfile creates a termenv.Output for w with the profile chosen by profileFn.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	return termenv.NewOutput(w,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)
}
