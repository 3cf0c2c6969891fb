package domain

import "strings"

// Source says where the operand of a command argument comes from.
type Source int

const (
	// SourceLiteral is fixed text.
	SourceLiteral Source = iota
	// SourcePath is the declared path of a file or folder input.
	SourcePath
	// SourceValue is the bound value of a string input.
	SourceValue
	// SourceSwitch is a flag named after the bound value of an enum input.
	SourceSwitch
)

// Arg is one element of a descriptor's typed argument list.
// An Arg with a Flag renders as two tokens: the flag and its operand.
type Arg struct {
	Flag   string
	Source Source
	// Text is the literal text for SourceLiteral and the input name otherwise.
	Text string
}

// Lit is a literal positional token.
func Lit(text string) Arg {
	return Arg{Source: SourceLiteral, Text: text}
}

// Path is the declared path of a file or folder input as a positional token.
func Path(input string) Arg {
	return Arg{Source: SourcePath, Text: input}
}

// Value is the bound value of a string input as a positional token.
func Value(input string) Arg {
	return Arg{Source: SourceValue, Text: input}
}

// Flag is a flag followed by a literal operand.
func Flag(flag, literal string) Arg {
	return Arg{Flag: flag, Source: SourceLiteral, Text: literal}
}

// FlagPath is a flag followed by the declared path of a file or folder input.
func FlagPath(flag, input string) Arg {
	return Arg{Flag: flag, Source: SourcePath, Text: input}
}

// FlagValue is a flag followed by the bound value of a string input.
func FlagValue(flag, input string) Arg {
	return Arg{Flag: flag, Source: SourceValue, Text: input}
}

// Switch renders as --<value> where value is the bound value of an enum input.
func Switch(input string) Arg {
	return Arg{Source: SourceSwitch, Text: input}
}

// Input returns the name of the input the argument references, if any.
func (a Arg) Input() (string, bool) {
	if a.Source == SourceLiteral {
		return "", false
	}
	return a.Text, true
}

// String returns the template form of the argument, e.g. --air-speed "{{air_speed}}".
func (a Arg) String() string {
	var operand string
	switch a.Source {
	case SourcePath:
		operand = "{{" + a.Text + ".path}}"
	case SourceValue:
		operand = "{{" + a.Text + "}}"
		if a.Flag != "" {
			operand = `"` + operand + `"`
		}
	case SourceSwitch:
		operand = "--{{" + a.Text + "}}"
	default:
		operand = a.Text
	}
	if a.Flag == "" {
		return operand
	}
	return strings.Join([]string{a.Flag, operand}, " ")
}

// MarshalText renders the template form for YAML and JSON output.
func (a Arg) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
