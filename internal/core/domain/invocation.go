package domain

import (
	"strconv"
	"strings"
)

// Token is one rendered argv element.
type Token struct {
	Text string
	// Quoted marks flag operands taken from bound string values.
	Quoted bool
}

// Invocation is a fully rendered command, ready to execute.
type Invocation struct {
	Task    string
	Program string
	Tokens  []Token
	WorkDir string
	// Terminal selects how the executor attaches the process. Empty means pipe.
	Terminal Terminal
}

// Args returns the argument list without the program name.
func (i *Invocation) Args() []string {
	args := make([]string, len(i.Tokens))
	for n, t := range i.Tokens {
		args[n] = t.Text
	}
	return args
}

// Argv returns the program name followed by its arguments.
func (i *Invocation) Argv() []string {
	return append([]string{i.Program}, i.Args()...)
}

// Line returns a human-readable command line. Quoted tokens
// are wrapped in double quotes, e.g. --aperture-id "Room_1_Glz".
func (i *Invocation) Line() string {
	var sb strings.Builder
	sb.WriteString(i.Program)
	for _, t := range i.Tokens {
		sb.WriteByte(' ')
		if t.Quoted {
			sb.WriteString(strconv.Quote(t.Text))
			continue
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}
