package ports

import "context"

// TerminalSize is the number of rows and columns available to task output.
type TerminalSize struct {
	Rows int
	Cols int
}

// TerminalSizer reports the size of the pane that shows pseudo-terminal output.
//
//go:generate mockgen -source=terminal.go -destination=mocks/mock_terminal.go -package=mocks
type TerminalSizer interface {
	// TerminalSize returns the current size. ok is false until the pane has been laid out.
	TerminalSize() (size TerminalSize, ok bool)

	// SubscribeResize returns a channel that receives every later size and a
	// function that ends the subscription.
	SubscribeResize() (<-chan TerminalSize, func())
}

type terminalSizerKey struct{}

// WithTerminalSizer returns a copy of ctx carrying s.
func WithTerminalSizer(ctx context.Context, s TerminalSizer) context.Context {
	return context.WithValue(ctx, terminalSizerKey{}, s)
}

// TerminalSizerFrom returns the sizer carried by ctx, if any.
func TerminalSizerFrom(ctx context.Context) (TerminalSizer, bool) {
	s, ok := ctx.Value(terminalSizerKey{}).(TerminalSizer)
	return s, ok
}
