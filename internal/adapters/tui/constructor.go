// Package tui provides an interactive terminal view of running jobs with a
// scrollable pane of each job's tool output.
package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/comfortmap/internal/ui/output"
)

// NewModel creates a model that renders to w. A nil writer means os.Stderr.
func NewModel(w io.Writer) Model {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Tasks:      make([]*TaskNode, 0),
		TaskMap:    make(map[string]*TaskNode),
		SpanMap:    make(map[string]*TaskNode),
		FollowMode: true,
	}
}
