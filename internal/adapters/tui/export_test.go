package tui

// MaxOffset exposes maxOffset for testing.
func (v *Vterm) MaxOffset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxOffset()
}

// Resize simulates a layout change of the log pane.
func (r *Renderer) Resize(rows, cols int) {
	r.resize(rows, cols)
}
