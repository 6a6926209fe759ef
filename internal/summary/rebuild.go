package summary

// Rebuild regenerates the whole generated body on every run.
type Rebuild struct{}

// Mode implements Strategy.
func (Rebuild) Mode() Mode { return ModeRebuild }

// Reconcile implements Strategy.
func (Rebuild) Reconcile(idx Index, snap Snapshot) (string, bool) {
	lines := extractPreamble(snap.startLines(idx), snap.Exists)
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, renderCategories(snap.Policy.Group(snap.Files, snap.Title))...)

	text := finish(lines)
	return text, !idx.Present || text != idx.Content
}
