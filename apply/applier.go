// Package apply turns processor results into file edits: span splicing,
// import rewriting, diffs, atomic writes and target discovery.
package apply

import (
	"sort"

	"github.com/termfx/hintfix/core"
)

// Apply splices every replacement-bearing result into src. When matches
// overlap, the outermost one wins and results nested inside an already
// taken span are dropped. Returns the rewritten source, the results that
// were actually applied, and their merged import directive.
func Apply(src []byte, results []core.TransformationResult) ([]byte, []core.TransformationResult, core.ImportDirective) {
	var edits []core.TransformationResult
	for _, r := range results {
		if r.HasReplacement() {
			edits = append(edits, r)
		}
	}
	// widest-first at equal offsets so the outer match claims the span
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Match.Offset != edits[j].Match.Offset {
			return edits[i].Match.Offset < edits[j].Match.Offset
		}
		return edits[i].Match.Length > edits[j].Match.Length
	})

	var kept []core.TransformationResult
	lastEnd := -1
	for _, e := range edits {
		if e.Match.Offset < lastEnd {
			continue
		}
		kept = append(kept, e)
		lastEnd = e.Match.Offset + e.Match.Length
	}

	// splicing back to front keeps earlier offsets valid
	out := append([]byte(nil), src...)
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		start := e.Match.Offset
		end := start + e.Match.Length
		if start < 0 || end > len(out) {
			continue
		}
		out = append(out[:start], append([]byte(e.Replacement), out[end:]...)...)
	}

	var imports core.ImportDirective
	for _, e := range kept {
		imports = imports.Merge(e.Imports)
	}
	return out, kept, imports
}
