package apply

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff between the original and rewritten
// content of one file.
func Unified(path string, original, modified []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(modified)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
