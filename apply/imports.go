package apply

import (
	"strings"

	"github.com/termfx/hintfix/core"
)

// RewriteImports applies an import directive to Java source at the text
// level: removals delete matching import lines, replacements rewrite
// static imports in place, and additions go after the last existing import
// (or after the package declaration when there is none). Imports already
// present are not duplicated.
func RewriteImports(src []byte, d core.ImportDirective) []byte {
	if d.IsEmpty() {
		return src
	}

	lines := strings.Split(string(src), "\n")
	removePlain := toSet(d.Remove)
	removeStatic := toSet(d.RemoveStatic)

	existingPlain := make(map[string]bool)
	existingStatic := make(map[string]bool)
	lastImport := -1
	packageLine := -1
	deleted := make(map[int]bool)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "package ") {
			packageLine = i
			continue
		}
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}
		lastImport = i
		static := strings.HasPrefix(trimmed, "import static ")
		fqn := importName(trimmed, static)
		if static {
			if repl, ok := d.ReplaceStatic[fqn]; ok {
				lines[i] = "import static " + repl + ";"
				fqn = repl
			}
			if removeStatic[fqn] {
				deleted[i] = true
				continue
			}
			existingStatic[fqn] = true
		} else {
			if removePlain[fqn] {
				deleted[i] = true
				continue
			}
			existingPlain[fqn] = true
		}
	}

	var additions []string
	for _, fqn := range d.Add {
		if !existingPlain[fqn] {
			additions = append(additions, "import "+fqn+";")
			existingPlain[fqn] = true
		}
	}
	for _, fqn := range d.AddStatic {
		if !existingStatic[fqn] {
			additions = append(additions, "import static "+fqn+";")
			existingStatic[fqn] = true
		}
	}

	var out []string
	inserted := len(additions) == 0
	for i, line := range lines {
		if deleted[i] {
			continue
		}
		out = append(out, line)
		if !inserted && i == lastImport {
			out = append(out, additions...)
			inserted = true
		}
	}
	if !inserted {
		// no import section yet: open one below the package declaration
		if packageLine >= 0 {
			idx := indexOf(out, lines[packageLine])
			tail := append([]string{""}, additions...)
			out = append(out[:idx+1], append(tail, out[idx+1:]...)...)
		} else {
			out = append(additions, out...)
		}
	}
	return []byte(strings.Join(out, "\n"))
}

func importName(line string, static bool) string {
	s := strings.TrimPrefix(line, "import ")
	if static {
		s = strings.TrimPrefix(s, "static ")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")
	return strings.TrimSpace(s)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func indexOf(lines []string, line string) int {
	for i, l := range lines {
		if l == line {
			return i
		}
	}
	return 0
}
