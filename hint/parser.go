// Package hint parses the hint file DSL into transformation rules and
// resolves includes between rule units.
//
// A rule reads
//
//	sourcePattern [:: guard] (=> replacement [:: guard | :: otherwise] importLine*)* ;;
//
// alongside // and /* */ comments, <!key: value> metadata directives and
// include lines.
package hint

import (
	"fmt"
	"strings"

	"github.com/termfx/hintfix/core"
)

var importKeywords = map[string]bool{
	"addImport":           true,
	"removeImport":        true,
	"addStaticImport":     true,
	"removeStaticImport":  true,
	"replaceStaticImport": true,
}

// ParseString parses one hint unit with an empty id.
func ParseString(src string) (*core.HintFile, error) {
	return Parse("", src)
}

// Parse parses one hint unit. Errors always carry the 1-based line number
// of the offending construct.
func Parse(id, src string) (*core.HintFile, error) {
	hf := &core.HintFile{ID: id}
	lines := strings.Split(stripComments(src), "\n")

	buf := ""
	bufLine := 0
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if buf == "" {
			switch {
			case trimmed == "":
				continue
			case strings.HasPrefix(trimmed, "<!"):
				if err := parseMetadata(hf, trimmed, lineNo); err != nil {
					return nil, err
				}
				continue
			case strings.HasPrefix(trimmed, "include ") || trimmed == "include":
				inc := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(trimmed, "include")), ";")
				inc = strings.TrimSpace(inc)
				if inc == "" {
					return nil, &core.ParseError{Line: lineNo, Message: "include requires a unit identifier"}
				}
				hf.Includes = append(hf.Includes, inc)
				continue
			}
			bufLine = lineNo
		}
		buf += raw + "\n"

		for {
			idx := topLevelIndex(buf, ";;")
			if idx < 0 {
				break
			}
			ruleText := buf[:idx]
			buf = buf[idx+2:]
			rule, err := parseRule(ruleText, bufLine)
			if err != nil {
				return nil, err
			}
			hf.Rules = append(hf.Rules, rule)
			if strings.TrimSpace(buf) == "" {
				buf = ""
			} else {
				bufLine = lineNo
			}
		}
	}
	if strings.TrimSpace(buf) != "" {
		return nil, &core.ParseError{Line: bufLine, Message: "unterminated rule, expected ';;'"}
	}
	return hf, nil
}

// parseMetadata handles one <!key: value> directive. Unknown keys are
// ignored so newer hint files keep loading.
func parseMetadata(hf *core.HintFile, line string, lineNo int) error {
	if !strings.HasSuffix(line, ">") {
		return &core.ParseError{Line: lineNo, Message: "metadata directive must end with '>'"}
	}
	body := strings.TrimSuffix(strings.TrimPrefix(line, "<!"), ">")
	key, value, found := strings.Cut(body, ":")
	if !found {
		return &core.ParseError{Line: lineNo, Message: "metadata directive requires 'key: value'"}
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch key {
	case "id":
		hf.ID = value
	case "description":
		hf.Description = value
	case "severity":
		hf.Severity = value
	case "minVersion", "minJavaVersion":
		hf.MinVersion = value
	case "tags":
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				hf.Tags = append(hf.Tags, tag)
			}
		}
	}
	return nil
}

func parseRule(text string, line int) (core.TransformationRule, error) {
	var rule core.TransformationRule
	text = strings.TrimSpace(text)

	// optional leading "description": prefix
	if strings.HasPrefix(text, `"`) {
		if end := closingQuote(text); end > 0 && end+1 < len(text) && text[end+1] == ':' {
			rule.Description = text[1:end]
			text = strings.TrimSpace(text[end+2:])
		}
	}

	segments := splitTopLevel(text, "=>")
	src := strings.TrimSpace(segments[0])
	if src == "" {
		return rule, &core.ParseError{Line: line, Message: "rule is missing a source pattern"}
	}

	patText, guardText, err := splitGuard(src, line)
	if err != nil {
		return rule, err
	}
	rule.SourcePattern = core.Pattern{Text: patText, Kind: inferPatternKind(patText)}
	if guardText != "" {
		g, err := ParseGuard(guardText)
		if err != nil {
			return rule, &core.ParseError{Line: line, Message: fmt.Sprintf("invalid guard: %v", err)}
		}
		rule.SourceGuard = g
	}

	explicitImports := false
	for _, seg := range segments[1:] {
		alt, imp, err := parseAlternative(seg, line)
		if err != nil {
			return rule, err
		}
		if !imp.IsEmpty() {
			explicitImports = true
			// import lines are rule-scoped: the edits apply whichever
			// alternative wins
			rule.Imports = rule.Imports.Merge(imp)
		}
		rule.Alternatives = append(rule.Alternatives, alt)
	}

	// with no explicit import lines anywhere, derive addImport edits from
	// fully qualified names in the replacements
	if !explicitImports {
		for i := range rule.Alternatives {
			rule.Alternatives[i].Imports = core.DetectImports(rule.Alternatives[i].Replacement.Text)
		}
	}
	return rule, nil
}

func parseAlternative(segment string, line int) (core.RewriteAlternative, core.ImportDirective, error) {
	var alt core.RewriteAlternative
	var imp core.ImportDirective

	var bodyLines []string
	for _, l := range strings.Split(segment, "\n") {
		bodyPart, tail := splitImportTail(l)
		if tail != "" {
			if err := parseImportTail(&imp, tail, line); err != nil {
				return alt, imp, err
			}
		}
		bodyLines = append(bodyLines, bodyPart)
	}

	body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	repText, guardText, err := splitGuard(body, line)
	if err != nil {
		return alt, imp, err
	}
	if repText == "" {
		return alt, imp, &core.ParseError{Line: line, Message: "rewrite alternative is missing replacement text"}
	}
	alt.Replacement = core.Pattern{Text: repText, Kind: inferPatternKind(repText)}

	switch {
	case guardText == "":
	case guardText == "otherwise":
		alt.Otherwise = true
	default:
		g, err := ParseGuard(guardText)
		if err != nil {
			return alt, imp, &core.ParseError{Line: line, Message: fmt.Sprintf("invalid guard: %v", err)}
		}
		alt.Condition = g
	}
	return alt, imp, nil
}

// splitImportTail cuts a line at the first top-level import keyword, so
// import directives work both on their own lines and inline after a
// replacement or guard.
func splitImportTail(line string) (body, tail string) {
	trimmed := strings.TrimSpace(line)
	first, _, _ := strings.Cut(trimmed, " ")
	if importKeywords[first] {
		return "", trimmed
	}
	best := -1
	for kw := range importKeywords {
		if idx := topLevelIndex(line, " "+kw+" "); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return line, ""
	}
	return line[:best], strings.TrimSpace(line[best:])
}

// parseImportTail parses one or more consecutive import directives.
func parseImportTail(d *core.ImportDirective, tail string, line int) error {
	toks := strings.Fields(strings.ReplaceAll(tail, ";", " "))
	for i := 0; i < len(toks); {
		kw := toks[i]
		if !importKeywords[kw] {
			return &core.ParseError{Line: line, Message: "unexpected " + kw + " in import directives"}
		}
		argc := 1
		if kw == "replaceStaticImport" {
			argc = 2
		}
		if i+argc >= len(toks) {
			return &core.ParseError{Line: line, Message: kw + " is missing its argument"}
		}
		if err := parseImportLine(d, kw, strings.Join(toks[i+1:i+1+argc], " "), line); err != nil {
			return err
		}
		i += 1 + argc
	}
	return nil
}

func parseImportLine(d *core.ImportDirective, keyword, rest string, line int) error {
	args := strings.Fields(strings.TrimSuffix(strings.TrimSpace(rest), ";"))
	switch keyword {
	case "replaceStaticImport":
		if len(args) != 2 {
			return &core.ParseError{Line: line, Message: "replaceStaticImport requires old and new names"}
		}
		if d.ReplaceStatic == nil {
			d.ReplaceStatic = make(map[string]string)
		}
		d.ReplaceStatic[args[0]] = args[1]
		return nil
	default:
		if len(args) != 1 {
			return &core.ParseError{Line: line, Message: keyword + " requires exactly one name"}
		}
	}
	switch keyword {
	case "addImport":
		d.Add = append(d.Add, args[0])
	case "removeImport":
		d.Remove = append(d.Remove, args[0])
	case "addStaticImport":
		d.AddStatic = append(d.AddStatic, args[0])
	case "removeStaticImport":
		d.RemoveStatic = append(d.RemoveStatic, args[0])
	}
	return nil
}

// splitGuard separates "pattern :: guard" at the top level.
func splitGuard(s string, line int) (pattern, guard string, err error) {
	parts := splitTopLevel(s, "::")
	switch len(parts) {
	case 1:
		return strings.TrimSpace(parts[0]), "", nil
	case 2:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
	}
	return "", "", &core.ParseError{Line: line, Message: "multiple '::' separators in one segment"}
}

// closingQuote returns the index of the quote closing a string that starts
// at index 0, or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// inferPatternKind applies the surface heuristics that classify a pattern
// fragment.
func inferPatternKind(text string) core.PatternKind {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, "@"):
		return core.KindAnnotation
	case strings.HasPrefix(t, "import "):
		return core.KindImport
	case strings.HasPrefix(t, "new "):
		return core.KindConstructor
	case strings.HasPrefix(t, "{"):
		return core.KindBlock
	}
	if strings.HasSuffix(t, ";") {
		inner := strings.TrimSpace(strings.TrimSuffix(t, ";"))
		if topLevelIndex(inner, ";") >= 0 {
			return core.KindStatementSequence
		}
		return core.KindStatement
	}
	if looksLikeCall(t) {
		return core.KindMethodCall
	}
	return core.KindExpression
}

// looksLikeCall reports whether the fragment is a plain invocation:
// a (possibly qualified) name directly followed by an argument list that
// closes the fragment.
func looksLikeCall(t string) bool {
	if !strings.HasSuffix(t, ")") {
		return false
	}
	open := strings.IndexByte(t, '(')
	if open <= 0 {
		return false
	}
	head := t[:open]
	for _, r := range head {
		if r == '_' || r == '$' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}
