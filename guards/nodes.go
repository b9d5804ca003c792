package guards

import (
	"strings"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/syntax"
)

// Tree helpers for the built-in guards. They speak the Java grammar's node
// kinds; a host targeting another grammar overrides the guards that use
// them.

var declarationKinds = []string{
	"local_variable_declaration",
	"field_declaration",
	"method_declaration",
	"constructor_declaration",
	"class_declaration",
	"interface_declaration",
	"enum_declaration",
}

// enclosingDeclaration returns n itself when it is a declaration, or its
// nearest declaration ancestor.
func enclosingDeclaration(n syntax.Node) syntax.Node {
	return syntax.Ancestor(n, true, declarationKinds...)
}

// hasModifier reports whether a declaration node carries the given
// modifier keyword.
func hasModifier(decl syntax.Node, modifier string) bool {
	mods := modifiersOf(decl)
	if mods == nil {
		return false
	}
	for i := 0; i < mods.ChildCount(); i++ {
		if c := mods.Child(i); c != nil && c.Text() == modifier {
			return true
		}
	}
	return false
}

// hasAnnotation reports whether a declaration carries @name, compared by
// simple or qualified name.
func hasAnnotation(decl syntax.Node, name string) bool {
	mods := modifiersOf(decl)
	if mods == nil {
		return false
	}
	for i := 0; i < mods.NamedChildCount(); i++ {
		c := mods.NamedChild(i)
		if c.Kind() != "marker_annotation" && c.Kind() != "annotation" {
			continue
		}
		annName := strings.TrimPrefix(c.Text(), "@")
		if idx := strings.IndexByte(annName, '('); idx >= 0 {
			annName = annName[:idx]
		}
		annName = strings.TrimSpace(annName)
		if typeNamesMatch(annName, name) {
			return true
		}
	}
	return false
}

func modifiersOf(decl syntax.Node) syntax.Node {
	for i := 0; i < decl.NamedChildCount(); i++ {
		if c := decl.NamedChild(i); c.Kind() == "modifiers" {
			return c
		}
	}
	return nil
}

// methodName returns the declared name of a method_declaration node.
func methodName(method syntax.Node) string {
	for i := 0; i < method.NamedChildCount(); i++ {
		if c := method.NamedChild(i); c.Kind() == "identifier" {
			return c.Text()
		}
	}
	return ""
}

// enclosingBodyText returns the text of the method or constructor
// enclosing the match, falling back to the whole source.
func enclosingBodyText(ctx *core.GuardContext) string {
	enclosing := syntax.Ancestor(ctx.Match.Node, false,
		"method_declaration", "constructor_declaration")
	if enclosing != nil {
		return enclosing.Text()
	}
	return string(ctx.Source)
}

// inferType guesses the static type of an expression node from what the
// tree alone reveals: literal kinds, allocations, casts and declarations
// visible in enclosing scopes.
func inferType(n syntax.Node) string {
	switch n.Kind() {
	case "string_literal":
		return "java.lang.String"
	case "character_literal":
		return "char"
	case "decimal_integer_literal", "hex_integer_literal",
		"octal_integer_literal", "binary_integer_literal":
		return "int"
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return "double"
	case "true", "false":
		return "boolean"
	case "null_literal":
		return "null"
	case "object_creation_expression":
		return typeChildText(n)
	case "cast_expression":
		return typeChildText(n)
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return inferType(n.NamedChild(0))
		}
	case "identifier":
		return declaredTypeOf(n)
	}
	return ""
}

var typeNodeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
}

func typeChildText(n syntax.Node) string {
	for i := 0; i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); typeNodeKinds[c.Kind()] {
			return c.Text()
		}
	}
	return ""
}

// declaredTypeOf scans enclosing scopes for a local declaration or
// parameter introducing this identifier and returns its declared type.
func declaredTypeOf(ident syntax.Node) string {
	name := ident.Text()
	for scope := ident.Parent(); scope != nil; scope = scope.Parent() {
		kind := scope.Kind()
		if kind != "block" && kind != "method_declaration" &&
			kind != "constructor_declaration" && kind != "for_statement" {
			continue
		}
		if t := declaredTypeIn(scope, name); t != "" {
			return t
		}
	}
	return ""
}

func declaredTypeIn(scope syntax.Node, name string) string {
	found := ""
	syntax.Walk(scope, func(d syntax.Node) bool {
		if found != "" {
			return false
		}
		switch d.Kind() {
		case "local_variable_declaration", "formal_parameter":
			if declaresName(d, name) {
				found = typeChildText(d)
				return false
			}
		case "class_declaration", "lambda_expression":
			// do not leak declarations from nested scopes
			return false
		}
		return true
	})
	return found
}

func declaresName(decl syntax.Node, name string) bool {
	ok := false
	syntax.Walk(decl, func(d syntax.Node) bool {
		if d.Kind() == "variable_declarator" || d.Kind() == "formal_parameter" {
			for i := 0; i < d.NamedChildCount(); i++ {
				c := d.NamedChild(i)
				if c.Kind() == "identifier" && c.Text() == name {
					ok = true
					return false
				}
			}
		}
		return !ok
	})
	return ok
}
