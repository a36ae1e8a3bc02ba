package lang

import (
	"fmt"
)

// FormatResult renders a fully-reduced Expression for display.
func FormatResult(expr Expression) string {
	switch v := expr.(type) {
	case Integer:
		return fmt.Sprintf("%d", int64(v))
	case DiceRollTemplate:
		return "<template>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatSet renders the ("<name>" => value) pair SetValue's evaluation
// produces (e.g. `"atk" => Integer(6)`). Unlike FormatResult, the value
// here is rendered tagged by variant, not as a bare decimal — SetValue
// echoes back what was stored, not what a Roll displays.
func FormatSet(name string, value Expression) string {
	return fmt.Sprintf("%q => %s", name, debugExpression(value))
}

// debugExpression renders an Expression tagged by its variant name, the
// way the evaluator's source language renders an enum in its Debug form.
func debugExpression(expr Expression) string {
	switch v := expr.(type) {
	case Integer:
		return fmt.Sprintf("Integer(%d)", int64(v))
	case DiceRollTemplate:
		return "<template>"
	default:
		return fmt.Sprintf("%v", v)
	}
}
