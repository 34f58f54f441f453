package eval

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// This file implements rendering of values, as printed by display
// and returned by Interpret. A list can be made to contain itself
// with vector-set!, so lists already being rendered print as (...).

type valueRenderer func(v Value) string

// Render renders v without access to an environment; procedures print
// without their names.
func Render(v Value) string { return render(v, nil) }

// Render renders v, naming procedures after their global bindings.
func (ctx *Context) Render(v Value) string { return render(v, ctx.global) }

func render(v Value, names *Environment) string {
	seen := map[*List]bool{}
	var visit valueRenderer
	visit = func(v Value) string {
		switch v := v.(type) {
		case Boolean:
			if v {
				return "#t"
			}
			return "#f"
		case Number:
			return formatNumber(float64(v))
		case String:
			return expandEscapes(string(v))
		case *List:
			if seen[v] {
				return "(...)"
			}
			seen[v] = true
			defer delete(seen, v)
			return v.render(visit)
		case *Procedure:
			return renderProcedure(v, names)
		case *Builtin:
			if names == nil {
				return "procedure " + v.name
			}
			return renderProcedure(v, names)
		case Unspecified, nil:
			return "unspecified"
		}
		return "unspecified"
	}
	return visit(v)
}

func (v *List) render(f valueRenderer) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, x := range v.Values {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(f(x))
	}
	buf.WriteString(")")
	return buf.String()
}

// renderProcedure only looks at the given frame: a procedure that is
// bound somewhere else prints without a name.
func renderProcedure(v Value, names *Environment) string {
	if names != nil {
		if name, ok := names.KeyOf(v); ok {
			return "procedure " + name
		}
	}
	return "procedure"
}

// expandEscapes turns the two characters \n into a newline; every
// other escape is printed as written.
func expandEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] != '\n' {
			if s[i+1] == 'n' {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(s[i])
				buf.WriteByte(s[i+1])
			}
			i++
			continue
		}
		buf.WriteByte(s[i])
	}
	return buf.String()
}

// formatNumber prints integers without a fraction and everything else
// in the shortest form that reads back to the same float64.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		return strings.Replace(s, "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
