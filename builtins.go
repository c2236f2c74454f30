// builtins.go implements the global built-in registry: print/output,
// conversions, string inspection, and a cooperative sleep. These are
// recognized by name at parse time (see builtinNames in parser.go) rather
// than declared with `func`, so they need no FuncDef or closure.
package minipar

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
)

func (in *Interp) evalBuiltin(n *Call, env *Env) Value {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = in.evalExpr(a, env)
	}

	switch n.Callee.Name {
	case "print", "output":
		// spec.md §4.6: both write the canonical form of each argument to
		// stdout followed by a newline; print/output are kept as distinct
		// names because the original example programs call both.
		fmt.Fprintln(os.Stdout, joinCanonical(args))
		return VoidValue()

	case "to_number":
		f, err := strconv.ParseFloat(args[0].String_(), 64)
		if err != nil {
			failAt(n.Tok, "to_number: %q is not a number", args[0].String_())
		}
		return NumberValue(f)

	case "to_string":
		return StringValue(args[0].Canonical())

	case "to_bool":
		switch args[0].String_() {
		case "true":
			return BoolValue(true)
		case "false":
			return BoolValue(false)
		default:
			failAt(n.Tok, "to_bool: %q is not a bool", args[0].String_())
			return Value{}
		}

	case "length":
		return NumberValue(float64(len([]rune(args[0].String_()))))

	case "exp":
		return NumberValue(math.Pow(args[0].Number(), args[1].Number()))

	case "sleep":
		time.Sleep(time.Duration(args[0].Number() * float64(time.Second)))
		return VoidValue()

	case "isalpha":
		s := args[0].String_()
		if s == "" {
			return BoolValue(false)
		}
		for _, r := range s {
			if !unicode.IsLetter(r) {
				return BoolValue(false)
			}
		}
		return BoolValue(true)

	case "isnum":
		_, err := strconv.ParseFloat(args[0].String_(), 64)
		return BoolValue(err == nil)

	default:
		fail(fmt.Sprintf("unreachable builtin %q", n.Callee.Name))
		return Value{}
	}
}

func joinCanonical(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Canonical()
	}
	return strings.Join(parts, " ")
}
