// errors.go renders LexError/ParseError/RuntimeError as caret-annotated
// source snippets, in the style of an interpreter that wants its failures to
// be readable in a terminal without an IDE.
package minipar

import (
	"fmt"
	"strings"
)

// ParseError reports a grammar, type, or scope violation at a 1-based line.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d: %s", e.Line, e.Msg)
}

// RuntimeError reports a division by zero, closed channel, conversion
// failure, or other execution-time fault. Line and Col are both 0 when the
// error was raised without a source token at hand.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d: %s", e.Line, e.Msg)
}

// WrapErrorWithSource decorates a LexError/ParseError/RuntimeError with a
// caret-annotated snippet of src. Any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	var header string
	var line, col int
	var msg string

	switch e := err.(type) {
	case *LexError:
		header, line, col, msg = "LEXICAL ERROR", e.Line, e.Col, e.Msg
	case *ParseError:
		header, line, col, msg = "PARSE ERROR", e.Line, e.Col, e.Msg
	case *RuntimeError:
		header, line, col, msg = "RUNTIME ERROR", e.Line, e.Col, e.Msg
	default:
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, header, line, col, msg))
}

func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col // columns are 0-based, as tracked by the lexer
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
