package mex

import (
	"fmt"
	"strings"
)

// readArg captures one brace-balanced argument at the cursor. skipSpace
// permits whitespace before the opening brace (builtin arguments only).
// A backslash escapes exactly the next byte: that byte never alters the
// brace depth, and the backslash itself is retained in the capture so
// the later re-scan of the argument resolves it. The final closing brace
// is consumed but not captured.
func readArg(c *cursor, skipSpace bool) (string, error) {
	if skipSpace {
		for {
			b, ok := c.peek()
			if !ok || !isSpace(b) {
				break
			}
			c.advance(1)
		}
	}
	if b, ok := c.peek(); !ok || b != '{' {
		return "", fmt.Errorf("%s: %w", c.loc, ErrMissingArgument)
	}
	c.advance(1)

	var buf strings.Builder
	depth := 1
	escaped := false
	for !c.eof() {
		ch, _ := c.peek()
		c.advance(1)
		if escaped {
			buf.WriteByte(ch)
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			buf.WriteByte(ch)
			escaped = true
		case '{':
			depth++
			buf.WriteByte(ch)
		case '}':
			depth--
			if depth == 0 {
				return buf.String(), nil
			}
			buf.WriteByte(ch)
		default:
			buf.WriteByte(ch)
		}
	}
	return "", fmt.Errorf("%s: %w", c.loc, ErrUnbalancedBraces)
}
