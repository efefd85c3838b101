package mex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nickwells/location.mod/location"
)

// cursor is a read position in a piece of source text. The location is
// advanced across newlines so diagnostics can point at a line.
type cursor struct {
	text string
	pos  int
	loc  *location.L
}

func newCursor(source, text string) *cursor {
	loc := location.New(source)
	loc.Incr()
	return &cursor{text: text, loc: loc}
}

func (c *cursor) eof() bool { return c.pos >= len(c.text) }

func (c *cursor) peek() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.text[c.pos], true
}

func (c *cursor) rest() string { return c.text[c.pos:] }

// advance consumes n bytes, counting newlines into the location.
func (c *cursor) advance(n int) {
	end := c.pos + n
	for i := c.pos; i < end; i++ {
		if c.text[i] == '\n' {
			c.loc.Incr()
		}
	}
	c.pos = end
}

// readAlnumRun consumes the maximal alphanumeric run at the cursor.
func (c *cursor) readAlnumRun() string {
	start := c.pos
	for !c.eof() && isAlnum(c.text[c.pos]) {
		c.pos++
	}
	return c.text[start:c.pos]
}

// braceFollowsSpace reports whether the next non-whitespace byte is '{'.
// Nothing is consumed.
func (c *cursor) braceFollowsSpace() bool {
	for i := c.pos; i < len(c.text); i++ {
		if isSpace(c.text[i]) {
			continue
		}
		return c.text[i] == '{'
	}
	return false
}

func (x *Expander) maxDepth() int {
	if x.MaxDepth > 0 {
		return x.MaxDepth
	}
	return DefaultMaxDepth
}

// expand is the scanning loop: literal runs are copied to the sink and
// each backslash construct is handled in turn. The continuation after a
// construct is the loop itself, so the call stack grows with construct
// nesting only.
func (x *Expander) expand(c *cursor, sink Sink, depth int) error {
	if depth > x.maxDepth() {
		return fmt.Errorf("%s: %w", c.loc, ErrResourceExhausted)
	}
	for !c.eof() {
		rest := c.rest()
		i := strings.IndexByte(rest, '\\')
		if i < 0 {
			c.advance(len(rest))
			_, err := sink.WriteString(rest)
			return err
		}
		if i > 0 {
			if _, err := sink.WriteString(rest[:i]); err != nil {
				return err
			}
			c.advance(i)
		}
		c.advance(1) // the backslash
		if err := x.expandConstruct(c, sink, depth); err != nil {
			return err
		}
	}
	return nil
}

// expandConstruct handles one backslash-introduced construct. The cursor
// stands just past the backslash.
func (x *Expander) expandConstruct(c *cursor, sink Sink, depth int) error {
	ch, ok := c.peek()
	if !ok {
		// lone backslash at end of input
		return sink.WriteByte('\\')
	}
	switch {
	case isEscapable(ch):
		c.advance(1)
		return sink.WriteByte(ch)
	case isAlnum(ch):
		name := c.readAlnumRun()
		if IsBuiltin(name) {
			return x.expandBuiltin(c, sink, depth, name)
		}
		return x.expandUserMacro(c, sink, depth, name)
	default:
		c.advance(1)
		if err := sink.WriteByte('\\'); err != nil {
			return err
		}
		return sink.WriteByte(ch)
	}
}

// expandBuiltin dispatches one of the six control forms. Builtins
// tolerate whitespace before the opening brace and between arguments; a
// builtin name with no argument list is plain text.
func (x *Expander) expandBuiltin(c *cursor, sink Sink, depth int, name string) error {
	if !c.braceFollowsSpace() {
		_, err := sink.WriteString("\\" + name)
		return err
	}

	switch name {
	case "def":
		macName, err := readArg(c, true)
		if err != nil {
			return err
		}
		value, err := readArg(c, true)
		if err != nil {
			return err
		}
		if !isMacroName(macName) {
			return fmt.Errorf("%s: \\def name %q: %w", c.loc, macName, ErrInvalidMacroName)
		}
		if err := x.table.Define(macName, value); err != nil {
			return fmt.Errorf("%s: %w", c.loc, err)
		}
		return nil

	case "undef":
		macName, err := readArg(c, true)
		if err != nil {
			return err
		}
		if err := x.table.Undefine(macName); err != nil {
			return fmt.Errorf("%s: %w", c.loc, err)
		}
		return nil

	case "if":
		cond, err := readArg(c, true)
		if err != nil {
			return err
		}
		thenArg, err := readArg(c, true)
		if err != nil {
			return err
		}
		elseArg, err := readArg(c, true)
		if err != nil {
			return err
		}
		// COND is raw text, never expanded; only emptiness matters.
		branch := thenArg
		if cond == "" {
			branch = elseArg
		}
		return x.expandPart("\\if", branch, sink, depth+1)

	case "ifdef":
		macName, err := readArg(c, true)
		if err != nil {
			return err
		}
		thenArg, err := readArg(c, true)
		if err != nil {
			return err
		}
		elseArg, err := readArg(c, true)
		if err != nil {
			return err
		}
		if !isMacroName(macName) {
			return fmt.Errorf("%s: \\ifdef name %q: %w", c.loc, macName, ErrInvalidMacroName)
		}
		branch := elseArg
		if _, ok := x.table.Lookup(macName); ok {
			branch = thenArg
		}
		return x.expandPart("\\ifdef", branch, sink, depth+1)

	case "include":
		path, err := readArg(c, true)
		if err != nil {
			return err
		}
		if x.loader == nil {
			return fmt.Errorf("%s: \\include{%s}: no loader configured", c.loc, path)
		}
		text, err := x.loader.Load(path)
		if err != nil {
			return fmt.Errorf("%s: \\include{%s}: %w", c.loc, path, err)
		}
		return x.expandPart(path, text, sink, depth+1)

	case "expandafter":
		before, err := readArg(c, true)
		if err != nil {
			return err
		}
		after, err := readArg(c, true)
		if err != nil {
			return err
		}
		// AFTER is expanded first, captured privately; its table
		// mutations stay live for the BEFORE pass and the continuation.
		var capture bytes.Buffer
		if err := x.expandPart("\\expandafter", after, &capture, depth+1); err != nil {
			return err
		}
		return x.expandPart("\\expandafter", before+capture.String(), sink, depth+1)
	}
	return nil
}

// expandUserMacro instantiates a user macro template and re-scans the
// result. A user macro takes its argument immediately; \name without an
// adjacent brace is plain text.
func (x *Expander) expandUserMacro(c *cursor, sink Sink, depth int, name string) error {
	if b, ok := c.peek(); !ok || b != '{' {
		_, err := sink.WriteString("\\" + name)
		return err
	}
	tmpl, ok := x.table.Lookup(name)
	if !ok {
		return fmt.Errorf("%s: macro %q: %w", c.loc, name, ErrUndefinedMacro)
	}
	arg, err := readArg(c, false)
	if err != nil {
		return err
	}
	return x.expandPart("\\"+name, instantiate(tmpl, arg), sink, depth+1)
}

// expandPart expands a derived piece of text (a branch, an included
// file, an instantiated template) into sink at the given nesting depth.
func (x *Expander) expandPart(source, text string, sink Sink, depth int) error {
	return x.expand(newCursor(source, text), sink, depth)
}

// instantiate substitutes arg into a macro template. An unescaped '#'
// becomes the raw, unexpanded argument. Escaped specials collapse here;
// every other backslash pair keeps its backslash so the re-scan of the
// instantiated text can resolve it.
func instantiate(tmpl, arg string) string {
	var buf strings.Builder
	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		switch ch {
		case '\\':
			if i+1 >= len(tmpl) {
				buf.WriteByte('\\')
				break
			}
			next := tmpl[i+1]
			i++
			if isEscapable(next) {
				buf.WriteByte(next)
			} else {
				buf.WriteByte('\\')
				buf.WriteByte(next)
			}
		case '#':
			buf.WriteString(arg)
		default:
			buf.WriteByte(ch)
		}
	}
	return buf.String()
}

func isEscapable(b byte) bool {
	switch b {
	case '\\', '{', '}', '#', '%':
		return true
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isMacroName reports whether s is a legal user macro name: non-empty
// and entirely alphanumeric.
func isMacroName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlnum(s[i]) {
			return false
		}
	}
	return true
}
