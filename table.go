package mex

import "fmt"

// builtinNames are the six reserved control forms. They are never stored
// in a Table and cannot be shadowed by user definitions.
var builtinNames = map[string]bool{
	"def":         true,
	"undef":       true,
	"if":          true,
	"ifdef":       true,
	"include":     true,
	"expandafter": true,
}

// IsBuiltin reports whether name is one of the reserved builtin names.
func IsBuiltin(name string) bool { return builtinNames[name] }

// Table maps macro names to their replacement templates. A table lives
// for a whole run and is mutated only by \def and \undef during
// expansion.
type Table struct {
	m map[string]string
}

func NewTable() *Table {
	return &Table{m: map[string]string{}}
}

// Define binds name to value. Binding a reserved builtin name is a
// silent no-op; rebinding an existing macro fails with ErrDuplicateMacro.
func (t *Table) Define(name, value string) error {
	if IsBuiltin(name) {
		return nil
	}
	if _, ok := t.m[name]; ok {
		return fmt.Errorf("macro %q: %w", name, ErrDuplicateMacro)
	}
	t.m[name] = value
	return nil
}

// Undefine removes the binding for name.
func (t *Table) Undefine(name string) error {
	if _, ok := t.m[name]; !ok {
		return fmt.Errorf("cannot undefine %q: %w", name, ErrUndefinedMacro)
	}
	delete(t.m, name)
	return nil
}

// Lookup returns the template bound to name, if any.
func (t *Table) Lookup(name string) (string, bool) {
	v, ok := t.m[name]
	return v, ok
}

// Len returns the number of user macros currently defined.
func (t *Table) Len() int { return len(t.m) }

// Reset releases all entries. The table remains usable afterwards.
func (t *Table) Reset() {
	t.m = map[string]string{}
}
