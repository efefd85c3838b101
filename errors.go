package mex

import "errors"

// Error kinds reported by the expansion engine. Returned errors wrap one
// of these and can be classified with errors.Is. File errors from the
// include loader are not listed here: they surface as wrapped
// fs.ErrNotExist / *fs.PathError values.
var (
	ErrDuplicateMacro    = errors.New("macro already defined")
	ErrUndefinedMacro    = errors.New("macro not defined")
	ErrInvalidMacroName  = errors.New("invalid macro name")
	ErrUnbalancedBraces  = errors.New("unbalanced braces in argument")
	ErrMissingArgument   = errors.New("expected '{' to start argument")
	ErrResourceExhausted = errors.New("expansion nested too deeply")
)
