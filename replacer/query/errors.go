package query

import (
	"errors"
	"fmt"
)

// ErrMalformedSpec is matched by every error returned from Compile.
var ErrMalformedSpec = errors.New("malformed spec")

// CompileError reports where a replacer string stopped making sense.
type CompileError struct {
	Pos    int    // byte offset in the replacer string
	Detail string // what went wrong
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("malformed spec at position %d: %s", e.Pos, e.Detail)
}

func (e *CompileError) Is(target error) bool {
	return target == ErrMalformedSpec
}

func errorf(pos int, format string, args ...any) error {
	return &CompileError{Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
