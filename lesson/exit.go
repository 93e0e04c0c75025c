package lesson

import (
	"errors"

	"github.com/polyfloyd/learngl/shader"
)

// Exit statuses of the lesson programs. Every failure stage has its own.
const (
	ExitOK       = 0
	ExitWindow   = 1
	ExitVertex   = 2
	ExitFragment = 3
	ExitLink     = 4
	ExitConfig   = 5
	ExitFailure  = 6
)

// ErrWindow marks errors creating the window or its context.
var ErrWindow = errors.New("failed to create the window")

// ExitCode maps an error to the exit status of a lesson. For errors joining
// several failures the first recognized one decides.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if code := ExitCode(e); code != ExitFailure {
				return code
			}
		}
		return ExitFailure
	}

	var cerr shader.CompileError
	var lerr shader.LinkError
	switch {
	case errors.As(err, &cerr):
		if cerr.Stage() == shader.StageVertex {
			return ExitVertex
		}
		return ExitFragment
	case errors.As(err, &lerr):
		return ExitLink
	case errors.Is(err, ErrWindow):
		return ExitWindow
	case errors.Is(err, ErrConfig):
		return ExitConfig
	}
	return ExitFailure
}
