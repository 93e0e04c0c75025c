package lesson

import (
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"

	"github.com/polyfloyd/learngl/shader"
)

// Report writes err to w. Shader compile errors are printed together with
// the offending source lines, in color when the terminal supports it.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var cerr shader.CompileError
		if errors.As(e, &cerr) {
			cerr.PrettyPrint(w, color.SupportColor())
			continue
		}
		fmt.Fprintln(w, e)
	}
}
