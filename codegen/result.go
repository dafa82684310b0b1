package codegen

import "fmt"

// Result is the outcome of one generation request. Code carries the
// complete rendered source file on success and stays empty on failure;
// there is no partial output.
type Result struct {
	Success  bool
	Code     string
	Language string
	Warnings []string
	Err      error
}

// Failed builds a failure Result for the given language.
func Failed(language string, err error) *Result {
	return &Result{Language: language, Err: err}
}

// Warnings accumulates human-readable notes during a generation pass,
// for example which fields collapsed to a dynamic type.
type Warnings []string

// Addf appends a formatted warning.
func (w *Warnings) Addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}
