package plan

import "errors"

var (
	errEmptyOutput = errors.New("empty output path")
	errBackslash   = errors.New("output path must use forward slashes")
	errAbsolute    = errors.New("output path must be relative")
	errUnclean     = errors.New("output path must be clean and stay inside the corpus")
)
