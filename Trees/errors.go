package Trees

import "errors"

// Contract violations. These are delivered to the fail handler, never returned.
var (
	ErrNotFree      = errors.New("record is not in the free state")
	ErrPathOverflow = errors.New("path exceeds the maximum tree height")
	ErrPathEmpty    = errors.New("path stack is empty")
	ErrExhausted    = errors.New("iterator is exhausted")
	ErrPostfixOrder = errors.New("postfix frame popped before its subtrees")
	ErrNilLess      = errors.New("less function is nil")
	ErrDoubleFree   = errors.New("record freed twice")
)

// ErrInvalid is wrapped by the errors Check returns.
var ErrInvalid = errors.New("invalid AA tree")

var failHandler = defaultFail

func defaultFail(err error) {
	panic(err)
}

// SetFailHandler installs h as the handler for contract violations and returns the
// previous one. A nil h restores the default, which panics with the error. If h
// returns, the violation still panics: execution never continues past it.
// SetFailHandler is not synchronised; install the handler before using any tree.
func SetFailHandler(h func(error)) func(error) {
	prev := failHandler
	if h == nil {
		h = defaultFail
	}
	failHandler = h
	return prev
}

func fail(err error) {
	failHandler(err)
	panic(err)
}
