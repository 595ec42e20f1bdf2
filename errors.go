package samizdat

import "fmt"

// RuntimeError is the error TryEval and TryCall return when the call they
// wrap panics, whether the panic comes from bad input supplied by a
// collaborator (an out-of-scope parser or module loader) or from an
// internal invariant violation. Every other entry point reports failure
// by panicking, the way spec.md §7 describes every core failure as fatal.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func badInput(format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// TryEval runs Eval, recovering any fatalf panic into a RuntimeError
// instead of letting it cross into embedding code, the same
// recover-at-the-boundary shape interpreter embeddings commonly use
// around a Eval/Call entry point.
func TryEval(environment *SymbolTable, node *ExecNode) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = badInput("%v", r)
		}
	}()
	return Eval(environment, node), nil
}

// TryCall runs Call, recovering any fatalf panic into a RuntimeError.
func TryCall(callee Value, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = badInput("%v", r)
		}
	}()
	return Call(callee, args), nil
}

// fatalf raises an unrecoverable runtime error: a bad value, a bad
// operation, or exhausted resources (spec.md §7). Nothing in the core
// recovers these except TryEval and TryCall, which turn them into a
// RuntimeError; elsewhere the panic ends the process with the diagnostic.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
