package scenario

import "fmt"

// Error is a scenario loading or replay error. Step is -1 for errors that
// are not tied to a step.
type Error struct {
	Step    int
	Op      Op
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Step >= 0 {
		msg = fmt.Sprintf("step %d (%s): %s", e.Step, e.Op, e.Message)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
