package theme

// ThemeError represents a theme loading error.
type ThemeError struct {
	Theme   string
	Message string
	Err     error
}

func (e *ThemeError) Error() string {
	msg := e.Message + ": " + e.Theme
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ThemeError) Unwrap() error {
	return e.Err
}
