package loader

import "fmt"

// DecodeError reports a malformed document. Path is a JSON pointer to the
// offending value, e.g. "/components/0/layout/children/1/type".
type DecodeError struct {
	File    string
	Path    string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
