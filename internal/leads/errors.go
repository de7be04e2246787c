package leads

import "fmt"

// SubmissionError carries the public error code for a rejected or failed
// submission. The wrapped cause stays server-side.
type SubmissionError struct {
	Code  string
	cause error
}

func (e *SubmissionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return e.Code
}

func (e *SubmissionError) Unwrap() error { return e.cause }

func newSubmissionError(code string, cause error) *SubmissionError {
	return &SubmissionError{Code: code, cause: cause}
}
