package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark tags err with markErr. Both cr.Is and the standard errors.Is match
// the result against markErr and against err.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{error: cr.Mark(err, markErr), mark: markErr}
}

type marked struct {
	error
	mark error
}

func (e *marked) Unwrap() error { return e.error }

func (e *marked) Is(target error) bool { return target == e.mark }

// AssertionFailedf reports a broken internal invariant. The result is
// recognisable with IsAssertionFailure.
func AssertionFailedf(format string, args ...any) error {
	return cr.AssertionFailedf(format, args...)
}

func IsAssertionFailure(err error) bool {
	return cr.IsAssertionFailure(err)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
