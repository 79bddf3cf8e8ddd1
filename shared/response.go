package shared

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrUnknown stands in for a nil error handed to Fail.
var ErrUnknown = errors.New("unknown error")

// Response is the envelope returned by every client operation.
// A response is successful when Errors is empty. Batch operations may carry
// both Data and Errors, see Partial.
type Response[T any] struct {
	Data   T
	Errors []error
}

// Ok wraps a successful result.
func Ok[T any](data T) Response[T] {
	return Response[T]{Data: data}
}

// Fail wraps a single error.
func Fail[T any](err error) Response[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Response[T]{Errors: []error{err}}
}

// FailAll wraps an ordered list of errors. An empty list is reported as ErrUnknown.
func FailAll[T any](errs []error) Response[T] {
	if len(errs) == 0 {
		return Fail[T](nil)
	}
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			err = ErrUnknown
		}
		out = append(out, err)
	}
	return Response[T]{Errors: out}
}

// Partial carries the successes of a batch together with the errors of the
// items that failed.
func Partial[T any](data T, errs []error) Response[T] {
	return Response[T]{Data: data, Errors: append([]error(nil), errs...)}
}

func (r Response[T]) Success() bool {
	return len(r.Errors) == 0
}

// Err joins the errors of the response, nil on success.
func (r Response[T]) Err() error {
	if r.Success() {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	return stderrors.Join(r.Errors...)
}

// Unwrap returns the payload and the joined error.
func (r Response[T]) Unwrap() (T, error) {
	return r.Data, r.Err()
}

// BatchStatus summarises a batch response.
type BatchStatus uint8

const (
	AllSucceeded BatchStatus = iota
	SomeSucceeded
	NoneSucceeded
)

func (s BatchStatus) String() string {
	switch s {
	case AllSucceeded:
		return "all_succeeded"
	case SomeSucceeded:
		return "some_succeeded"
	case NoneSucceeded:
		return "none_succeeded"
	default:
		return "unknown"
	}
}

// GetBatchStatus classifies a batch by its success and error counts.
func GetBatchStatus(succeeded, failed int) BatchStatus {
	switch {
	case failed == 0:
		return AllSucceeded
	case succeeded == 0:
		return NoneSucceeded
	default:
		return SomeSucceeded
	}
}
