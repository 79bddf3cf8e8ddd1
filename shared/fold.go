package shared

// Fold threads acc through fn for every item, in order.
func Fold[T, A any](items []T, acc A, fn func(acc A, i int, item T) A) A {
	for i, item := range items {
		acc = fn(acc, i, item)
	}
	return acc
}

// Results accumulates the outcome of each step of a batch.
type Results[T any] struct {
	Succeeded []T
	Failed    []error
}

// Add records one step: the error when non nil, otherwise the value.
func (r Results[T]) Add(v T, err error) Results[T] {
	if err != nil {
		r.Failed = append(r.Failed, err)
		return r
	}
	r.Succeeded = append(r.Succeeded, v)
	return r
}

func (r Results[T]) Status() BatchStatus {
	return GetBatchStatus(len(r.Succeeded), len(r.Failed))
}
