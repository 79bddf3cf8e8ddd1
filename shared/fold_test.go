package shared

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
)

func TestFold(t *testing.T) {
	sum := Fold([]int{1, 2, 3}, 0, func(acc, _ int, v int) int { return acc + v })
	if sum != 6 {
		t.Fatalf("Fold() got=%d want=6", sum)
	}

	errOdd := errors.New("odd")
	res := Fold([]int{0, 1, 2, 3, 4}, Results[string]{}, func(acc Results[string], i int, v int) Results[string] {
		if v%2 == 1 {
			return acc.Add("", errors.Wrapf(errOdd, "position %d", i))
		}
		return acc.Add(strconv.Itoa(v), nil)
	})
	if len(res.Succeeded) != 3 || res.Succeeded[2] != "4" || len(res.Failed) != 2 {
		t.Fatalf("Fold() got=%+v", res)
	}
	if !errors.Is(res.Failed[0], errOdd) || res.Status() != SomeSucceeded {
		t.Fatalf("Fold() failed=%v status=%v", res.Failed, res.Status())
	}
	if (Results[string]{}).Status() != AllSucceeded {
		t.Fatal("empty Results should be AllSucceeded")
	}
}
