package ordering

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a move names a position outside the list.
var ErrIndexOutOfRange = errors.New("ordering: index out of range")

// Move returns a new slice with the element at src relocated to dst. Every
// other element keeps its relative order. The input is never modified.
func Move[T any](list []T, src, dst int) ([]T, error) {
	if src < 0 || src >= len(list) || dst < 0 || dst >= len(list) {
		return nil, fmt.Errorf("%w: move %d -> %d in list of %d", ErrIndexOutOfRange, src, dst, len(list))
	}

	out := make([]T, 0, len(list))
	moved := list[src]
	for i, item := range list {
		if i == src {
			continue
		}
		if len(out) == dst {
			out = append(out, moved)
		}
		out = append(out, item)
	}
	if len(out) < len(list) {
		out = append(out, moved)
	}
	return out, nil
}
