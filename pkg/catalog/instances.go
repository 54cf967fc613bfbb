package catalog

import "sort"

// Direction moves an instance one step within its container.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// InstanceUpdate changes the position (priority or sequence) and enabled
// flag of an instance. Nil fields are left as they are.
type InstanceUpdate struct {
	Position *int
	Enabled  *bool
}

// positionStep separates positions assigned on append.
const positionStep = 10

func sortByPosition[T any](items []T, pos func(*T) *int) {
	sort.SliceStable(items, func(i, j int) bool {
		return *pos(&items[i]) < *pos(&items[j])
	})
}

// nextPosition is the position for an appended instance: 10 past the
// current maximum, or 10 for an empty container.
func nextPosition[T any](items []T, pos func(*T) *int) int {
	if len(items) == 0 {
		return positionStep
	}
	max := *pos(&items[0])
	for i := range items {
		if p := *pos(&items[i]); p > max {
			max = p
		}
	}
	return max + positionStep
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

// reorder swaps the position of items[i] with its neighbour in direction d.
// When both share a position the moved item is placed just past it instead.
// Returns false at either end.
func reorder[T any](items []T, i int, d Direction, pos func(*T) *int) bool {
	j := i + 1
	if d == Up {
		j = i - 1
	}
	if j < 0 || j >= len(items) {
		return false
	}
	a, b := pos(&items[i]), pos(&items[j])
	switch {
	case *a != *b:
		*a, *b = *b, *a
	case d == Up:
		*a = *b - 1
	default:
		*a = *b + 1
	}
	sortByPosition(items, pos)
	return true
}
