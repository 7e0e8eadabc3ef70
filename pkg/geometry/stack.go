package geometry

// StackCapacity bounds BVH traversal depth. Trees must be built no deeper
// than this; the builder enforces it and Traverse counts any push it has to
// drop when the bound is violated.
const StackCapacity = 14

// Stack is a fixed-capacity LIFO of node indices. It lives on the traversal
// call's stack frame and is never shared or persisted.
type Stack struct {
	items [StackCapacity]int32
	count int
}

// Push adds a node index; it reports false instead of growing past capacity.
func (s *Stack) Push(index int32) bool {
	if s.count >= StackCapacity {
		return false
	}
	s.items[s.count] = index
	s.count++
	return true
}

// Pop removes and returns the most recent index; ok is false when empty.
func (s *Stack) Pop() (int32, bool) {
	if s.count == 0 {
		return 0, false
	}
	s.count--
	return s.items[s.count], true
}

// Len returns the number of indices currently on the stack.
func (s *Stack) Len() int {
	return s.count
}
