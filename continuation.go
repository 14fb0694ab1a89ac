package mceval

import "github.com/edwingeng/deque"

// Step represents a step in a continuation.
type Step struct {
	Op  int
	Val Any
}

// Continuation represents the rest of an evaluation as a stack of steps.
type Continuation struct {
	steps deque.Deque
}

// NewContinuation returns an empty continuation.
func NewContinuation() *Continuation {
	return &Continuation{deque.NewDeque()}
}

// Push appends a step to the tail of the continuation.
func (k *Continuation) Push(op int, value Any) {
	k.steps.PushBack(Step{op, value})
}

// Pop pops a step from the tail of the continuation.
func (k *Continuation) Pop() (int, Any) {
	step := k.steps.PopBack().(Step)
	return step.Op, step.Val
}

// TopOp returns the operator of the tail step, or -1 if k is empty.
func (k *Continuation) TopOp() int {
	if k.steps.Empty() {
		return -1
	}
	return k.steps.Back().(Step).Op
}

// Len returns the number of pending steps.
func (k *Continuation) Len() int {
	return k.steps.Len()
}
