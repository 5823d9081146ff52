package engine

import "container/heap"

// StateEvent schedules a player transition at a future virtual time.
type StateEvent struct {
	Time     uint64
	PlayerID int
	Target   PlayerState

	seq uint64
}

// EventQueue is a min-heap of scheduled state changes, ordered by time with
// FIFO insertion order breaking ties. There is no cancellation: stale events
// are rejected at consumption by the transition rules.
type EventQueue struct {
	h       eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push schedules an event.
func (q *EventQueue) Push(e StateEvent) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, e)
}

// Peek returns the earliest event without removing it. ok is false when empty.
func (q *EventQueue) Peek() (StateEvent, bool) {
	if len(q.h) == 0 {
		return StateEvent{}, false
	}
	return q.h[0], true
}

// Pop removes and returns the earliest event. ok is false when empty.
func (q *EventQueue) Pop() (StateEvent, bool) {
	if len(q.h) == 0 {
		return StateEvent{}, false
	}
	return heap.Pop(&q.h).(StateEvent), true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.h)
}

type eventHeap []StateEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(StateEvent)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
