package timeline

import (
	"fmt"
	"math/bits"
)

// bucketCount covers every radix distance a 32-bit time pair can have:
// distance 0 for entries due now, 1 through 32 for one per leading bit.
const bucketCount = 33

type entry[P any] struct {
	at      Time
	payload P
}

// Queue is a monotone priority queue of timed payloads.
//
// Entries are grouped into buckets by radix distance: the number of
// significant bits in the XOR of the entry time and the queue's current
// time. Bucket 0 holds entries due exactly now. Popping from an empty
// bucket 0 advances the clock to the earliest pending entry and
// redistributes only the lowest occupied bucket, which keeps every other
// bucket valid and makes the amortized cost of a pop constant.
//
// # Ordering
//
// Pop returns entries in non-decreasing time order. Entries sharing a
// time pop in reverse push order, so the most recently pushed reaction
// resolves first. PushOrdered inverts that for a batch: its payloads pop
// in the order given.
//
// # Monotonicity
//
// The clock never moves backwards. Pushing an entry before Now is a
// programmer fault and panics; it is never reported as a recoverable
// error.
//
// The zero value is an empty queue at time zero. A Queue is not safe for
// concurrent use.
type Queue[P any] struct {
	buckets [bucketCount][]entry[P]
	filled  uint64
	now     Time
	size    int
}

// Now returns the queue's current time: the time of the latest entry
// popped, or zero before any pop advances the clock.
func (q *Queue[P]) Now() Time {
	return q.now
}

// Len returns the number of pending entries.
func (q *Queue[P]) Len() int {
	return q.size
}

// IsEmpty reports whether the queue has no pending entries.
func (q *Queue[P]) IsEmpty() bool {
	return q.size == 0
}

// Push schedules payload at time at. It panics if at precedes Now.
func (q *Queue[P]) Push(at Time, payload P) {
	if at < q.now {
		panic(fmt.Sprintf("timeline: push at %d behind queue time %d", at, q.now))
	}
	q.place(entry[P]{at: at, payload: payload})
	q.size++
}

// PushOrdered schedules every payload at time at so that they pop in the
// order given, before any entry already pending at that time.
func (q *Queue[P]) PushOrdered(at Time, payloads ...P) {
	for i := len(payloads) - 1; i >= 0; i-- {
		q.Push(at, payloads[i])
	}
}

// Pop removes and returns the earliest pending entry. The third return
// value is false when the queue is empty; the queue is unchanged then.
func (q *Queue[P]) Pop() (Time, P, bool) {
	if q.size == 0 {
		var zero P
		return q.now, zero, false
	}
	if len(q.buckets[0]) == 0 {
		q.reassign()
	}

	due := q.buckets[0]
	e := due[len(due)-1]
	due[len(due)-1] = entry[P]{}
	q.buckets[0] = due[:len(due)-1]
	if len(q.buckets[0]) == 0 {
		q.filled &^= 1
	}
	q.size--
	return e.at, e.payload, true
}

// Peek returns the time of the next entry Pop would return. The second
// return value is false when the queue is empty.
func (q *Queue[P]) Peek() (Time, bool) {
	if q.size == 0 {
		return q.now, false
	}
	if len(q.buckets[0]) == 0 {
		q.reassign()
	}
	return q.now, true
}

// DrainTop removes every entry sharing the earliest pending time and
// appends their payloads to dst in pop order. It returns that time and
// the extended slice; dst is reset to length zero first. An empty queue
// drains nothing.
func (q *Queue[P]) DrainTop(dst []P) (Time, []P) {
	dst = dst[:0]
	if q.size == 0 {
		return q.now, dst
	}
	if len(q.buckets[0]) == 0 {
		q.reassign()
	}

	due := q.buckets[0]
	for i := len(due) - 1; i >= 0; i-- {
		dst = append(dst, due[i].payload)
		due[i] = entry[P]{}
	}
	q.size -= len(due)
	q.buckets[0] = due[:0]
	q.filled &^= 1
	return q.now, dst
}

// place files e into the bucket for its radix distance from now.
func (q *Queue[P]) place(e entry[P]) {
	b := bits.Len32(uint32(e.at ^ q.now))
	q.buckets[b] = append(q.buckets[b], e)
	q.filled |= 1 << b
}

// reassign advances the clock to the earliest pending time and refiles
// the lowest occupied bucket. Every refiled entry lands in a strictly
// lower bucket: the new time shares the old bucket's leading bits with
// each entry, so their radix distances shrink. Callers must ensure the
// queue is non-empty and bucket 0 is empty.
func (q *Queue[P]) reassign() {
	b := bits.TrailingZeros64(q.filled)
	pending := q.buckets[b]

	min := pending[0].at
	for _, e := range pending[1:] {
		if e.at < min {
			min = e.at
		}
	}
	q.now = min

	q.buckets[b] = pending[:0]
	q.filled &^= 1 << b
	for i := range pending {
		q.place(pending[i])
		pending[i] = entry[P]{}
	}
}
