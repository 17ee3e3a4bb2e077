// Package iter enumerates the strings matched by a pattern tree.
//
// Every node kind maps to a resettable iterator. Composite iterators own
// their children; capturing groups publish each value they produce into a
// shared Registry slot, and backreferences read that slot when they are
// pulled. Enumeration is lazy: nothing is produced until Next is called.
package iter

import (
	"errors"
	"fmt"
)

// ErrExhausted is wrapped by the value Next panics with when it is called
// on an iterator that has no more values.
var ErrExhausted = errors.New("iterator exhausted")

// Iterator is a resettable, lazy sequence of strings.
//
// Calling Next when HasNext reports false is a programming error and
// panics with an error wrapping ErrExhausted. Reset rewinds the iterator;
// draining it again yields the same sequence.
type Iterator interface {
	HasNext() bool
	Next() string
	Current() string // last value returned by Next, "" before the first
	Reset()
}

func exhausted(kind string) {
	panic(fmt.Errorf("%s: %w", kind, ErrExhausted))
}

// Registry holds the latest value of every capturing group, indexed by the
// handle assigned during resolution.
//
// Copies of a group inside a repetition share one slot. Each slot keeps the
// copies that currently hold a value, most recent last; a copy that is reset
// drops out and the previous copy's value shows through again.
type Registry struct {
	slots   [][]capture
	indexes []int // group index per handle
}

type capture struct {
	writer Iterator // nil for values stored with Set
	value  string
}

// NewRegistry creates a registry whose slot h belongs to group indexes[h].
func NewRegistry(indexes []int) *Registry {
	return &Registry{
		slots:   make([][]capture, len(indexes)),
		indexes: indexes,
	}
}

// Set replaces the value of slot handle.
func (r *Registry) Set(handle int, value string) {
	r.slots[handle] = append(r.slots[handle][:0], capture{value: value})
}

// Get returns the latest value of slot handle, "" if nothing is captured.
func (r *Registry) Get(handle int) string {
	slot := r.slots[handle]
	if len(slot) == 0 {
		return ""
	}
	return slot[len(slot)-1].value
}

func (r *Registry) write(handle int, value string, w Iterator) {
	r.release(handle, w)
	r.slots[handle] = append(r.slots[handle], capture{writer: w, value: value})
}

// release drops the value written by w from slot handle, if any.
func (r *Registry) release(handle int, w Iterator) {
	slot := r.slots[handle]
	for i, c := range slot {
		if c.writer == w {
			r.slots[handle] = append(slot[:i], slot[i+1:]...)
			return
		}
	}
}

// Clear empties every slot.
func (r *Registry) Clear() {
	for h := range r.slots {
		r.slots[h] = r.slots[h][:0]
	}
}

// Captured returns the non-empty slots keyed by group index.
func (r *Registry) Captured() map[int]string {
	m := make(map[int]string, len(r.slots))
	for h := range r.slots {
		if v := r.Get(h); v != "" {
			m[r.indexes[h]] = v
		}
	}
	return m
}

// Drain pulls at most limit values from it; limit < 0 means no limit.
// It never terminates on an infinite iterator without a limit.
func Drain(it Iterator, limit int) []string {
	var out []string
	for limit != 0 && it.HasNext() {
		out = append(out, it.Next())
		limit--
	}
	return out
}
