package iter

import (
	"strings"

	"github.com/kolkov/rxgen/internal/charset"
)

// single yields one fixed value.
type single struct {
	value string
	done  bool
}

// Single returns an iterator over exactly one value.
func Single(value string) Iterator {
	return &single{value: value}
}

func (it *single) HasNext() bool { return !it.done }

func (it *single) Next() string {
	if it.done {
		exhausted("single")
	}
	it.done = true
	return it.value
}

func (it *single) Current() string {
	if !it.done {
		return ""
	}
	return it.value
}

func (it *single) Reset() { it.done = false }

// array yields every rune of a set in set order.
type array struct {
	set charset.Set
	i   int
	cur string
}

// Array returns an iterator over the runes of set.
func Array(set charset.Set) Iterator {
	return &array{set: set}
}

func (it *array) HasNext() bool { return it.i < it.set.Len() }

func (it *array) Next() string {
	if !it.HasNext() {
		exhausted("array")
	}
	it.cur = string(it.set.At(it.i))
	it.i++
	return it.cur
}

func (it *array) Current() string { return it.cur }

func (it *array) Reset() {
	it.i = 0
	it.cur = ""
}

// odometer yields the cartesian product of its children. The rightmost
// child advances fastest; when it runs out it is reset and the carry moves
// left. Zero children yield one empty string.
type odometer struct {
	children []Iterator
	started  bool
	cur      string
}

// Product returns the cartesian product of children in odometer order.
func Product(children ...Iterator) Iterator {
	return &odometer{children: children}
}

func (it *odometer) HasNext() bool {
	if !it.started {
		for _, c := range it.children {
			if !c.HasNext() {
				return false
			}
		}
		return true
	}
	for _, c := range it.children {
		if c.HasNext() {
			return true
		}
	}
	return false
}

func (it *odometer) Next() string {
	if !it.HasNext() {
		exhausted("product")
	}
	from := 0
	if it.started {
		from = len(it.children) - 1
		for !it.children[from].HasNext() {
			from--
		}
	}
	it.started = true
	if len(it.children) == 0 {
		it.cur = ""
		return it.cur
	}
	it.children[from].Next()
	// Children right of the carry restart; they are pulled left to right
	// so backreferences see the groups before them.
	for _, c := range it.children[from+1:] {
		c.Reset()
		c.Next()
	}
	var sb strings.Builder
	for _, c := range it.children {
		sb.WriteString(c.Current())
	}
	it.cur = sb.String()
	return it.cur
}

func (it *odometer) Current() string { return it.cur }

func (it *odometer) Reset() {
	for _, c := range it.children {
		c.Reset()
	}
	it.started = false
	it.cur = ""
}

// concat yields every value of each child in turn.
type concat struct {
	children []Iterator
	i        int
	cur      string
}

// Concat returns an iterator over the values of children in order.
func Concat(children ...Iterator) Iterator {
	return &concat{children: children}
}

func (it *concat) HasNext() bool {
	for it.i < len(it.children) && !it.children[it.i].HasNext() {
		// Leaving an alternative drops the captures it made.
		it.children[it.i].Reset()
		it.i++
	}
	return it.i < len(it.children)
}

func (it *concat) Next() string {
	if !it.HasNext() {
		exhausted("alternation")
	}
	it.cur = it.children[it.i].Next()
	return it.cur
}

func (it *concat) Current() string { return it.cur }

func (it *concat) Reset() {
	for _, c := range it.children {
		c.Reset()
	}
	it.i = 0
	it.cur = ""
}

// repeat yields all values of length min, then min+1, up to max. The values
// of length L come from an odometer over L fresh copies of the child.
type repeat struct {
	child    func() Iterator
	min, max int
	nonEmpty bool // the child has at least one value

	length int
	odo    Iterator
	cur    string
}

// Repeat returns an iterator over min..max concatenated values of the
// iterators made by child. max must be >= min.
func Repeat(child func() Iterator, min, max int) Iterator {
	it := &repeat{
		child:    child,
		min:      min,
		max:      max,
		nonEmpty: child().HasNext(),
	}
	it.Reset()
	return it
}

func (it *repeat) HasNext() bool {
	for it.odo == nil || !it.odo.HasNext() {
		if it.length >= it.max {
			return false
		}
		if it.odo != nil {
			it.odo.Reset()
		}
		it.length++
		if it.length > 0 && !it.nonEmpty {
			it.length = it.max
			return false
		}
		copies := make([]Iterator, it.length)
		for i := range copies {
			copies[i] = it.child()
		}
		it.odo = Product(copies...)
	}
	return true
}

func (it *repeat) Next() string {
	if !it.HasNext() {
		exhausted("repeat")
	}
	it.cur = it.odo.Next()
	return it.cur
}

func (it *repeat) Current() string { return it.cur }

func (it *repeat) Reset() {
	if it.odo != nil {
		it.odo.Reset()
	}
	it.length = it.min - 1
	it.odo = nil
	it.cur = ""
}

// group publishes every value of its child into a registry slot.
type group struct {
	child  Iterator
	reg    *Registry
	handle int
	cur    string
}

// Group returns an iterator that records each value of child in slot
// handle of reg.
func Group(child Iterator, reg *Registry, handle int) Iterator {
	return &group{child: child, reg: reg, handle: handle}
}

func (it *group) HasNext() bool { return it.child.HasNext() }

func (it *group) Next() string {
	if !it.HasNext() {
		exhausted("group")
	}
	it.cur = it.child.Next()
	it.reg.write(it.handle, it.cur, it)
	return it.cur
}

func (it *group) Current() string { return it.cur }

// Reset also withdraws the group's capture, so a backreference pulled after
// leaving the group no longer sees it.
func (it *group) Reset() {
	it.child.Reset()
	it.reg.release(it.handle, it)
	it.cur = ""
}

// ref yields the value of a registry slot once, read when pulled.
type ref struct {
	reg    *Registry
	handle int
	done   bool
	cur    string
}

// Ref returns a single-shot iterator over the current value of slot
// handle. The slot is empty until its group produced a value.
func Ref(reg *Registry, handle int) Iterator {
	return &ref{reg: reg, handle: handle}
}

func (it *ref) HasNext() bool { return !it.done }

func (it *ref) Next() string {
	if it.done {
		exhausted("backreference")
	}
	it.done = true
	it.cur = it.reg.Get(it.handle)
	return it.cur
}

func (it *ref) Current() string { return it.cur }

func (it *ref) Reset() {
	it.done = false
	it.cur = ""
}
