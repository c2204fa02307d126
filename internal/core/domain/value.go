package domain

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindStr is a plain string value.
	KindStr Kind = iota
	// KindList is an ordered list of strings.
	KindList
)

// String returns the Redis type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStr:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the entity stored under a key: either *Str or *List.
type Value interface {
	Kind() Kind
	isValue()
}

// Str holds a string value. It is replaced as a whole, never edited.
type Str struct {
	Text string
}

// NewStr creates a string value.
func NewStr(text string) *Str {
	return &Str{Text: text}
}

// Kind implements Value.
func (*Str) Kind() Kind { return KindStr }

func (*Str) isValue() {}

// List holds an ordered sequence of strings. Index 0 is the head.
type List struct {
	items []string
}

// NewList creates a list holding items in the given order.
func NewList(items ...string) *List {
	l := &List{items: make([]string, len(items))}
	copy(l.items, items)
	return l
}

// Kind implements Value.
func (*List) Kind() Kind { return KindList }

func (*List) isValue() {}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// PushFront inserts each element at the head, one after another, so
// PushFront("a", "b", "c") leaves the list starting with c, b, a.
// Returns the resulting length.
func (l *List) PushFront(elements ...string) int {
	grown := make([]string, len(elements), len(elements)+len(l.items))
	for i, e := range elements {
		grown[len(elements)-1-i] = e
	}
	l.items = append(grown, l.items...)
	return len(l.items)
}

// PopFront removes up to n elements from the head and returns them in
// removal order. Fewer than n are returned when the list runs out.
func (l *List) PopFront(n int) []string {
	if n <= 0 || len(l.items) == 0 {
		return nil
	}
	if n > len(l.items) {
		n = len(l.items)
	}
	popped := make([]string, n)
	copy(popped, l.items[:n])
	l.items = l.items[n:]
	return popped
}

// Range returns the elements from start to stop, both inclusive.
// Negative indexes count from the tail (-1 is the last element).
// Out-of-range bounds are clamped; an empty range returns nil.
func (l *List) Range(start, stop int) []string {
	n := len(l.items)
	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += n
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return nil
	}

	out := make([]string, stop-start+1)
	copy(out, l.items[start:stop+1])
	return out
}

// Items returns a copy of all elements, head first.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
