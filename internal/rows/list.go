package rows

// List is an ordered sequence of items kept in display order.
//
// The zero value is an empty list ready for use.
type List[T any] struct {
	items     []T
	observers []*subscription
}

type subscription struct {
	observer Observer
}

// New returns a list seeded with a copy of items.
func New[T any](items ...T) *List[T] {
	l := &List[T]{items: make([]T, len(items))}
	copy(l.items, items)
	return l
}

// Len returns the number of rows.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item in row index.
func (l *List[T]) At(index int) (T, error) {
	var zero T
	if err := checkIndex("at", index, len(l.items)); err != nil {
		return zero, err
	}
	return l.items[index], nil
}

// Items returns a copy of the sequence in display order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Subscribe registers o for change notifications. Observers are called in
// subscription order. The returned func removes the subscription.
func (l *List[T]) Subscribe(o Observer) (cancel func()) {
	sub := &subscription{observer: o}
	l.observers = append(l.observers, sub)
	return func() {
		for i, s := range l.observers {
			if s == sub {
				l.observers = append(l.observers[:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

func (l *List[T]) notify(c Change) {
	// Copy so an observer may unsubscribe while being notified.
	subs := append([]*subscription(nil), l.observers...)
	for _, s := range subs {
		s.observer.RowsChanged(c)
	}
}

// Append adds item after the last row and returns its index.
func (l *List[T]) Append(item T) int {
	l.items = append(l.items, item)
	index := len(l.items) - 1
	l.notify(Change{Kind: Inserted, Index: index})
	return index
}

// InsertAt places item at row index, shifting later rows down by one.
// index may equal Len(), which appends.
func (l *List[T]) InsertAt(index int, item T) error {
	if err := checkIndex("insert", index, len(l.items)+1); err != nil {
		return err
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
	l.notify(Change{Kind: Inserted, Index: index})
	return nil
}

// RemoveAt deletes row index and returns the removed item. Later rows move
// up by one.
func (l *List[T]) RemoveAt(index int) (T, error) {
	var zero T
	if err := checkIndex("remove", index, len(l.items)); err != nil {
		return zero, err
	}
	item := l.items[index]
	copy(l.items[index:], l.items[index+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	l.notify(Change{Kind: Deleted, Index: index})
	return item, nil
}

// InsertionOffset converts a destination row, expressed in the index space
// after the move, into the gap offset expected by MoveToOffset.
func InsertionOffset(source, destination int) int {
	if source < destination {
		return destination + 1
	}
	return destination
}

// MoveTo moves the item in row source so that it ends up in row
// destination. Both indices must be in [0, Len()).
func (l *List[T]) MoveTo(source, destination int) error {
	if err := checkIndex("move source", source, len(l.items)); err != nil {
		return err
	}
	if err := checkIndex("move destination", destination, len(l.items)); err != nil {
		return err
	}
	return l.MoveToOffset(source, InsertionOffset(source, destination))
}

// MoveToOffset moves the item in row source in front of the item that was
// at offset before the move. offset is in [0, Len()]; Len() moves the item
// to the end.
func (l *List[T]) MoveToOffset(source, offset int) error {
	if err := checkIndex("move source", source, len(l.items)); err != nil {
		return err
	}
	if err := checkIndex("move offset", offset, len(l.items)+1); err != nil {
		return err
	}

	target := offset
	if offset > source {
		target--
	}
	if target == source {
		return nil
	}

	item := l.items[source]
	if target < source {
		copy(l.items[target+1:source+1], l.items[target:source])
	} else {
		copy(l.items[source:target], l.items[source+1:target+1])
	}
	l.items[target] = item

	l.notify(Change{Kind: Moved, Index: target, From: source, To: target})
	return nil
}
