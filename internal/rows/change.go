package rows

import "fmt"

// ChangeKind names what happened to the rows of a list.
type ChangeKind string

const (
	Inserted ChangeKind = "inserted"
	Deleted  ChangeKind = "deleted"
	Moved    ChangeKind = "moved"
)

// Change describes one mutation in row-index terms.
//
// For Inserted and Deleted, Index is the affected row. For Moved, From is
// the row before the move and To the row after it.
type Change struct {
	Kind  ChangeKind `json:"kind"`
	Index int        `json:"index"`
	From  int        `json:"from"`
	To    int        `json:"to"`
}

func (c Change) String() string {
	switch c.Kind {
	case Moved:
		return fmt.Sprintf("moved row %d to %d", c.From, c.To)
	default:
		return fmt.Sprintf("%s row %d", c.Kind, c.Index)
	}
}

// Observer is told about each successful mutation, after it is applied.
type Observer interface {
	RowsChanged(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// RowsChanged calls f(c).
func (f ObserverFunc) RowsChanged(c Change) { f(c) }
