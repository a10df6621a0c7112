package rows

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// EditKind is the kind of edit a display surface commits for a row.
type EditKind string

const (
	EditDelete EditKind = "delete"
	EditInsert EditKind = "insert"
)

// DataSource is what a list display needs from its backing model. Toolkit
// bindings (the MCP server, the terminal editor) depend on this rather than
// on Controller.
type DataSource interface {
	RowCount() int
	RowAt(index int) (string, error)
	OnCommit(kind EditKind, index int) error
}

// Controller owns a List of row labels and binds it to a display surface.
type Controller struct {
	list    *List[string]
	editing bool

	// Placeholder produces the label for rows inserted through OnCommit.
	// When nil, insert commits are rejected with ErrUnsupportedEdit.
	Placeholder func(index int) string
}

var _ DataSource = (*Controller)(nil)

// NewController returns a controller seeded with a copy of labels.
func NewController(labels []string) *Controller {
	return &Controller{list: New(labels...)}
}

// List exposes the underlying list.
func (c *Controller) List() *List[string] {
	return c.list
}

// Subscribe registers o for change notifications on the underlying list.
func (c *Controller) Subscribe(o Observer) (cancel func()) {
	return c.list.Subscribe(o)
}

func (c *Controller) RowCount() int {
	return c.list.Len()
}

func (c *Controller) RowAt(index int) (string, error) {
	return c.list.At(index)
}

// Rows returns a copy of all labels in display order.
func (c *Controller) Rows() []string {
	return c.list.Items()
}

// OnCommit applies an edit the user confirmed on row index.
func (c *Controller) OnCommit(kind EditKind, index int) error {
	switch kind {
	case EditDelete:
		_, err := c.list.RemoveAt(index)
		return err
	case EditInsert:
		if c.Placeholder == nil {
			return ErrUnsupportedEdit
		}
		return c.list.InsertAt(index, c.Placeholder(index))
	default:
		return ErrUnsupportedEdit
	}
}

// Append adds label as the last row. Blank labels are rejected.
func (c *Controller) Append(label string) (int, error) {
	if strings.TrimSpace(label) == "" {
		return 0, ErrEmptyItem
	}
	return c.list.Append(label), nil
}

func (c *Controller) RemoveAt(index int) (string, error) {
	return c.list.RemoveAt(index)
}

func (c *Controller) MoveTo(source, destination int) error {
	return c.list.MoveTo(source, destination)
}

// CanMove reports whether row index may be dragged.
func (c *Controller) CanMove(index int) bool {
	return index >= 0 && index < c.list.Len()
}

func (c *Controller) Editing() bool {
	return c.editing
}

func (c *Controller) SetEditing(editing bool) {
	c.editing = editing
}

// ToggleEditing flips editing mode and returns the new state.
func (c *Controller) ToggleEditing() bool {
	c.editing = !c.editing
	return c.editing
}

// IndexOf returns the first row whose label equals label, or -1.
func (c *Controller) IndexOf(label string) int {
	for i, item := range c.list.items {
		if item == label {
			return i
		}
	}
	return -1
}

// Suggest returns the row whose label is closest to label by edit distance,
// ignoring case. ok is false for an empty list.
func (c *Controller) Suggest(label string) (index int, suggestion string, ok bool) {
	best := -1
	bestDist := 0
	needle := strings.ToLower(label)
	for i, item := range c.list.items {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(item))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, "", false
	}
	return best, c.list.items[best], true
}
