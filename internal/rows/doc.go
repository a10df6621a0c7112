// Package rows implements the ordered list that backs an editable list display.
//
// A List holds an ordered sequence whose order is the display order: the
// element at index i is shown in row i. Every row index in [0, Len()) maps
// to exactly one element. The sequence is changed only through Append,
// InsertAt, RemoveAt, MoveTo and MoveToOffset. After each successful
// mutation the list tells its observers which rows were inserted, deleted or
// moved, so a display surface can animate the matching row views.
//
// # Move Index Spaces
//
// Moves come in two index conventions:
//
//   - MoveTo(source, destination): destination is the row the element
//     occupies after the move. This is what list widgets report when a row
//     has been dragged.
//   - MoveToOffset(source, offset): offset is a gap in the sequence before
//     the element is removed, in [0, Len()]. The element lands in front of
//     whatever was at offset.
//
// Removing the source shifts every later index down by one, so the two
// differ by one whenever source < destination. InsertionOffset converts a
// destination to an offset. MoveTo applies that conversion itself, so
// callers never compute it.
//
// # Failure Semantics
//
// Operations are synchronous. An index outside its valid range yields a
// *RangeError, which matches ErrOutOfRange under errors.Is, and the sequence
// is left untouched. There is no partial application.
//
// # Thread Safety
//
// List and Controller do no locking. They are meant to be driven from a
// single event loop (the MCP read loop, the terminal UI's update loop).
// Callers sharing one across goroutines must serialize access themselves.
package rows
