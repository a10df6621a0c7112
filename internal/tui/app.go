// Package tui is a terminal editor for the row list, built on bubbletea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/listvision-mcp/internal/rows"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyRowStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// App edits a rows.Controller from the keyboard.
type App struct {
	rows   *rows.Controller
	cursor int
	adding bool
	input  textinput.Model
	keys   keyMap
	help   help.Model

	status   string
	err      error
	quitting bool
	cancel   func()
}

// New creates an editor for c. The editor subscribes to c until it quits,
// so changes made elsewhere show up in the status line too.
func New(c *rows.Controller) *App {
	input := textinput.New()
	input.Placeholder = "new row"
	input.Prompt = "+ "

	a := &App{
		rows:  c,
		input: input,
		keys:  defaultKeys(),
		help:  help.New(),
	}
	a.cancel = c.Subscribe(rows.ObserverFunc(a.rowsChanged))
	return a
}

func (a *App) rowsChanged(c rows.Change) {
	a.status = c.String()
	a.err = nil
	a.clampCursor()
}

func (a *App) clampCursor() {
	if n := a.rows.RowCount(); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		if a.adding {
			return a.updateAdding(m)
		}
		return a.updateBrowsing(m)
	}
	return a, nil
}

func (a *App) updateAdding(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.stopAdding()
		a.status = "add cancelled"
		return a, nil
	case key.Matches(m, a.keys.Confirm):
		label := a.input.Value()
		a.stopAdding()
		index, err := a.rows.Append(label)
		if errors.Is(err, rows.ErrEmptyItem) {
			a.status = "nothing to add"
			return a, nil
		}
		if err != nil {
			a.err = err
			return a, nil
		}
		a.cursor = index
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) stopAdding() {
	a.adding = false
	a.input.Blur()
	a.input.Reset()
}

func (a *App) updateBrowsing(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := a.rows.Editing()

	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < a.rows.RowCount()-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Edit):
		if a.rows.ToggleEditing() {
			a.status = "editing"
		} else {
			a.status = "done editing"
		}
	case key.Matches(m, a.keys.Add) && !editing:
		a.adding = true
		return a, a.input.Focus()
	case key.Matches(m, a.keys.Delete) && editing:
		if a.rows.RowCount() > 0 {
			a.err = a.rows.OnCommit(rows.EditDelete, a.cursor)
		}
	case key.Matches(m, a.keys.MoveUp) && editing:
		a.move(a.cursor - 1)
	case key.Matches(m, a.keys.MoveDown) && editing:
		a.move(a.cursor + 1)
	}
	return a, nil
}

// move drags the row under the cursor to row to. Moving past either end
// is ignored rather than reported.
func (a *App) move(to int) {
	if to < 0 || to >= a.rows.RowCount() {
		return
	}
	if err := a.rows.MoveTo(a.cursor, to); err != nil {
		a.err = err
		return
	}
	a.cursor = to
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	editing := a.rows.Editing()

	var b strings.Builder
	title := fmt.Sprintf("Rows (%d)", a.rows.RowCount())
	b.WriteString(titleStyle.Render(title))
	if editing {
		b.WriteString(" " + editingStyle.Render("[editing]"))
	}
	b.WriteString("\n\n")

	if a.rows.RowCount() == 0 {
		b.WriteString(emptyRowStyle.Render("  no rows"))
		b.WriteString("\n")
	}
	for i := 0; i < a.rows.RowCount(); i++ {
		label, err := a.rows.RowAt(i)
		if err != nil {
			break
		}
		marker := "  "
		if editing {
			marker = "≡ "
		}
		line := marker + label
		if i == a.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if a.adding {
		b.WriteString("\n")
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case a.err != nil:
		b.WriteString(errorStyle.Render(a.err.Error()))
	case a.status != "":
		b.WriteString(statusStyle.Render(a.status))
	}
	b.WriteString("\n")
	b.WriteString(a.help.ShortHelpView(a.keys.help(editing, a.adding)))
	return b.String()
}

// Run starts the editor on the terminal and blocks until the user quits.
func Run(c *rows.Controller) error {
	_, err := tea.NewProgram(New(c)).Run()
	return err
}
