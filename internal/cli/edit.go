package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"arrayfile"
	"arrayfile/value"
)

// removalDelay is the fixed time an item stays in the pending-removal state
// before it is spliced out. During the delay the item is still rendered,
// faded, and frozen for edits.
const removalDelay = 500 * time.Millisecond

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	pendingStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a module's records interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := arrayfile.LoadContext(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}

			savePath := filepath.Join(filepath.Dir(args[0]), doc.OutputName())
			m := newEditModel(doc, savePath)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// removalResolvedMsg fires when an item's pending-removal delay elapses. It
// carries the item's stable identity, not its index: with two removals
// pending, resolving the first shifts indices but the identity still finds
// the right element.
type removalResolvedMsg struct{ id string }

type editModel struct {
	doc      *arrayfile.Document
	savePath string

	cursor  int // selected item
	field   int // selected field within the item
	editing bool
	input   textinput.Model

	status string
	errMsg string
}

func newEditModel(doc *arrayfile.Document, savePath string) editModel {
	ti := textinput.New()
	ti.CharLimit = 0
	return editModel{doc: doc, savePath: savePath, input: ti}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case removalResolvedMsg:
		doc, err := m.doc.CompleteRemoval(msg.id)
		if err != nil {
			// The item is already gone; nothing to resolve.
			return m, nil
		}
		m.doc = doc
		if m.cursor >= m.doc.Len() && m.cursor > 0 {
			m.cursor = m.doc.Len() - 1
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m editModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.errMsg = "", ""

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.field = 0
		}

	case "down", "j":
		if m.cursor < m.doc.Len()-1 {
			m.cursor++
			m.field = 0
		}

	case "left", "h":
		if m.field > 0 {
			m.field--
		}

	case "right", "l":
		if m.field < len(m.fieldKeys())-1 {
			m.field++
		}

	case "enter":
		if m.doc.Len() == 0 || m.cursorPending() {
			return m, nil
		}
		cur := m.currentText()
		m.input.SetValue(cur)
		m.input.CursorEnd()
		m.input.Focus()
		m.editing = true
		return m, textinput.Blink

	case "a":
		m.doc = m.doc.AppendItem()
		m.cursor = m.doc.Len() - 1
		m.field = 0

	case "d":
		if m.doc.Len() == 0 || m.cursorPending() {
			return m, nil
		}
		id, ok := m.doc.ItemID(m.cursor)
		if !ok {
			return m, nil
		}
		doc, err := m.doc.RemoveItem(id)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.doc = doc
		return m, tea.Tick(removalDelay, func(time.Time) tea.Msg {
			return removalResolvedMsg{id: id}
		})

	case "s":
		if err := os.WriteFile(m.savePath, arrayfile.Render(m.doc), 0o644); err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = "saved " + m.savePath
		}
	}
	return m, nil
}

func (m editModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		doc, err := m.doc.Write(m.currentPath(), parseLiteralArg(m.input.Value()))
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.doc = doc
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	var b []byte
	out := func(s string) { b = append(b, s...) }

	out(titleStyle.Render(fmt.Sprintf("%s — %d item(s)", m.doc.ExportName, m.doc.Len())))
	out("\n")
	out(dimStyle.Render("↑/↓ item  ←/→ field  ⏎ edit  a add  d delete  s save  q quit"))
	out("\n\n")

	for i := 0; i < m.doc.Len(); i++ {
		prefix := "  "
		if i == m.cursor {
			prefix = "▸ "
		}
		label := itemLabel(m.doc.Root.Elems[i])

		style := normalStyle
		if id, ok := m.doc.ItemID(i); ok && m.doc.IsPending(id) {
			style = pendingStyle
			label += "  (removing)"
		} else if i == m.cursor {
			style = selectedStyle
		}
		out(prefix + style.Render(fmt.Sprintf("%d. %s", i, label)))
		out("\n")
	}

	if m.doc.Len() > 0 && !m.cursorPending() {
		out("\n")
		keys := m.fieldKeys()
		if len(keys) == 0 {
			out(m.renderField("(value)", m.currentText(), true))
		} else {
			for fi, key := range keys {
				out(m.renderField(key, m.fieldText(key), fi == m.field))
			}
		}
	}

	out("\n")
	if m.errMsg != "" {
		out(errorStyle.Render(m.errMsg))
		out("\n")
	} else if m.status != "" {
		out(statusStyle.Render(m.status))
		out("\n")
	}
	return string(b)
}

func (m editModel) renderField(key, text string, selected bool) string {
	marker := "   "
	if selected {
		marker = " ▸ "
	}
	if selected && m.editing {
		return marker + dimStyle.Render(key+": ") + m.input.View() + "\n"
	}
	style := normalStyle
	if selected {
		style = selectedStyle
	}
	return marker + dimStyle.Render(key+": ") + style.Render(text) + "\n"
}

// fieldKeys returns the editable keys of the selected item, or nil when the
// item is a scalar edited as a whole.
func (m editModel) fieldKeys() []string {
	if m.cursor >= m.doc.Len() {
		return nil
	}
	if obj, ok := m.doc.Root.Elems[m.cursor].(*value.Object); ok {
		return obj.Keys()
	}
	return nil
}

// currentPath addresses the node being edited: item.field for record items,
// just the item for scalar items.
func (m editModel) currentPath() arrayfile.Path {
	keys := m.fieldKeys()
	if len(keys) == 0 {
		return arrayfile.Path{arrayfile.Index(m.cursor)}
	}
	return arrayfile.Path{arrayfile.Index(m.cursor), arrayfile.Key(keys[m.field])}
}

func (m editModel) currentText() string {
	v, err := m.doc.Read(m.currentPath())
	if err != nil {
		return ""
	}
	return editText(v)
}

func (m editModel) fieldText(key string) string {
	v, err := m.doc.Read(arrayfile.Path{arrayfile.Index(m.cursor), arrayfile.Key(key)})
	if err != nil {
		return ""
	}
	return editText(v)
}

func (m editModel) cursorPending() bool {
	id, ok := m.doc.ItemID(m.cursor)
	return ok && m.doc.IsPending(id)
}

// editText is the form of a value placed into the text input: bare text for
// strings, literal notation for everything else so it decodes back to the
// same kind on commit.
func editText(v value.Value) string {
	if s, ok := v.(*value.String); ok {
		return s.Val
	}
	return v.String()
}

// itemLabel is the one-line summary of an item in the list: its first field
// value for records, its literal form otherwise.
func itemLabel(v value.Value) string {
	if obj, ok := v.(*value.Object); ok && len(obj.Pairs) > 0 {
		return obj.Pairs[0].Value.String()
	}
	label := v.String()
	if len(label) > 60 {
		label = label[:57] + "..."
	}
	return label
}
