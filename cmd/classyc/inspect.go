package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/object"
)

type inspectModel struct {
	classes  []*object.Class
	table    table.Model
	st       styles
	selected int
}

func newInspectModel(classes []*object.Class, st styles) *inspectModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Kind", Width: 9},
			{Title: "Member", Width: 20},
			{Title: "Type", Width: 24},
			{Title: "Offset", Width: 7},
			{Title: "From", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	m := &inspectModel{classes: classes, table: t, st: st}
	m.table.SetRows(memberRows(classes[0]))
	return m
}

// memberRows lists every member of a class's layout.
func memberRows(c *object.Class) []table.Row {
	l := c.Layout()
	var rows []table.Row
	for _, f := range l.Fields {
		rows = append(rows, table.Row{"field", f.Name, abi.Name(f.Type), strconv.Itoa(int(f.Offset)), f.Owner.Name()})
	}
	for _, e := range l.Events {
		rows = append(rows, table.Row{"event", e.Name, "(" + paramList(e.Params) + ")", "", e.Owner.Name()})
	}
	for _, m := range l.Methods {
		kind := "method"
		if m.Async {
			kind = "async"
		}
		rows = append(rows, table.Row{kind, m.Name, m.Sig.String(), "", m.Implementor().Name()})
	}
	for _, i := range l.Interfaces {
		rows = append(rows, table.Row{"interface", i.Interface.Name(), "", "", i.Owner.Name()})
	}
	return rows
}

func paramList(params []wit.Type) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = abi.Name(p)
	}
	return strings.Join(names, ", ")
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if m.selected > 0 {
				m.selected--
				m.table.SetRows(memberRows(m.classes[m.selected]))
				m.table.GotoTop()
			}
			return m, nil
		case "right", "l", "tab":
			if m.selected < len(m.classes)-1 {
				m.selected++
				m.table.SetRows(memberRows(m.classes[m.selected]))
				m.table.GotoTop()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	var tabs []string
	for i, c := range m.classes {
		if i == m.selected {
			tabs = append(tabs, m.st.selected.Render(" "+c.Name()+" "))
		} else {
			tabs = append(tabs, " "+c.Name()+" ")
		}
	}

	c := m.classes[m.selected]
	l := c.Layout()
	var b strings.Builder
	b.WriteString(m.st.title.Render("Class Inspector"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  size=%d align=%d depth=%d\n\n", m.st.help.Render(c.Symbol("")), l.Size, l.Align, l.Depth())
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.st.help.Render("←/→ class • ↑/↓ member • q quit"))
	return b.String()
}

func runInspect(classes []*object.Class, st styles) error {
	p := tea.NewProgram(newInspectModel(classes, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
