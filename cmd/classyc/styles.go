package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/classy/internal/abi"
	"github.com/wippyai/classy/object"
)

type styles struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	member   lipgloss.Style
	typ      lipgloss.Style
	selected lipgloss.Style
	err      lipgloss.Style
	help     lipgloss.Style
}

// newStyles returns colored styles when stdout is a terminal.
func newStyles(noColor bool) styles {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),
		member: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")),
		typ: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}

// section renders a demo section title.
func (st styles) section(title string) string {
	return st.heading.Render(title)
}

// renderLayout prints a class's composed layout as plain sections.
func renderLayout(st styles, c *object.Class) string {
	l := c.Layout()
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s size=%d align=%d depth=%d\n",
		st.title.Render(c.Name()), st.help.Render(c.Symbol("")), l.Size, l.Align, l.Depth())

	b.WriteString(st.heading.Render("fields") + "\n")
	for _, f := range l.Fields {
		fmt.Fprintf(&b, "  %4d  %-20s %-6s %s\n", f.Offset, st.member.Render(f.Name),
			st.typ.Render(abi.Name(f.Type)), f.Owner.Name())
	}
	b.WriteString(st.heading.Render("events") + "\n")
	for _, e := range l.Events {
		fmt.Fprintf(&b, "  %4d  %-20s %s\n", e.Index, st.member.Render(e.Name), e.Owner.Name())
	}
	b.WriteString(st.heading.Render("methods") + "\n")
	for _, m := range l.Methods {
		kind := "sync"
		if m.Async {
			kind = "async"
		}
		fmt.Fprintf(&b, "  %4d  %-20s %-5s %s -> %s\n", m.Index, st.member.Render(m.Name), kind,
			st.typ.Render(m.Sig.String()), m.Implementor().Name())
	}
	b.WriteString(st.heading.Render("interfaces") + "\n")
	for _, i := range l.Interfaces {
		fmt.Fprintf(&b, "  %s from %s\n", st.member.Render(i.Interface.Name()), i.Owner.Name())
	}
	return b.String()
}
