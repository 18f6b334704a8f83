package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/msgcodec/cdr"
)

const bytesPerRow = 16

type inspectModel struct {
	filename string
	data     []byte
	spans    []cdr.Span
	visible  []int
	filter   textinput.Model
	dump     viewport.Model
	selected int
	height   int
	state    modelState
}

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
)

func newInspectModel(filename string, data []byte, spans []cdr.Span) *inspectModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "field path"
	ti.Width = 40

	m := &inspectModel{
		filename: filename,
		data:     data,
		spans:    spans,
		filter:   ti,
		dump:     viewport.New(80, 10),
		height:   24,
	}
	m.applyFilter()
	return m
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.dump.Width = msg.Width
		m.dump.Height = max(msg.Height/3, 4)
		m.refreshDump()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.state = stateBrowse
				m.filter.Blur()
				if msg.String() == "esc" {
					m.filter.SetValue("")
					m.applyFilter()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshDump()
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
				m.refreshDump()
			}

		case "/":
			m.state = stateFilter
			return m, m.filter.Focus()

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.dump, cmd = m.dump.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *inspectModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, s := range m.spans {
		if q == "" || strings.Contains(strings.ToLower(spanLabel(s)), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = min(m.selected, max(len(m.visible)-1, 0))
	m.refreshDump()
}

func (m *inspectModel) current() (cdr.Span, bool) {
	if m.selected >= len(m.visible) {
		return cdr.Span{}, false
	}
	return m.spans[m.visible[m.selected]], true
}

func (m *inspectModel) refreshDump() {
	s, ok := m.current()
	if !ok {
		m.dump.SetContent(hexDump(m.data, 0, 0))
		return
	}
	m.dump.SetContent(hexDump(m.data, s.Offset, s.Offset+s.Size))
	row := s.Offset / bytesPerRow
	if row < m.dump.YOffset || row >= m.dump.YOffset+m.dump.Height {
		m.dump.SetYOffset(row)
	}
}

// hexDump renders data with the bytes in [from, to) highlighted.
func hexDump(data []byte, from, to int) string {
	var b strings.Builder
	for row := 0; row < len(data); row += bytesPerRow {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%06x ", row)))
		for i := row; i < min(row+bytesPerRow, len(data)); i++ {
			cell := fmt.Sprintf(" %02x", data[i])
			if i >= from && i < to {
				cell = selectedStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CDR Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d bytes)\n\n", len(m.data)))

	if len(m.visible) == 0 {
		b.WriteString(errorStyle.Render("no fields match"))
		b.WriteString("\n")
	}

	// Keep the list window around the cursor.
	rows := max(m.height-m.dump.Height-8, 3)
	start := max(m.selected-rows/2, 0)
	end := min(start+rows, len(m.visible))
	for i := start; i < end; i++ {
		s := m.spans[m.visible[i]]
		line := fmt.Sprintf("%6d %4d  %s%s %s",
			s.Offset, s.Size,
			strings.Repeat("  ", s.Depth), nameStyle.Render(spanLabel(s)),
			typeStyle.Render(s.Type))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s, ok := m.current(); ok {
		b.WriteString(valueStyle.Render(spanBytes(m.data, s)))
		b.WriteString("\n")
	}
	b.WriteString(m.dump.View())
	b.WriteString("\n")

	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • / filter • pgup/pgdown scroll • q quit"))
	}
	return b.String()
}
