package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/whatif"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const sparkPoints = 32

type explorer struct {
	inst    *whatif.Instance
	names   []string
	outputs []string
	seek    *goalseek.Spec

	cursor  int
	editing bool
	editBuf string
	status  string
	failed  bool

	width  int
	height int
}

// NewExplorer lets the user adjust the instance's inputs and watch the
// outputs. seek may be nil; when set, "g" solves it and applies the result.
func NewExplorer(inst *whatif.Instance, outputs []string, seek *goalseek.Spec) explorer {
	m := inst.Model()
	names := m.ParamNames()
	if seek != nil && !m.IsParam(seek.Input) {
		names = append(names, seek.Input)
	}
	if len(outputs) == 0 {
		outputs = m.OutputNames()
	}
	return explorer{
		inst:    inst,
		names:   names,
		outputs: outputs,
		seek:    seek,
		width:   80,
		height:  24,
	}
}

// Run starts the explorer on the terminal and blocks until it exits.
func Run(inst *whatif.Instance, outputs []string, seek *goalseek.Spec) error {
	p := tea.NewProgram(NewExplorer(inst, outputs, seek))
	_, err := p.Run()
	return err
}

func (m explorer) Init() tea.Cmd { return nil }

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m explorer) selected() string { return m.names[m.cursor] }

func (m explorer) handleKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "enter", " ":
		v, _ := m.inst.Get(m.selected())
		m.editing = true
		m.editBuf = strconv.FormatFloat(v, 'f', -1, 64)
	case "u":
		m.unpin()
	case "g":
		m.solve()
	case "r":
		m.inst.Reset()
		m.setStatus("reset to defaults", false)
	}
	return m, nil
}

func (m explorer) editKey(msg tea.KeyMsg) (explorer, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(m.editBuf, 64)
		if err != nil {
			m.setStatus(fmt.Sprintf("not a number: %q", m.editBuf), true)
		} else {
			m.set(m.selected(), v)
		}
		m.editing = false
		m.editBuf = ""
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m *explorer) nudge(dir float64) {
	name := m.selected()
	v, err := m.inst.Get(name)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.set(name, v+dir*stepFor(v))
}

func (m *explorer) set(name string, v float64) {
	if err := m.inst.Set(name, v); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("%s = %g", name, v), false)
}

func (m *explorer) solve() {
	if m.seek == nil {
		m.setStatus("no goal seek configured", true)
		return
	}
	res, err := goalseek.Solve(m.inst, *m.seek)
	if err != nil {
		var ce *whatif.ConvergenceError
		if errors.As(err, &ce) {
			m.setStatus(fmt.Sprintf("%v; best %s = %g", err, m.seek.Input, ce.Best), true)
			return
		}
		m.setStatus(err.Error(), true)
		return
	}
	m.set(m.seek.Input, res.Value)
	for i, name := range m.names {
		if name == m.seek.Input {
			m.cursor = i
		}
	}
	m.setStatus(fmt.Sprintf("%s = %g gives %s = %g after %d iterations",
		m.seek.Input, res.Value, m.seek.Output, m.seek.Target, res.Iterations), false)
}

// unpin releases the selected output, or the goal seek input when the
// selection is not pinned.
func (m *explorer) unpin() {
	name := m.selected()
	if !m.inst.IsPinned(name) && m.seek != nil && m.inst.IsPinned(m.seek.Input) {
		name = m.seek.Input
	}
	if !m.inst.IsPinned(name) {
		m.setStatus(fmt.Sprintf("%s is not pinned", name), true)
		return
	}
	m.inst.Unpin(name)
	m.setStatus(fmt.Sprintf("%s is computed again", name), false)
}

func (m *explorer) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

// stepFor returns a nudge size one decade below the magnitude of v.
func stepFor(v float64) float64 {
	if v == 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(math.Abs(v)))-1)
}

func (m explorer) View() string {
	var b strings.Builder

	b.WriteString(cyan.Bold(true).Render("whatif") + dim.Render("  "+m.inst.Model().Name()) + "\n\n")

	b.WriteString(white.Bold(true).Render("inputs") + "\n")
	for i, name := range m.names {
		cursor := "  "
		label := dim.Render(name)
		if i == m.cursor {
			cursor = magenta.Render("▸ ")
			label = white.Render(name)
		}
		value := m.valueText(name)
		if i == m.cursor && m.editing {
			value = yellow.Render(m.editBuf + "█")
		}
		b.WriteString(fmt.Sprintf("%s%-16s %s\n", cursor, label, value))
	}

	b.WriteString("\n" + white.Bold(true).Render("outputs") + "\n")
	for _, name := range m.outputs {
		v, err := m.inst.Output(name)
		text := green.Render(fmt.Sprintf("%.2f", v))
		if err != nil {
			text = red.Render(err.Error())
		} else if v < 0 {
			text = red.Render(fmt.Sprintf("%.2f", v))
		}
		b.WriteString(fmt.Sprintf("  %-16s %s\n", name, text))
	}

	if len(m.outputs) > 0 {
		b.WriteString("\n" + dim.Render(fmt.Sprintf("%s across %s ±50%%", m.outputs[0], m.selected())) + "\n")
		b.WriteString("  " + m.sweepLine(m.outputs[0]) + "\n")
	}

	if m.status != "" {
		style := green
		if m.failed {
			style = red
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + dim.Render("↑↓ select  ←→ adjust  enter edit  g goal seek  u unpin  r reset  q quit") + "\n")
	return b.String()
}

func (m explorer) valueText(name string) string {
	v, err := m.inst.Get(name)
	if err != nil {
		return red.Render(err.Error())
	}
	text := fmt.Sprintf("%g", v)
	if m.inst.IsPinned(name) {
		return yellow.Render(text + " (pinned)")
	}
	return white.Render(text)
}

// sweepLine sweeps the selected input around its current value.
func (m explorer) sweepLine(output string) string {
	name := m.selected()
	v, err := m.inst.Get(name)
	if err != nil {
		return ""
	}
	lo, hi := v*0.5, v*1.5
	if v == 0 {
		lo, hi = -1, 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	xs, err := datatable.Linspace(lo, hi, sparkPoints)
	if err != nil {
		return ""
	}
	tbl, err := datatable.Run(m.inst, []datatable.Input{{Name: name, Values: xs}}, []string{output})
	if err != nil {
		return red.Render(err.Error())
	}
	ys, _ := tbl.Column(output)
	return sparkline(ys, sparkPoints)
}
