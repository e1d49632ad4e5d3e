package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/whatif"
)

type Options struct {
	Precision int
	Lang      language.Tag
}

func DefaultOptions() Options {
	return Options{Precision: 2, Lang: language.English}
}

// Number formats v with digit grouping for the configured language.
func (o Options) Number(v float64) string {
	p := message.NewPrinter(o.Lang)
	return p.Sprintf(fmt.Sprintf("%%.%df", o.Precision), v)
}

// Table renders a data table as aligned, styled columns.
func Table(w io.Writer, t *datatable.Table, opts Options) error {
	names := t.Columns()
	cells := make([][]string, len(names))
	for j, name := range names {
		cells[j] = make([]string, 0, t.Len()+1)
		cells[j] = append(cells[j], name)
	}
	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Record(i) {
			cells[j] = append(cells[j], opts.Number(v))
		}
	}

	columns := make([]string, len(names))
	for j := range names {
		width := 0
		for _, c := range cells[j] {
			width = max(width, lipgloss.Width(c))
		}
		var b strings.Builder
		for i, c := range cells[j] {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(cellStyle(t, j, i, c).Width(width).Align(lipgloss.Right).Render(c))
		}
		columns[j] = b.String()
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, "  ")...)
	_, err := fmt.Fprintln(w, out)
	return err
}

func cellStyle(t *datatable.Table, col, row int, text string) lipgloss.Style {
	switch {
	case row == 0:
		return HeaderStyle
	case col < len(t.Inputs):
		return InputStyle
	case strings.HasPrefix(text, "-"):
		return NegativeStyle
	default:
		return ValueStyle
	}
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

// Outputs renders name/value pairs, one per line.
func Outputs(w io.Writer, names []string, values []float64, opts Options) error {
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for i, n := range names {
		if _, err := fmt.Fprintf(w, "  %-*s  %s\n", width, n, opts.Number(values[i])); err != nil {
			return err
		}
	}
	return nil
}

// Params renders the current parameter values of an instance.
func Params(w io.Writer, m *whatif.Model, p whatif.Params, opts Options) error {
	names := m.ParamNames()
	for _, out := range m.OutputNames() {
		if _, ok := p[out]; ok {
			names = append(names, out)
		}
	}
	values := make([]float64, len(names))
	for i, n := range names {
		values[i] = p[n]
	}
	return Outputs(w, names, values, opts)
}

// GoalSeek renders a one-line summary of a solved goal seek.
func GoalSeek(w io.Writer, name string, spec goalseek.Spec, res goalseek.Result, opts Options) error {
	status := FailStyle.Render("not converged")
	if res.Converged {
		status = OkStyle.Render("converged")
	}
	label := name
	if label == "" {
		label = "goal seek"
	}
	_, err := fmt.Fprintf(w, "%s: %s = %s gives %s = %s (residual %.3g, %d iterations, %s)\n",
		label, spec.Input, opts.Number(res.Value), spec.Output, opts.Number(spec.Target),
		res.Residual, res.Iterations, status)
	return err
}
