package render

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/whatif/internal/datatable"
)

// Plot draws one column of a table against row order.
func Plot(t *datatable.Table, column string, height, width int) (string, error) {
	data, err := t.Column(column)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no data to plot")
	}

	caption := column
	if len(t.Inputs) > 0 {
		xs, _ := t.Column(t.Inputs[0])
		caption = fmt.Sprintf("%s vs %s (%g .. %g)", column, t.Inputs[0], xs[0], xs[len(xs)-1])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
