package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/render"
	"github.com/san-kum/whatif/internal/tui"
	"github.com/san-kum/whatif/internal/whatif"
)

func renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Precision = precision
	return opts
}

// newInstance builds the named model with the --set assignments applied.
func newInstance(model string) (*whatif.Instance, error) {
	m, err := newRegistry().GetModel(model)
	if err != nil {
		return nil, err
	}
	overrides, err := parseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	return m.New(overrides)
}

func listModels(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reg := newRegistry()
	for _, name := range reg.ListModels() {
		m, err := reg.GetModel(name)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintln(&b, render.HeaderStyle.Render(name))
		fmt.Fprintln(&b, "inputs:")
		defaults := m.Defaults()
		for _, p := range m.ParamNames() {
			fmt.Fprintf(&b, "  %-16s %-10g %s\n", p, defaults[p], m.Doc(p))
		}
		fmt.Fprintln(&b, "outputs:")
		for _, o := range m.OutputNames() {
			fmt.Fprintf(&b, "  %-16s %s\n", o, m.Doc(o))
		}
		fmt.Fprintln(out, render.Panel.Render(strings.TrimRight(b.String(), "\n")))
	}
	return nil
}

func evalModel(cmd *cobra.Command, args []string) error {
	inst, err := newInstance(args[0])
	if err != nil {
		return err
	}

	names := outputs
	if len(names) == 0 {
		names = inst.Model().OutputNames()
	}
	values, err := inst.Outputs(names)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := renderOptions()
	fmt.Fprintln(out, render.HeaderStyle.Render(inst.Model().Name()))
	fmt.Fprintln(out, "inputs:")
	if err := render.Params(out, inst.Model(), inst.Params(), opts); err != nil {
		return err
	}
	fmt.Fprintln(out, "outputs:")
	return render.Outputs(out, names, values, opts)
}

func dataTable(cmd *cobra.Command, args []string) error {
	inst, err := newInstance(args[0])
	if err != nil {
		return err
	}

	sweep := make([]datatable.Input, 0, len(inputs))
	for _, s := range inputs {
		in, err := parseInput(s)
		if err != nil {
			return err
		}
		sweep = append(sweep, in)
	}

	names := outputs
	if len(names) == 0 {
		names = newRegistry().DefaultOutputs(args[0])
	}

	slog.Debug("data table", "model", args[0], "inputs", len(sweep), "outputs", strings.Join(names, ","))
	tbl, err := datatable.RunParallel(cmd.Context(), inst, sweep, names, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asCSV {
		if err := datatable.WriteCSV(out, tbl); err != nil {
			return err
		}
	} else if err := render.Table(out, tbl, renderOptions()); err != nil {
		return err
	}

	if tablePlot != "" {
		graph, err := render.Plot(tbl, tablePlot, plotRows, 80)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func goalSeek(cmd *cobra.Command, args []string) error {
	inst, err := newInstance(args[0])
	if err != nil {
		return err
	}

	spec := goalseek.Spec{
		Output:        seekOutput,
		Target:        seekTarget,
		Input:         seekBy,
		Lower:         seekLower,
		Upper:         seekUpper,
		MaxIterations: maxIter,
		Tolerance:     tolerance,
	}
	slog.Debug("goal seek", "model", args[0], "output", spec.Output, "by", spec.Input,
		"lower", spec.Lower, "upper", spec.Upper)

	res, err := goalseek.Solve(inst, spec)
	if err != nil {
		return err
	}
	return render.GoalSeek(cmd.OutOrStdout(), "", spec, res, renderOptions())
}

func explore(cmd *cobra.Command, args []string) error {
	model := config.DefaultModel
	if len(args) > 0 {
		model = args[0]
	}
	inst, err := newInstance(model)
	if err != nil {
		return err
	}
	return tui.Run(inst, outputs, defaultSeek(inst.Model()))
}

// defaultSeek picks the first preset goal seek the model can solve.
func defaultSeek(m *whatif.Model) *goalseek.Spec {
	for _, name := range config.ListPresets(m.Name()) {
		for _, gs := range config.GetPreset(m.Name(), name).GoalSeeks {
			spec := gs.Spec()
			if m.IsOutput(spec.Output) && m.IsInput(spec.Input) {
				return &spec
			}
		}
	}
	return nil
}
