package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/experiment"
	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/render"
	"github.com/san-kum/whatif/internal/storage"
)

// loadConfig resolves --preset, then --config, then DefaultConfig,
// and applies --set on a copy of the params.
func loadConfig() (*config.Config, error) {
	var base *config.Config
	switch {
	case preset != "":
		model, name := splitPreset(preset, config.DefaultModel)
		base = config.GetPreset(model, name)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s/%s", model, name)
		}
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		base = cfg
	default:
		base = config.DefaultConfig()
	}

	cfg := *base
	cfg.Params = make(map[string]float64, len(base.Params)+len(assignments))
	for k, v := range base.Params {
		cfg.Params[k] = v
	}
	overrides, err := parseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}
	return &cfg, nil
}

// writeConfig saves the resolved config so it can be edited and passed back
// with --config.
func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func runAnalyses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, newRegistry(), slog.Default())
	if err := exp.Setup(); err != nil {
		return err
	}
	report, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "inputs:")
	if err := render.Params(out, exp.Instance().Model(), report.Params, renderOptions()); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := printReport(out, report); err != nil {
		return err
	}
	if noSave {
		return nil
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(report)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsaved: %s\n", runID)
	return nil
}

func printReport(w io.Writer, report *experiment.Report) error {
	opts := renderOptions()
	fmt.Fprintln(w, render.HeaderStyle.Render(report.Model))

	names := outputOrder(report.Model, report.Outputs)
	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = report.Outputs[name]
	}
	if err := render.Outputs(w, names, values, opts); err != nil {
		return err
	}

	for _, nt := range report.Tables {
		fmt.Fprintf(w, "\n%s\n", render.HeaderStyle.Render(nt.Name))
		if err := render.Table(w, nt.Table, opts); err != nil {
			return err
		}
	}
	if len(report.GoalSeeks) > 0 {
		fmt.Fprintln(w)
	}
	for _, gs := range report.GoalSeeks {
		if err := render.GoalSeek(w, gs.Name, gs.Spec, gs.Result, opts); err != nil {
			return err
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTABLES\tGOAL SEEKS\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			run.ID, run.Model, len(run.Tables), len(run.GoalSeeks), run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tables, err := store.LoadTables(args[0])
	if err != nil {
		return err
	}

	report := &experiment.Report{
		Model:   meta.Model,
		Outputs: meta.Outputs,
		Tables:  tables,
	}
	for _, rec := range meta.GoalSeeks {
		report.GoalSeeks = append(report.GoalSeeks, experiment.SeekOutcome{
			Name: rec.Name,
			Spec: goalseek.Spec{
				Output:        rec.Output,
				Target:        rec.Target,
				Input:         rec.Input,
				Lower:         rec.Lower,
				Upper:         rec.Upper,
				MaxIterations: rec.MaxIterations,
				Tolerance:     rec.Tolerance,
			},
			Result: goalseek.Result{
				Value:      rec.Value,
				Residual:   rec.Residual,
				Iterations: rec.Iterations,
				Converged:  rec.Converged,
			},
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s (%s)\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	return printReport(out, report)
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	tbl, err := store.LoadTable(args[0], args[1])
	if err != nil {
		return err
	}
	graph, err := render.Plot(tbl, plotCol, plotRows, 80)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tables, err := store.LoadTables(args[0])
	if err != nil {
		return err
	}
	if exportOut != "" {
		if err := storage.ExportJSONFile(exportOut, meta, tables); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", exportOut)
		return nil
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, tables)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	tbl, err := store.LoadTable(args[0], args[1])
	if err != nil {
		return err
	}
	return datatable.WriteCSV(cmd.OutOrStdout(), tbl)
}

// outputOrder lists the outputs in the model's declared order. Names the
// model does not declare follow alphabetically.
func outputOrder(model string, outputs map[string]float64) []string {
	names := make([]string, 0, len(outputs))
	seen := make(map[string]bool, len(outputs))
	if m, err := newRegistry().GetModel(model); err == nil {
		for _, name := range m.OutputNames() {
			if _, ok := outputs[name]; ok {
				names = append(names, name)
				seen[name] = true
			}
		}
	}
	var rest []string
	for name := range outputs {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
