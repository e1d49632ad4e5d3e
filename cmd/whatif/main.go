package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/whatif/internal/config"
	"github.com/san-kum/whatif/internal/registry"
)

var (
	dataDir string
	verbose bool
	// model evaluation
	assignments []string
	outputs     []string
	precision   int
	// data tables
	inputs    []string
	asCSV     bool
	tablePlot string
	workers   int
	plotCol   string
	plotRows  int
	// goal seek
	seekOutput string
	seekTarget float64
	seekBy     string
	seekLower  float64
	seekUpper  float64
	maxIter    int
	tolerance  float64
	// config file
	configFile string
	preset     string
	noSave     bool
	exportOut  string
)

// main registers the commands and flags and runs the root command, which
// opens the explorer on the default model when no subcommand is given.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "whatif",
		Short:         "break-even what-if analysis: data tables and goal seek",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return explore(cmd, []string{config.DefaultModel})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".whatif", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models with their inputs and outputs",
		Args:  cobra.NoArgs,
		RunE:  listModels,
	}

	evalCmd := &cobra.Command{
		Use:   "eval [model]",
		Short: "evaluate model outputs",
		Args:  cobra.ExactArgs(1),
		RunE:  evalModel,
	}
	evalCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")
	evalCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "outputs to compute (default all)")
	evalCmd.Flags().IntVar(&precision, "precision", 2, "decimal places")

	tableCmd := &cobra.Command{
		Use:   "table [model]",
		Short: "one-way or n-way data table",
		Args:  cobra.ExactArgs(1),
		RunE:  dataTable,
	}
	tableCmd.Flags().StringArrayVar(&inputs, "input", nil, "swept input name=start:stop:step or name=v1,v2,... (repeatable)")
	tableCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "outputs to record (default per model)")
	tableCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")
	tableCmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of a table")
	tableCmd.Flags().StringVar(&tablePlot, "plot", "", "plot this column")
	tableCmd.Flags().IntVar(&plotRows, "height", 10, "plot height")
	tableCmd.Flags().IntVar(&workers, "workers", 1, "goroutines evaluating rows")
	tableCmd.Flags().IntVar(&precision, "precision", 2, "decimal places")
	_ = tableCmd.MarkFlagRequired("input")

	seekCmd := &cobra.Command{
		Use:   "seek [model]",
		Short: "goal seek: find the input value that drives an output to a target",
		Args:  cobra.ExactArgs(1),
		RunE:  goalSeek,
	}
	seekCmd.Flags().StringVar(&seekOutput, "output", "profit", "output to drive")
	seekCmd.Flags().Float64Var(&seekTarget, "target", 0, "target value")
	seekCmd.Flags().StringVar(&seekBy, "by", "demand", "input to change")
	seekCmd.Flags().Float64Var(&seekLower, "lower", 0, "lower bound")
	seekCmd.Flags().Float64Var(&seekUpper, "upper", 1000, "upper bound")
	seekCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIterations, "iteration budget")
	seekCmd.Flags().Float64Var(&tolerance, "tol", 0, "absolute tolerance on the output (default 1e-6)")
	seekCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")
	seekCmd.Flags().IntVar(&precision, "precision", 2, "decimal places")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run every analysis of a config file or preset and save the run",
		Args:  cobra.NoArgs,
		RunE:  runAnalyses,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (model/preset or preset of the default model)")
	runCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&precision, "precision", 2, "decimal places")

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a config file from the defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset (model/preset or preset of the default model)")
	initCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the results of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&precision, "precision", 2, "decimal places")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [table]",
		Short: "plot a column of a stored data table",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotCol, "column", "profit", "column to plot")
	plotCmd.Flags().IntVar(&plotRows, "height", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [table]",
		Short: "export a stored data table to CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [model]",
		Short: "adjust inputs interactively and watch the outputs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  explore,
	}
	exploreCmd.Flags().StringArrayVar(&assignments, "set", nil, "input assignment name=value (repeatable)")
	exploreCmd.Flags().StringSliceVar(&outputs, "outputs", nil, "outputs to show (default all)")

	rootCmd.AddCommand(modelsCmd, evalCmd, tableCmd, seekCmd, runCmd, initCmd, listCmd, showCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, exploreCmd)
	return rootCmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newRegistry() *registry.Registry {
	return registry.New()
}
