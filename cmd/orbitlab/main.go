package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/wlldxn/orbitlab/internal/config"
	"github.com/wlldxn/orbitlab/internal/metrics"
	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/sim"
	"github.com/wlldxn/orbitlab/internal/storage"
	"github.com/wlldxn/orbitlab/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	ticks       int
	seed        int64
	sampleEvery int
	frameRate   int
	bodyID      int
	sweepRuns   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "2-D orbital mechanics sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view with the default scenario.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless and store the result",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named preset scenario")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "override tick count")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "override random seed")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 0, "override sample interval")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a named preset scenario")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "override random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a scenario under a range of seeds and compare stability",
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use a named preset scenario")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "override tick count")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "first seed of the range")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds to run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyID, "body", 0, "body id to plot (0 = all orbiting bodies)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's sampled states to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-12s %d bodies, %d ticks\n", name, 1+len(cfg.Satellites), cfg.Ticks)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and flag overrides, with flags
// winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "custom"
	}

	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}

	return cfg, name, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(sys)
	runner.AddMetric(metrics.NewTotalEnergy(sys.G()))
	runner.AddMetric(metrics.NewEnergyDrift(sys.G()))
	runner.AddMetric(metrics.NewAngularMomentum())

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		Ticks:       cfg.Ticks,
		SampleEvery: cfg.SampleEvery,
	})
	if err != nil {
		return err
	}

	runID, err := st.Save(name, cfg.Seed, cfg.G, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksRun)
	fmt.Printf("bodies remaining: %d\n", result.FinalLen)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", sweepRuns)
	}

	ensemble := sim.NewEnsemble(func(s int64) (*orbit.System, error) {
		c := *cfg
		c.Seed = s
		return c.Build()
	}, sweepRuns, cfg.Seed)
	ensemble.WithMetrics(func(g float64) []sim.Metric {
		return []sim.Metric{
			metrics.NewEnergyDrift(g),
			metrics.NewAngularMomentum(),
		}
	})

	fmt.Printf("sweeping %s scenario over %d seeds...\n", name, sweepRuns)

	results, err := ensemble.Run(context.Background(), sim.Config{
		Ticks:       cfg.Ticks,
		SampleEvery: cfg.Ticks,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBODIES\tENERGY DRIFT\tANGULAR MOMENTUM")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.4f\n",
			cfg.Seed+int64(i),
			r.FinalLen,
			r.Metrics["energy_drift"],
			r.Metrics["angular_momentum"],
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	return viz.Run(sys, cfg, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tBODIES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Bodies,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadRows(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	series := make(map[int][]float64)
	order := make([]int, 0)
	for _, row := range rows {
		if bodyID != 0 && row.ID != bodyID {
			continue
		}
		// Primaries carry no eccentricity worth plotting.
		if row.Ecc == 0 && row.SemiMajor == 0 && bodyID == 0 {
			continue
		}
		if _, seen := series[row.ID]; !seen {
			order = append(order, row.ID)
		}
		series[row.ID] = append(series[row.ID], row.Ecc)
	}

	if len(order) == 0 {
		return fmt.Errorf("no matching body in run %s", runID)
	}

	for _, id := range order {
		graph := asciigraph.Plot(series[id],
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d eccentricity", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tick", "id", "x", "y", "vx", "vy", "ecc", "semi_major", "semi_minor"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Tick),
			strconv.Itoa(r.ID),
			strconv.FormatFloat(r.X, 'g', 10, 64),
			strconv.FormatFloat(r.Y, 'g', 10, 64),
			strconv.FormatFloat(r.VX, 'g', 10, 64),
			strconv.FormatFloat(r.VY, 'g', 10, 64),
			strconv.FormatFloat(r.Ecc, 'g', 10, 64),
			strconv.FormatFloat(r.SemiMajor, 'g', 10, 64),
			strconv.FormatFloat(r.SemiMinor, 'g', 10, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
