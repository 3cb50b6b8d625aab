package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/automation"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/gui"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/scenario"
	"github.com/san-kum/collide/internal/server"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/storage"
	"github.com/san-kum/collide/internal/viz"
)

var (
	dataDir string
	// Arena overrides
	width, height float64
	dt            float64
	maxSpeed      float64
	gravConst     float64
	gravity       bool
	strategy      string
	edge          string
	singleWall    bool
	redetect      bool
	theta         float64
	seed          int64
	frames        int
	// Config file
	configFile string
	// Run output
	noSave   bool
	trail    int
	trailSVG string
	// Other commands
	addr    string
	numRuns int
	svgOut  string
	// Sweep and analysis
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	column     string
	phaseX     string
	phaseY     string
)

// main registers commands and flags, opens the desktop window when no
// subcommand is given and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "collide",
		Short: "circle collision and gravity arena",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".collide", "data directory")
	addArenaFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "open the arena in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addArenaFlags(guiCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run the arena in the terminal (preset menu without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addArenaFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "serve the arena to browsers over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	addArenaFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run the arena headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addArenaFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&trail, "trail", -1, "record the path of this body index")
	runCmd.Flags().StringVar(&trailSVG, "trail-svg", "trail.svg", "output file for --trail")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy, momentum and collisions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-frame data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "draw the final bodies of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (stdout when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario and configuration presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput for growing body counts",
		RunE:  benchArena,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "run a preset for consecutive seeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addArenaFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every entry of a YAML batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a preset across a range of one arena parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addArenaFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "g", fmt.Sprintf("parameter to vary %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2000, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and dominant period of a recorded series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "kinetic", fmt.Sprintf("series to analyze %v", analysis.Columns))

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one recorded series against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().StringVar(&phaseX, "x", "px", "horizontal series")
	phaseCmd.Flags().StringVar(&phaseY, "y", "py", "vertical series")

	rootCmd.AddCommand(guiCmd, liveCmd, serveCmd, runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, svgCmd, presetsCmd, benchCmd, ensembleCmd,
		batchCmd, sweepCmd, analyzeCmd, phaseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addArenaFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Float64Var(&width, "width", config.DefaultWidth, "arena width")
	f.Float64Var(&height, "height", config.DefaultHeight, "arena height")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep per frame")
	f.Float64Var(&maxSpeed, "max-speed", config.DefaultMaxSpeed, "per-axis speed clamp")
	f.Float64Var(&gravConst, "g", config.DefaultG, "gravitational constant")
	f.BoolVar(&gravity, "gravity", false, "force gravity on or off")
	f.StringVar(&strategy, "strategy", "", "collision strategy (push, bounce)")
	f.StringVar(&edge, "edge", "clamp", "wall correction (clamp, reflect)")
	f.BoolVar(&singleWall, "single-wall", false, "correct only the first crossed wall per frame")
	f.BoolVar(&redetect, "redetect", false, "recheck each pair before resolving it")
	f.Float64Var(&theta, "theta", 0, "Barnes-Hut opening angle (0 = exact gravity)")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
}

// resolveConfig layers the named config preset (or scenario), the config
// file and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		if p := config.GetPreset(args[0]); p != nil {
			cfg = p
		} else if _, err := scenario.Get(args[0]); err != nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		} else {
			cfg.Preset = args[0]
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.Preset = cfg.Preset
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = maxSpeed
	}
	if flags.Changed("g") {
		cfg.G = gravConst
	}
	if flags.Changed("gravity") {
		g := gravity
		cfg.Gravity = &g
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("edge") {
		cfg.Edge = edge
	}
	if flags.Changed("single-wall") {
		cfg.SingleWall = singleWall
	}
	if flags.Changed("redetect") {
		cfg.Redetect = redetect
	}
	if flags.Changed("theta") {
		cfg.Theta = theta
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	base, err := cfg.Arena()
	if err != nil {
		return err
	}
	return gui.Run(base, cfg.Preset, cfg.Seed)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	base, err := cfg.Arena()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viz.RunInteractive(base, cfg.Seed)
	}
	m, err := viz.NewModel(base, cfg.Preset, cfg.Seed)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	base, err := cfg.Arena()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Addr:   addr,
		Arena:  base,
		Preset: cfg.Preset,
		Seed:   cfg.Seed,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return srv.Run(ctx)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	w, acfg, err := cfg.Build(cfg.Seed)
	if err != nil {
		return err
	}

	s := sim.New(w)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	var tr *export.Trail
	if trail >= 0 {
		tr = &export.Trail{Index: trail}
		s.AddObserver(tr)
	}

	simCfg := sim.DefaultConfig()
	simCfg.Arena = acfg
	simCfg.Frames = cfg.Frames

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%d bodies, %s, gravity %v)...\n", cfg.Preset, len(w.Bodies), acfg.Strategy, acfg.Gravity)
	start := time.Now()

	result, err := s.Run(ctx, simCfg)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted: %v\n", err)
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.StepsTaken)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.NewMetadata(cfg.Preset, cfg.Seed, result.StepsTaken, acfg), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for _, m := range metrics.Standard() {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if tr != nil {
		svg := export.TrajectoryToSVG(tr.Points, acfg.Width, acfg.Height, "#00ff88")
		if svg == "" {
			return fmt.Errorf("body %d has no trajectory to draw", trail)
		}
		if err := os.WriteFile(trailSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trail written to %s\n", trailSVG)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tBODIES\tSTRATEGY\tGRAVITY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%v\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Strategy,
			run.Gravity,
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

	records, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(sim.FrameRecord) float64
	}{
		{"kinetic energy", func(r sim.FrameRecord) float64 { return r.Kinetic }},
		{"momentum x", func(r sim.FrameRecord) float64 { return r.Px }},
		{"momentum y", func(r sim.FrameRecord) float64 { return r.Py }},
		{"collisions per frame", func(r sim.FrameRecord) float64 { return float64(r.Collisions) }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
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
	return storage.WriteMetadata(os.Stdout, meta)
}

// loadResult rebuilds a run's result from its stored files.
func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	records, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	bodies, err := st.LoadBodies(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		Frames:     records,
		Final:      bodies,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Frames,
	}, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(filepath.Join(dataDir, args[0], "frames.csv"))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	svg := export.BodiesToSVG(result.Final, meta.Width, meta.Height)
	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("scenarios:")
	for _, name := range scenario.Names() {
		p, _ := scenario.Get(name)
		fmt.Printf("  %-10s %s\n", name, p.Description)
	}
	fmt.Println("\nconfigurations:")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Printf("  %-10s scenario=%s edge=%s frames=%d\n", name, c.Preset, c.Edge, c.Frames)
	}
	return nil
}

func benchArena(cmd *cobra.Command, args []string) error {
	counts := []int{16, 64, 256, 1024}
	const benchFrames = 100

	fmt.Println("benchmarking arena frames")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tMODE\tFRAMES\tTIME\tFRAMES/SEC")

	modes := []struct {
		name string
		cfg  func(arena.Config) arena.Config
	}{
		{"bounce", func(c arena.Config) arena.Config { c.Strategy = arena.Bounce; return c }},
		{"gravity", func(c arena.Config) arena.Config { c.Gravity = true; return c }},
		{"barnes-hut", func(c arena.Config) arena.Config { c.Gravity, c.Theta = true, 0.5; return c }},
	}

	rng := rand.New(rand.NewSource(42))
	for _, n := range counts {
		for _, mode := range modes {
			cfg := mode.cfg(arena.DefaultConfig())
			world := arena.NewWorld()
			for i := 0; i < n; i++ {
				world.Bodies = append(world.Bodies, arena.NewBody(
					rng.Float64()*cfg.Width, rng.Float64()*cfg.Height, 3, 0, 0, 10).
					WithVelocity(rng.Float64()*20-10, rng.Float64()*20-10))
			}

			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				world.Step(cfg)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n",
				n, mode.name, benchFrames, elapsed, float64(benchFrames)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	factory := func(s int64) (*arena.World, arena.Config, error) {
		return cfg.Build(s)
	}

	simCfg := sim.DefaultConfig()
	simCfg.Frames = cfg.Frames
	simCfg.SampleEvery = cfg.Frames

	fmt.Printf("running %s for %d seeds...\n", cfg.Preset, numRuns)
	start := time.Now()
	results, err := sim.NewEnsemble(factory, metrics.Standard, numRuns, cfg.Seed).Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := []string{"energy_drift", "peak_speed", "collisions", "edge_hits"}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tDRIFT\tPEAK\tCOLLISIONS\tEDGE HITS")
	means := make([]float64, len(names))
	for i, r := range results {
		fmt.Fprintf(w, "%d", cfg.Seed+int64(i))
		for j, name := range names {
			v := r.Metrics[name]
			means[j] += v / float64(len(results))
			fmt.Fprintf(w, "\t%.3f", v)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "mean")
	for _, m := range means {
		fmt.Fprintf(w, "\t%.3f", m)
	}
	fmt.Fprintln(w)
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	if batch.Name != "" {
		fmt.Printf("batch: %s\n", batch.Name)
	}
	outcomes, err := automation.RunBatch(context.Background(), batch, st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRUN ID\tFRAMES\tENERGY DRIFT\tCOLLISIONS")
	for _, o := range outcomes {
		id := o.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.0f\n",
			o.Name, id, o.Result.StepsTaken, o.Result.Metrics["energy_drift"], o.Result.Metrics["collisions"])
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	names := []string{"energy", "energy_drift", "peak_speed", "collisions"}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENERGY\tDRIFT\tPEAK\tCOLLISIONS\n", sweepParam)
	drift := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[name])
		}
		fmt.Fprintln(w)
		drift[i] = r.Metrics["energy_drift"]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(drift,
		asciigraph.Height(8),
		asciigraph.Caption(fmt.Sprintf("energy drift vs %s", sweepParam)),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	data, err := analysis.Column(records, column)
	if err != nil {
		return err
	}

	step := meta.Dt
	if len(records) > 1 {
		step = records[1].Time - records[0].Time
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("series: %s (%d samples)\n", column, len(data))
	period, err := analysis.DominantPeriod(data, step)
	if err != nil {
		return err
	}
	fmt.Printf("dominant period: %.4f s (%.1f frames)\n\n", period, period/meta.Dt)

	fmt.Println(asciigraph.Plot(analysis.Spectrum(data),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s magnitude spectrum", column)),
	))
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	records, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	xs, err := analysis.Column(records, phaseX)
	if err != nil {
		return err
	}
	ys, err := analysis.Column(records, phaseY)
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(phaseX, xs, phaseY, ys)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}
