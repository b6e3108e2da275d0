package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/colorfield/internal/anim"
	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/config"
	"github.com/san-kum/colorfield/internal/generate"
	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/render"
	"github.com/san-kum/colorfield/internal/storage"
	"github.com/san-kum/colorfield/internal/viz"
)

var (
	dataDir      string
	width        int
	height       int
	seed         int64
	startRow     int
	startCol     int
	startColor   int
	neighborhood string
	maxIters     int
	snapshot     bool
	sortColors   bool
	scale        int
	outPath      string
	imagePath    string
	palSource    string
	palColors    int
	palMethod    string
	tileSize     int
	configFile   string
	preset       string
	frameRate    int
	verbose      bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// main is the entry point for the colorfield CLI; it registers commands
// and flags and executes the root command. It exits the process with
// status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "colorfield",
		Short: "all-colors image generation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".colorfield", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	genCmd := &cobra.Command{
		Use:   "generate [engine]",
		Short: "generate an image",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	addGenerateFlags(genCmd)
	genCmd.Flags().StringVar(&outPath, "out", "", "write the final image to this path")
	genCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	genCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot step distances for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and distances as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [engine]",
		Short: "list available presets for an engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for engine: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	paletteCmd := &cobra.Command{
		Use:   "palette [image]",
		Short: "extract a palette from an image",
		Args:  cobra.ExactArgs(1),
		RunE:  extractPalette,
	}
	paletteCmd.Flags().IntVar(&palColors, "colors", 16, "number of colors to extract")
	paletteCmd.Flags().StringVar(&palMethod, "method", "dominant", "extraction method (dominant, kmeans)")
	paletteCmd.Flags().StringVar(&outPath, "out", "", "write a palette strip image to this path")
	paletteCmd.Flags().IntVar(&tileSize, "tile", 32, "tile size for the palette strip")

	benchCmd := &cobra.Command{
		Use:   "bench [engine]",
		Short: "benchmark an engine",
		Args:  cobra.ExactArgs(1),
		RunE:  benchEngine,
	}

	liveCmd := &cobra.Command{
		Use:   "live [engine]",
		Short: "generate and replay placements in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addGenerateFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(genCmd, listCmd, plotCmd, exportCmd, presetsCmd, paletteCmd, benchCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&startRow, "start-row", -1, "start row (-1 = random)")
	cmd.Flags().IntVar(&startCol, "start-col", -1, "start column (-1 = random)")
	cmd.Flags().IntVar(&startColor, "start-color", -1, "start color index (-1 = random)")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "cross", "neighborhood (cross, all)")
	cmd.Flags().IntVar(&maxIters, "maxiters", config.DefaultMaxIters, "step budget for the bug engine (0 = one step per color)")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "record a snapshot after every step (bug engine)")
	cmd.Flags().BoolVar(&sortColors, "sort", false, "sort colors by distance from the start color (bug engine)")
	cmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "integer upscale factor for saved images")
	cmd.Flags().StringVar(&imagePath, "image", "", "source image for the palette")
	cmd.Flags().StringVar(&palSource, "palette", "", "palette source (highcolor, image, extract)")
	cmd.Flags().IntVar(&palColors, "colors", 0, "number of colors to extract")
	cmd.Flags().StringVar(&palMethod, "method", "dominant", "extraction method (dominant, kmeans)")
}

// resolveConfig builds the effective configuration for one generation:
// preset first, then config file, with changed CLI flags winning over
// both.
func resolveConfig(cmd *cobra.Command, engineName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(engineName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(engineName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Engine = engineName

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("start-row") {
		cfg.StartRow = startRow
	}
	if cmd.Flags().Changed("start-col") {
		cfg.StartCol = startCol
	}
	if cmd.Flags().Changed("start-color") {
		cfg.StartColor = startColor
	}
	if cmd.Flags().Changed("neighborhood") {
		cfg.Neighborhood = neighborhood
	}
	if cmd.Flags().Changed("maxiters") {
		cfg.MaxIters = maxIters
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.Snapshot = snapshot
	}
	if cmd.Flags().Changed("sort") {
		cfg.SortColors = sortColors
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("palette") {
		cfg.Palette.Source = palSource
	}
	if cmd.Flags().Changed("image") {
		cfg.Palette.Image = imagePath
		if !cmd.Flags().Changed("palette") && cfg.Palette.Source == "highcolor" {
			cfg.Palette.Source = "image"
		}
	}
	if cmd.Flags().Changed("colors") {
		cfg.Palette.Colors = palColors
	}
	if cmd.Flags().Changed("method") {
		cfg.Palette.Method = palMethod
	}

	return cfg, nil
}

// buildPalette resolves the configured palette source to a color list.
// When the palette is every pixel of a source image and the grid size
// was not set explicitly, the grid adopts the image's dimensions so the
// fill covers it exactly.
func buildPalette(cmd *cobra.Command, cfg *config.Config) (chroma.List, error) {
	switch cfg.Palette.Source {
	case "", "highcolor":
		return palette.Highcolor(), nil

	case "image":
		img, err := palette.ReadImage(cfg.Palette.Image)
		if err != nil {
			return nil, err
		}
		colors := palette.FromImage(img)
		if !cmd.Flags().Changed("width") && !cmd.Flags().Changed("height") &&
			cfg.Width == config.DefaultWidth && cfg.Height == config.DefaultHeight {
			b := img.Bounds()
			cfg.Width = b.Dx()
			cfg.Height = b.Dy()
		}
		return colors, nil

	case "extract":
		img, err := palette.ReadImage(cfg.Palette.Image)
		if err != nil {
			return nil, err
		}
		method, err := palette.ParseMethod(cfg.Palette.Method)
		if err != nil {
			return nil, err
		}
		k := cfg.Palette.Colors
		if k <= 0 {
			k = 256
		}
		return palette.Extract(img, k, method)

	default:
		return nil, fmt.Errorf("unknown palette source: %s", cfg.Palette.Source)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	engineName := args[0]
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := resolveConfig(cmd, engineName)
	if err != nil {
		return err
	}

	colors, err := buildPalette(cmd, cfg)
	if err != nil {
		return err
	}

	// The fill engines need exactly one color per cell; clip or pad is
	// deliberately not done here, the engine reports the mismatch.
	ec, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	if engineName == "bug" && ec.MaxIters <= 0 {
		ec.MaxIters = len(colors)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := generate.NewRegistry()
	eng, err := registry.Get(engineName)
	if err != nil {
		return err
	}

	gen := generate.New(eng, ec)
	for _, m := range registry.DefaultMetrics() {
		gen.AddMetric(m)
	}

	logger.Info("generating", "engine", engineName, "size",
		fmt.Sprintf("%dx%d", ec.Width, ec.Height), "colors", len(colors), "seed", ec.Seed)
	start := time.Now()

	res, metricVals, err := gen.Run(context.Background(), colors)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	logger.Debug("engine finished", "steps", res.Steps, "jumps", res.Jumps, "snapshots", len(res.Snapshots))

	runID, err := st.Save(engineName, ec, res, metricVals, elapsed)
	if err != nil {
		return err
	}

	if outPath != "" {
		img, err := render.Scale(render.Image(res.Grid), ec.Width*cfg.Scale, ec.Height*cfg.Scale)
		if err != nil {
			return err
		}
		if err := render.SavePNG(img, outPath); err != nil {
			return err
		}
		logger.Info("image written", "path", outPath)
	}
	if cfg.Snapshot && len(res.Snapshots) > 0 && outPath != "" {
		animPath := outPath + ".anim.png"
		if err := anim.Save(animPath, res.Snapshots, cfg.Scale, anim.DefaultDelay); err != nil {
			return err
		}
		logger.Info("animation written", "path", animPath, "frames", len(res.Snapshots))
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.Steps)
	if res.Jumps > 0 {
		fmt.Printf("jumps: %d\n", res.Jumps)
	}
	fmt.Println("\nmetrics:")
	for name, val := range metricVals {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tENGINE\tTIME\tSIZE\tSTEPS\tJUMPS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%d\n",
			run.ID,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Steps,
			run.Jumps,
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

	dists, err := st.LoadDistances(runID)
	if err != nil {
		return err
	}
	if len(dists) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s\n", meta.Engine)
	fmt.Printf("samples: %d\n\n", len(dists))

	graph := asciigraph.Plot(dists,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("step distance"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	dists, err := st.LoadDistances(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, dists)
}

func extractPalette(cmd *cobra.Command, args []string) error {
	img, err := palette.ReadImage(args[0])
	if err != nil {
		return err
	}

	method, err := palette.ParseMethod(palMethod)
	if err != nil {
		return err
	}

	colors, err := palette.Extract(img, palColors, method)
	if err != nil {
		return err
	}

	for _, c := range colors {
		fmt.Println(c)
	}

	if outPath != "" {
		if err := render.SavePalette(colors, tileSize, outPath); err != nil {
			return err
		}
		logger.Info("palette strip written", "path", outPath, "colors", len(colors))
	}

	return nil
}

// benchPalette samples n roughly evenly spaced colors out of the
// highcolor enumeration.
func benchPalette(n int) chroma.List {
	full := palette.Highcolor()
	out := make(chroma.List, n)
	for i := range out {
		out[i] = full[(i*len(full))/n]
	}
	return out
}

func benchEngine(cmd *cobra.Command, args []string) error {
	engineName := args[0]

	registry := generate.NewRegistry()
	eng, err := registry.Get(engineName)
	if err != nil {
		return err
	}

	sizes := []int{16, 32, 64}

	fmt.Printf("benchmarking %s\n\n", engineName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tCOLORS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		n := size * size
		ec, err := config.DefaultConfig().EngineConfig()
		if err != nil {
			return err
		}
		ec.Width = size
		ec.Height = size
		ec.Seed = 42
		if engineName == "bug" {
			ec.MaxIters = n
		}

		start := time.Now()
		res, err := eng.Generate(context.Background(), benchPalette(n), ec)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(res.Steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\n",
			size, size, n, res.Steps, elapsed, stepsPerSec)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	engineName := args[0]

	cfg, err := resolveConfig(cmd, engineName)
	if err != nil {
		return err
	}

	// Keep the replay canvas terminal-sized unless told otherwise.
	if !cmd.Flags().Changed("width") {
		cfg.Width = 64
	}
	if !cmd.Flags().Changed("height") {
		cfg.Height = 32
	}

	colors, err := buildPalette(cmd, cfg)
	if err != nil {
		return err
	}

	ec, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	if engineName == "bug" && ec.MaxIters <= 0 {
		ec.MaxIters = len(colors)
	}
	if cfg.Palette.Source == "" || cfg.Palette.Source == "highcolor" {
		colors = benchPalette(ec.Width * ec.Height)
	}

	registry := generate.NewRegistry()
	eng, err := registry.Get(engineName)
	if err != nil {
		return err
	}

	res, err := eng.Generate(context.Background(), colors, ec)
	if err != nil {
		return err
	}

	return viz.RunLive(res, engineName, frameRate)
}
