package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/glyphcast/glyphcast/internal/config"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/player"
	"github.com/glyphcast/glyphcast/internal/quant"
	"github.com/glyphcast/glyphcast/internal/render"
	"github.com/glyphcast/glyphcast/internal/source"
	"github.com/glyphcast/glyphcast/internal/store"
	"github.com/glyphcast/glyphcast/internal/term"
)

var (
	width         int
	rows          int
	fitCols       int
	fitRows       int
	ramp          string
	colorMode     string
	gamma         float64
	dither        bool
	invert        bool
	brightness    float64
	contrast      float64
	edgeMode      string
	edgeThreshold float64
	cellAspect    float64
	fps           float64
	workers       int
	frameDelay    time.Duration
	configFile    string
	preset        string
	outDir        string
	playOnce      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glyphcast",
		Short: "render images and animations as terminal glyph grids",
	}

	previewCmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "render a single frame to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  previewFrame,
	}
	addRenderFlags(previewCmd)

	convertCmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "render every frame to text files",
		Args:  cobra.ExactArgs(1),
		RunE:  convertAnimation,
	}
	addRenderFlags(convertCmd)
	convertCmd.Flags().StringVar(&outDir, "out", "glyphcast-out", "output directory")

	animateCmd := &cobra.Command{
		Use:   "animate [file]",
		Short: "play an animation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playAnimation,
	}
	addRenderFlags(animateCmd)
	animateCmd.Flags().BoolVar(&playOnce, "once", false, "stop at the last frame instead of looping")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "show source geometry and luminance distribution",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectSource,
	}
	addRenderFlags(inspectCmd)

	rampsCmd := &cobra.Command{
		Use:   "ramps",
		Short: "list glyph ramp presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGLYPHS\tLEVELS")
			for _, name := range []string{"detailed", "standard", "blocks", "binary"} {
				r, _ := quant.RampByName(name)
				fmt.Fprintf(w, "%s\t%s\t%d\n", name, r, r.Len())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list render presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWIDTH\tRAMP\tCOLOR\tDITHER\tEDGES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%v\t%s\n",
					name, p.Width, p.Ramp, p.Color, p.Dither, p.Edges)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(previewCmd, convertCmd, animateCmd, inspectCmd, rampsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "output columns")
	cmd.Flags().IntVar(&rows, "rows", 0, "output rows (fixes both dimensions with --width)")
	cmd.Flags().IntVar(&fitCols, "fit-width", 0, "fit inside this many columns")
	cmd.Flags().IntVar(&fitRows, "fit-height", 0, "fit inside this many rows")
	cmd.Flags().StringVar(&ramp, "ramp", "standard", "ramp preset or literal glyph string, darkest first")
	cmd.Flags().StringVar(&colorMode, "color", "mono", "color mode: mono, truecolor, ansi16, ansi256")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "gamma correction exponent")
	cmd.Flags().BoolVar(&dither, "dither", false, "Floyd-Steinberg error diffusion")
	cmd.Flags().BoolVar(&invert, "invert", false, "invert luminance")
	cmd.Flags().Float64Var(&brightness, "brightness", 0, "brightness offset in [-255,255]")
	cmd.Flags().Float64Var(&contrast, "contrast", 0, "contrast adjustment in [-255,255]")
	cmd.Flags().StringVar(&edgeMode, "edges", "none", "edge mode: none, sobel, outline")
	cmd.Flags().Float64Var(&edgeThreshold, "edge-threshold", config.DefaultThreshold, "edge magnitude threshold")
	cmd.Flags().Float64Var(&cellAspect, "cell-aspect", config.DefaultCellAspect, "terminal cell width/height ratio")
	cmd.Flags().Float64Var(&fps, "fps", 0, "retime animation to this frame rate (0 keeps source timing)")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel frame renderers")
	cmd.Flags().DurationVar(&frameDelay, "frame-delay", 100*time.Millisecond, "per-frame delay for directory sources")
	cmd.Flags().StringVar(&configFile, "config", "", "profile file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "render preset")
}

// buildProfile layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func buildProfile(cmd *cobra.Command) (*config.Profile, error) {
	p := config.DefaultProfile()

	if preset != "" {
		pp := config.GetPreset(preset)
		if pp == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = pp
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		p = loaded
	}

	if cmd.Flags().Changed("width") {
		p.Width = width
	}
	if cmd.Flags().Changed("ramp") {
		p.Ramp = ramp
	}
	if cmd.Flags().Changed("color") {
		p.Color = colorMode
	}
	if cmd.Flags().Changed("gamma") {
		p.Gamma = gamma
	}
	if cmd.Flags().Changed("dither") {
		p.Dither = dither
	}
	if cmd.Flags().Changed("invert") {
		p.Invert = invert
	}
	if cmd.Flags().Changed("brightness") {
		p.Brightness = brightness
	}
	if cmd.Flags().Changed("contrast") {
		p.Contrast = contrast
	}
	if cmd.Flags().Changed("edges") {
		p.Edges = edgeMode
	}
	if cmd.Flags().Changed("edge-threshold") {
		p.EdgeThreshold = edgeThreshold
	}
	if cmd.Flags().Changed("cell-aspect") {
		p.CellAspect = cellAspect
	}
	if cmd.Flags().Changed("fps") {
		p.FPS = fps
	}
	if cmd.Flags().Changed("workers") {
		p.Workers = workers
	}

	return p, nil
}

func resolvePolicy(cmd *cobra.Command, p *config.Profile) layout.Policy {
	switch {
	case fitCols > 0 && fitRows > 0:
		return layout.FitWithin(fitCols, fitRows)
	case rows > 0 && cmd.Flags().Changed("width"):
		return layout.FixedDimensions(width, rows)
	case rows > 0:
		return layout.FixedRows(rows)
	default:
		return layout.FixedColumns(p.Width)
	}
}

func previewFrame(cmd *cobra.Command, args []string) error {
	p, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}

	src, err := source.Open(args[0], frameDelay)
	if err != nil {
		return err
	}

	out, err := render.Render(src, resolvePolicy(cmd, p), opts)
	if err != nil {
		return err
	}

	r := term.Renderer{Mode: opts.Mode, Palette: opts.Palette}
	fmt.Println(r.Frame(out.Grid))
	return nil
}

func convertAnimation(cmd *cobra.Command, args []string) error {
	p, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}

	src, err := source.Open(args[0], frameDelay)
	if err != nil {
		return err
	}

	start := time.Now()
	counted := &progressSource{src: src, w: os.Stderr}
	anim, err := render.Animate(context.Background(), counted, resolvePolicy(cmd, p), opts, p.FPS)
	counted.finish()
	if err != nil {
		return err
	}

	meta := store.Metadata{
		Source: args[0],
		FPS:    p.FPS,
		Ramp:   p.Ramp,
		Color:  p.Color,
	}
	if err := store.Write(outDir, meta, anim, nil); err != nil {
		return err
	}

	fmt.Printf("wrote %d frames (%dx%d) to %s in %v\n",
		anim.Len(), anim.Columns, anim.Rows, outDir, time.Since(start).Round(time.Millisecond))
	return nil
}

func playAnimation(cmd *cobra.Command, args []string) error {
	p, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	opts, err := p.Options()
	if err != nil {
		return err
	}

	src, err := source.Open(args[0], frameDelay)
	if err != nil {
		return err
	}

	anim, err := render.Animate(context.Background(), src, resolvePolicy(cmd, p), opts, p.FPS)
	if err != nil {
		return err
	}

	r := term.Renderer{Mode: opts.Mode, Palette: opts.Palette}
	m := player.New(anim, r, args[0])
	if playOnce {
		m = m.PlayOnce()
	}

	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

// progressSource counts frames as they are pulled and reports the running
// total, so long conversions show activity before the summary line.
type progressSource struct {
	src   source.Source
	w     io.Writer
	count int
}

func (p *progressSource) Next() (*source.Frame, error) {
	f, err := p.src.Next()
	if err != nil {
		return nil, err
	}
	p.count++
	fmt.Fprintf(p.w, "\rrendering frame %d", p.count)
	return f, nil
}

func (p *progressSource) finish() {
	if p.count > 0 {
		fmt.Fprintln(p.w)
	}
}

func inspectSource(cmd *cobra.Command, args []string) error {
	p, err := buildProfile(cmd)
	if err != nil {
		return err
	}

	src, err := source.Open(args[0], frameDelay)
	if err != nil {
		return err
	}

	frame, err := src.Next()
	if err != nil {
		return err
	}
	buf := frame.Pixels

	cols, gridRows, err := resolvePolicy(cmd, p).Resolve(
		float64(buf.W)/float64(buf.H), p.CellAspect)
	if err != nil {
		return err
	}

	fmt.Printf("source: %s\n", args[0])
	fmt.Printf("pixels: %dx%d\n", buf.W, buf.H)
	fmt.Printf("grid: %dx%d (cell aspect %.2f)\n\n", cols, gridRows, p.CellAspect)

	const bins = 64
	hist := make([]float64, bins)
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			i := int(buf.LumaAt(x, y) * bins)
			if i >= bins {
				i = bins - 1
			}
			hist[i]++
		}
	}

	graph := asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption("luminance distribution (dark to bright)"),
	)
	fmt.Println(graph)
	return nil
}
