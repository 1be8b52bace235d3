package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/racelog/internal/analysis"
	"github.com/san-kum/racelog/internal/config"
	"github.com/san-kum/racelog/internal/export"
	"github.com/san-kum/racelog/internal/logging"
	"github.com/san-kum/racelog/internal/replay"
	"github.com/san-kum/racelog/internal/reward"
	"github.com/san-kum/racelog/internal/telemetry"
	"github.com/san-kum/racelog/internal/trace"
	"github.com/san-kum/racelog/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	// Action space
	maxSpeed float64
	maxSteer float64
	prefix   string
	// Replay and GIF
	fps         int
	noLoop      bool
	windowStart int
	windowEnd   int
	width       int
	height      int
	border      int
	theme       string
	// Output
	gifOut    string
	svgOut    string
	configOut string
	showSpeed bool
	svgWidth  int
	svgHeight int
	svgBorder int

	cfg *config.Config
	log zerolog.Logger
)

// main registers the racelog commands and runs the root command, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "racelog",
		Short:         "inspect, score and replay DeepRacer trace logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}
			log = logging.NewAuto(cfg.LogLevel, os.Stderr)
			log.Debug().
				Float64("max_speed", cfg.ActionSpace.MaxSpeed).
				Float64("max_steer", cfg.ActionSpace.MaxSteer).
				Str("prefix", cfg.Prefix).
				Msg("config loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use action space preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error, off)")

	parseCmd := &cobra.Command{
		Use:   "parse [log]",
		Short: "print the statuses in a trace log",
		Args:  cobra.ExactArgs(1),
		RunE:  parseLog,
	}

	waypointsCmd := &cobra.Command{
		Use:   "waypoints [log]",
		Short: "print the waypoints in a trace log",
		Args:  cobra.ExactArgs(1),
		RunE:  listWaypoints,
	}

	scoreCmd := &cobra.Command{
		Use:   "score [snapshot.yaml]",
		Short: "evaluate the reward function for one snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  scoreSnapshot,
	}
	scoreCmd.Flags().Float64Var(&maxSpeed, "max-speed", reward.DefaultMaxSpeed, "action space max speed")
	scoreCmd.Flags().Float64Var(&maxSteer, "max-steer", reward.DefaultMaxSteer, "action space max steering angle")
	scoreCmd.Flags().StringVar(&prefix, "prefix", trace.DefaultPrefix, "trace line prefix")

	plotCmd := &cobra.Command{
		Use:   "plot [log]",
		Short: "plot reward per step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotLog,
	}
	plotCmd.Flags().BoolVar(&showSpeed, "speed", false, "also plot speed")

	summaryCmd := &cobra.Command{
		Use:   "summary [log]",
		Short: "summarise a trace log",
		Args:  cobra.ExactArgs(1),
		RunE:  summarizeLog,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [log]",
		Short: "replay a trace log in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	replayCmd.Flags().BoolVar(&noLoop, "no-loop", false, "stop at the last status")
	addViewportFlags(replayCmd)

	gifCmd := &cobra.Command{
		Use:   "gif [log]",
		Short: "render a window of statuses to an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  writeGIF,
	}
	gifCmd.Flags().StringVarP(&gifOut, "output", "o", "racelog.gif", "output file")
	gifCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	gifCmd.Flags().IntVar(&windowStart, "start", config.DefaultWindowStart, "first status")
	gifCmd.Flags().IntVar(&windowEnd, "end", config.DefaultWindowEnd, "status after the last one (0 for all)")
	addViewportFlags(gifCmd)

	svgCmd := &cobra.Command{
		Use:   "svg [log]",
		Short: "draw the track and driven line as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  writeSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "racelog.svg", "output file")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height in pixels")
	svgCmd.Flags().IntVar(&svgBorder, "border", 100, "border in pixels")
	svgCmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, "colour theme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list action space presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config after preset, file and flags",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.Flags().StringVarP(&configOut, "output", "o", "", "write the config to a file instead of stdout")
	configCmd.Flags().Float64Var(&maxSpeed, "max-speed", reward.DefaultMaxSpeed, "action space max speed")
	configCmd.Flags().Float64Var(&maxSteer, "max-steer", reward.DefaultMaxSteer, "action space max steering angle")
	configCmd.Flags().StringVar(&prefix, "prefix", trace.DefaultPrefix, "trace line prefix")

	rootCmd.AddCommand(parseCmd, waypointsCmd, scoreCmd, plotCmd, summaryCmd, replayCmd, gifCmd, svgCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "canvas width in cells")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "canvas height in cells")
	cmd.Flags().IntVar(&border, "border", config.DefaultBorder, "border in dots")
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeClassic.Name, "colour theme")
}

// loadConfig starts from defaults or a preset, layers the config file on
// top, then applies any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, c)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("max-speed") {
		c.ActionSpace.MaxSpeed = maxSpeed
	}
	if flags.Changed("max-steer") {
		c.ActionSpace.MaxSteer = maxSteer
	}
	if flags.Changed("prefix") {
		c.Prefix = prefix
	}
	if flags.Changed("fps") {
		c.Replay.FPS = fps
	}
	if flags.Changed("no-loop") {
		c.Replay.Loop = !noLoop
	}
	if flags.Changed("start") {
		c.Replay.Window.Start = windowStart
	}
	if flags.Changed("end") {
		c.Replay.Window.End = windowEnd
	}
	// svg sizes its image in pixels, not canvas cells
	if cmd.Name() != "svg" {
		if flags.Changed("width") {
			c.Viewport.Width = width
		}
		if flags.Changed("height") {
			c.Viewport.Height = height
		}
		if flags.Changed("border") {
			c.Viewport.Border = border
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadTrack(path string) (*telemetry.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	track, err := trace.LoadTrack(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().
		Str("file", path).
		Int("waypoints", len(track.Waypoints)).
		Int("statuses", len(track.Statuses)).
		Msg("trace loaded")
	return track, nil
}

func loadTheme() (viz.Theme, error) {
	th, ok := viz.GetTheme(theme)
	if !ok {
		return viz.Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}
	return th, nil
}

func parseLog(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track.Statuses) == 0 {
		fmt.Println("no statuses found")
		return nil
	}

	start, _ := track.StartTime()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTIME\tX\tY\tHEADING\tSPEED\tSTEER\tON\tPROGRESS\tRULE\tLEVEL\tSCORE")
	for _, s := range track.Statuses {
		fmt.Fprintf(w, "%d\t%.3fs\t%.4f\t%.4f\t%.1f\t%.2f\t%.1f\t%t\t%.2f\t%d\t%s\t%.2f\n",
			s.Steps,
			s.Timestamp-start,
			s.X,
			s.Y,
			s.Heading,
			s.Speed,
			s.SteeringAngle,
			s.AllWheelsOnTrack,
			s.Progress,
			s.RuleNumber,
			s.RewardLevel,
			s.Score,
		)
	}
	return w.Flush()
}

func listWaypoints(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track.Waypoints) == 0 {
		fmt.Println("no waypoints found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tX\tY")
	for _, wp := range track.Waypoints {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n", wp.Index, wp.X, wp.Y)
	}
	return w.Flush()
}

func scoreSnapshot(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	params := make(map[string]any)
	if err := yaml.Unmarshal(data, &params); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	snap, err := reward.SnapshotFromParams(params)
	if err != nil {
		return err
	}
	ev := reward.New(
		reward.WithLimits(cfg.Limits()),
		reward.WithPrefix(cfg.Prefix),
		reward.WithSink(os.Stdout),
	)
	res, err := ev.Evaluate(snap)
	if err != nil {
		return err
	}

	log.Info().
		Int("rule", res.Outcome.Rule).
		Str("level", res.Outcome.Level.String()).
		Float64("score", res.Outcome.Score).
		Msg(res.Outcome.Description)
	// not a trace row, so the output still parses as a log
	fmt.Printf("score %g\n", res.Outcome.Score)
	return nil
}

func plotLog(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track.Statuses) == 0 {
		return telemetry.ErrNoStatuses
	}

	scores := make([]float64, len(track.Statuses))
	speeds := make([]float64, len(track.Statuses))
	for i, s := range track.Statuses {
		scores[i] = s.Score
		speeds[i] = s.Speed
	}

	fmt.Println(asciigraph.Plot(scores,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("reward per step"),
	))
	if showSpeed {
		fmt.Println()
		fmt.Println(asciigraph.Plot(speeds,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("speed per step"),
		))
	}
	return nil
}

func summarizeLog(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	sum := analysis.Summarize(track.Statuses)

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("waypoints: %d\n", len(track.Waypoints))
	fmt.Printf("statuses: %d\n", sum.Statuses)
	if sum.Statuses == 0 {
		return nil
	}
	fmt.Printf("final step: %d\n", sum.FinalSteps)
	fmt.Printf("max progress: %.2f%%\n\n", sum.MaxProgress)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range sum.Metrics {
		fmt.Fprintf(w, "%s\t%.4f\n", m.Name, m.Value)
	}
	fmt.Fprintln(w)

	descriptions := make(map[int]string)
	for _, r := range reward.Rules() {
		descriptions[r.Number] = r.Description
	}
	fmt.Fprintln(w, "RULE\tCOUNT\tDESCRIPTION")
	for _, n := range sum.RuleNumbers() {
		fmt.Fprintf(w, "%d\t%d\t%s\n", n, sum.Rules[n], descriptions[n])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LEVEL\tCOUNT\tSHARE")
	for _, c := range sum.LevelCounts() {
		share := float64(c.Count) / float64(sum.Statuses)
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Key, c.Count, strings.Repeat("#", int(share*40+0.5)))
	}
	return w.Flush()
}

func runReplay(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	if _, err := loadTheme(); err != nil {
		return err
	}

	m, err := replay.New(track, replay.Options{
		FPS:    cfg.Replay.FPS,
		Loop:   cfg.Replay.Loop,
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		Border: cfg.Viewport.Border,
		Theme:  theme,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func writeGIF(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	th, err := loadTheme()
	if err != nil {
		return err
	}

	window := track.Window(cfg.Replay.Window.Start, cfg.Replay.Window.End)
	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()

	tally := viz.NewTally()
	err = export.WriteGIF(f, track, window, export.GIFOptions{
		FPS:    cfg.Replay.FPS,
		Width:  cfg.Viewport.Width,
		Height: cfg.Viewport.Height,
		Border: cfg.Viewport.Border,
		Theme:  th,
	}, tally)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", gifOut).
		Int("frames", tally.Frames).
		Int("near_centre", tally.NearCentre).
		Int("off_track", tally.OffTrack).
		Msg("gif written")
	return f.Close()
}

func writeSVG(cmd *cobra.Command, args []string) error {
	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	th, err := loadTheme()
	if err != nil {
		return err
	}

	f, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer f.Close()

	err = export.WriteSVG(f, track, export.SVGOptions{
		Width:  svgWidth,
		Height: svgHeight,
		Border: svgBorder,
		Theme:  th,
	})
	if err != nil {
		return err
	}
	log.Info().Str("file", svgOut).Msg("svg written")
	return f.Close()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMAX SPEED\tMAX STEER")
	for _, name := range config.ListPresets() {
		as := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", name, as.MaxSpeed, as.MaxSteer)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	if err := writeConfig(cmd.OutOrStdout(), configOut, cfg); err != nil {
		return err
	}
	if configOut != "" {
		log.Info().Str("file", configOut).Msg("config written")
	}
	return nil
}

// writeConfig saves c to path, or prints it to w when path is empty.
func writeConfig(w io.Writer, path string, c *config.Config) error {
	if path != "" {
		return config.Save(path, c)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
