// Kli-demo shows the kli engine on a two-pane scene: wrapped CJK text on
// the left and animated shader tiles on the right.
//
// Usage:
//
//	kli-demo run [flags]
//	kli-demo snapshot [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kungfusheep/kli"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string
	logFile    string
	fps        int
	ambiguous  bool
)

var rootCmd = &cobra.Command{
	Use:           "kli-demo",
	Short:         "Retained-mode terminal UI demo",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "Animation frame rate (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&ambiguous, "ambiguous-wide", false, "Treat East Asian ambiguous characters as two columns")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	snapshotCmd.Flags().IntVar(&snapWidth, "width", 120, "Snapshot width in cells")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 40, "Snapshot height in cells")
	snapshotCmd.Flags().BoolVar(&snapANSI, "ansi", false, "Write the escape-sequence stream instead of plain text")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 0, "Animation frames to advance before capturing")
}

// loadSetup resolves config and logger from the file and flags. Interactive
// commands own the terminal and only log to a file.
func loadSetup(cmd *cobra.Command, interactive bool) (*Config, *zap.Logger, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("ambiguous-wide") {
		cfg.AmbiguousWide = ambiguous
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.LogLevel, cfg.LogFile, interactive)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func rendererOptions(cfg *Config, log *zap.Logger) kli.Options {
	bg := cfg.Colors.Background.Color
	return kli.Options{
		Logger:          log,
		Width:           cfg.Width(),
		Ellipsis:        cfg.Ellipsis,
		ClearEmptyColor: &bg,
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo full screen",
	Long: `Run the demo on the controlling terminal until q, Esc or Ctrl-C.

Tab and Shift-Tab move focus between panes, space pauses the animation.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSetup(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tty, err := kli.OpenTTY(kli.TTYOptions{Inline: cfg.Inline, Mouse: cfg.Mouse})
	if err != nil {
		return err
	}
	defer tty.Close()

	d := buildDemo(cfg, log)
	r := kli.NewRenderer(tty, d.scene, rendererOptions(cfg, log))
	defer r.Close()

	clock := kli.NewDeltaFrame(cfg.FPS, true, r.Post)
	defer clock.Close()
	clock.OnFrame.Connect(d.advance)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer cancel()
	go readKeys(os.Stdin, r, d, clock, cancel)

	log.Info("demo started", zap.Int("fps", cfg.FPS), zap.Bool("ambiguous_wide", cfg.AmbiguousWide))
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readKeys handles the few keys the demo understands. Raw mode delivers
// Ctrl-C as a byte rather than a signal.
func readKeys(in io.Reader, r *kli.Renderer, d *demo, clock *kli.DeltaFrame, quit func()) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if err != nil {
			quit()
			return
		}
		key := string(buf[:n])
		switch key {
		case "q", "\x03", "\x1b":
			quit()
			return
		case "\t":
			r.Post(func() { d.scene.FocusNext() })
		case "\x1b[Z":
			r.Post(func() { d.scene.FocusPrev() })
		case " ":
			if clock.Paused() {
				clock.Start()
			} else {
				clock.Pause()
			}
		}
	}
}

var (
	snapWidth  int
	snapHeight int
	snapANSI   bool
	snapFrames int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one frame to stdout",
	Long: `Render the demo scene once at a fixed size and print it.

Plain text is the default; --ansi writes the exact byte stream a terminal
would receive.`,
	Example: `  kli-demo snapshot --width 100 --height 30
  kli-demo snapshot --ansi --frames 10 > frame.ans`,
	RunE: runSnapshot,
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadSetup(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	return snapshot(cmd.Context(), cmd.OutOrStdout(), cfg, log, snapWidth, snapHeight, snapFrames, snapANSI)
}

func snapshot(ctx context.Context, out io.Writer, cfg *Config, log *zap.Logger, width, height, frames int, ansi bool) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", width, height)
	}
	d := buildDemo(cfg, log)
	step := kli.Frame{Delta: kli.FrameInterval(cfg.FPS)}
	for range frames {
		d.advance(step)
	}

	sink := io.Discard
	if ansi {
		sink = out
	}
	r := kli.NewRenderer(kli.NewStaticTerminal(sink, width, height), d.scene, rendererOptions(cfg, log))
	defer r.Close()
	if err := r.RenderOnce(ctx); err != nil {
		return err
	}
	if ansi {
		return nil
	}
	_, err := io.WriteString(out, r.Buffer().String()+"\n")
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kli-demo %s\n", version)
	},
}
