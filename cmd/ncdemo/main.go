package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/ncdemo/config"
	"github.com/lixenwraith/ncdemo/demo"
	"github.com/lixenwraith/ncdemo/logging"
	"github.com/lixenwraith/ncdemo/render"
	"github.com/lixenwraith/ncdemo/terminal"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the demo crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mNCDEMO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(exitFailure)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and maps the outcome to an exit status
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "ncdemo: %v\n", err)
		return exitFailure
	}
	return exitSuccess
}

// flagValues mirrors config.Config for cobra binding
type flagValues struct {
	configPath  string
	backend     string
	noAltScreen bool
	output      string
	termType    string
	color       string
	fg          string
	row         int
	col         int
	pause       time.Duration
	debug       bool
	logFile     string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var fv flagValues
	def := config.Default()

	root := &cobra.Command{
		Use:   "ncdemo",
		Short: "Draw with a terminal rendering context and tear it down",
		Long: `ncdemo initializes a rendering context, sets the foreground color, moves the
cursor, renders twice, pauses and restores the terminal.
Settings layer as defaults < --config file < NCDEMO_* environment < flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &fv)
			if err != nil {
				return err
			}
			return runDemo(cfg)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&fv.configPath, "config", "", "TOML config file")
	f.StringVar(&fv.backend, "backend", def.Backend, "Rendering backend: tcell, ansi")
	f.BoolVar(&fv.noAltScreen, "no-alt-screen", def.NoAltScreen, "Render on the primary screen buffer")
	f.StringVar(&fv.output, "output", def.Output, "Tty device to render to (default stdout)")
	f.StringVar(&fv.termType, "term", def.TermType, "Terminal type override (default $TERM)")
	f.StringVar(&fv.color, "color", def.Color, "Color mode: auto, truecolor, 256 (ansi backend)")
	f.StringVar(&fv.fg, "fg", def.Fg, "Foreground color as #rrggbb")
	f.IntVar(&fv.row, "row", def.Row, "Cursor target row (0-indexed)")
	f.IntVar(&fv.col, "col", def.Col, "Cursor target column (0-indexed)")
	f.DurationVar(&fv.pause, "pause", time.Duration(def.Pause), "Pause before teardown")
	f.BoolVar(&fv.debug, "debug", def.Debug, "Write logs to --log-file")
	f.StringVar(&fv.logFile, "log-file", logging.DefaultPath, "Log file used with --debug")
	f.StringVar(&fv.logLevel, "log-level", "debug", "Log level used with --debug")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &fv)
			if err != nil {
				return err
			}
			if _, err := cfg.Resolve(); err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	return root
}

// loadConfig layers explicitly set flags over file and environment
func loadConfig(cmd *cobra.Command, fv *flagValues) (*config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("backend", func() { cfg.Backend = fv.backend })
	set("no-alt-screen", func() { cfg.NoAltScreen = fv.noAltScreen })
	set("output", func() { cfg.Output = fv.output })
	set("term", func() { cfg.TermType = fv.termType })
	set("color", func() { cfg.Color = fv.color })
	set("fg", func() { cfg.Fg = fv.fg })
	set("row", func() { cfg.Row = fv.row })
	set("col", func() { cfg.Col = fv.col })
	set("pause", func() { cfg.Pause = config.Duration(fv.pause) })
	set("debug", func() { cfg.Debug = fv.debug })
	set("log-file", func() { cfg.LogFile = fv.logFile })
	set("log-level", func() { cfg.LogLevel = fv.logLevel })

	return cfg, nil
}

// runDemo wires logging and the output stream, then drives one demo run
func runDemo(cfg *config.Config) error {
	resolved, err := cfg.Resolve()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Debug: cfg.Debug,
		Path:  cfg.LogFile,
		Level: cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	opts := resolved.Options
	if resolved.Output != "" {
		out, err := os.OpenFile(resolved.Output, os.O_RDWR, 0)
		if err != nil {
			logger.Error("open output", zap.String("path", resolved.Output), zap.Error(err))
			return &demo.InitError{Err: err}
		}
		defer out.Close()
		opts.Out = out
	}

	logger.Info("starting",
		zap.String("backend", string(resolved.Backend)),
		zap.Bool("inhibit_alt_screen", opts.InhibitAltScreen),
		zap.String("term", opts.TermType),
		zap.Stringer("color", opts.ColorMode),
		zap.Duration("pause", resolved.Plan.Pause),
	)

	open := func(o render.Options) (render.Context, error) {
		return render.Open(resolved.Backend, o)
	}
	err = demo.NewDriver(open, resolved.Plan, demo.WithLogger(logger)).Run(opts)

	var ie *demo.InitError
	switch {
	case err == nil:
		logger.Info("finished")
	case errors.As(err, &ie):
		logger.Error("no rendering context", zap.Error(err))
	default:
		logger.Error("demo failed", zap.Error(err))
	}
	return err
}
