package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/GabrielDSAlves/jogo/app"
	"github.com/GabrielDSAlves/jogo/board/equation"
	"github.com/GabrielDSAlves/jogo/board/generator"
	"github.com/GabrielDSAlves/jogo/board/piece"
	"github.com/GabrielDSAlves/jogo/config"
	"github.com/GabrielDSAlves/jogo/hal"
	"github.com/GabrielDSAlves/jogo/internal/buildinfo"
	"github.com/GabrielDSAlves/jogo/logging"
	"github.com/GabrielDSAlves/jogo/tui"
)

type globalFlags struct {
	configPath string
	logLevel   string
	seed       uint32
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "jogo",
		Short:         "Solve linear equations by moving pieces on a balance board",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().Uint32Var(&g.seed, "seed", 0, "equation generator seed (0 = clock)")

	window := newWindowCmd(&g)
	root.RunE = window.RunE
	root.Flags().AddFlagSet(window.Flags())

	root.AddCommand(
		window,
		newHeadlessCmd(&g),
		newTUICmd(&g),
		newSolveCmd(),
		newGenerateCmd(&g),
	)
	return root
}

// loadConfig applies the global flags on top of file and environment.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = g.seed
	}
	return cfg, cfg.Validate()
}

func halOptions(cfg config.Config, out io.Writer) hal.Options {
	return hal.Options{Width: cfg.Board.Width, Height: cfg.Board.Height, LogWriter: out}
}

func newWindowCmd(g *globalFlags) *cobra.Command {
	var scale float64
	var tps int
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the board in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scale") {
				cfg.Window.Scale = scale
			}
			if cmd.Flags().Changed("tps") {
				cfg.Window.TPS = tps
			}
			return hal.RunWindow(halOptions(cfg, cmd.ErrOrStderr()), func(h hal.HAL) func() error {
				return app.New(h, cfg)
			}, hal.WindowConfig{
				Title: "Balance board (" + buildinfo.Short() + ")",
				Scale: cfg.Window.Scale,
				TPS:   cfg.Window.TPS,
			})
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 1, "window scale factor")
	cmd.Flags().IntVar(&tps, "tps", 60, "updates per second")
	return cmd
}

func newHeadlessCmd(g *globalFlags) *cobra.Command {
	var hc hal.HeadlessConfig
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the board loop without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = hal.RunHeadless(ctx, halOptions(cfg, cmd.ErrOrStderr()), func(h hal.HAL) func() error {
				return app.New(h, cfg)
			}, hc)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&hc.Hz, "hz", 60, "tick rate")
	cmd.Flags().Uint64Var(&hc.Ticks, "ticks", 0, "stop after N ticks (0 = run until interrupted)")
	return cmd
}

func newTUICmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Play on the board in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI, so records are dropped.
			s, err := app.NewSession(cfg, logging.New(nil, level))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = tui.Run(ctx, s)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve EQUATION",
		Short: "Parse an equation and show how it lays out on the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eq, err := equation.ParseEquation(args[0])
			if err != nil {
				return err
			}
			return writeSolve(cmd.OutOrStdout(), eq)
		},
	}
}

func writeSolve(w io.Writer, eq equation.Equation) error {
	counts := [...]struct {
		side           piece.Side
		coef, constant int
	}{
		{piece.Left, eq.AL, eq.BL},
		{piece.Right, eq.AR, eq.BR},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("equation:"), eq)
	for _, c := range counts {
		fmt.Fprintf(&b, "%s %d x-pieces, %d unit pieces\n",
			labelStyle.Render(c.side.String()+":"), absInt(c.coef), absInt(c.constant))
	}
	if x, ok := eq.Solution(); ok {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("solution:"), okStyle.Render(fmt.Sprintf("x = %d", x)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("solution:"), errStyle.Render("no unique integer solution"))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random solvable equations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			seed := cfg.Generator.Seed
			if seed == 0 {
				seed = uint32(time.Now().UnixNano())
			}
			gen := generator.New(generator.NewXorshift(seed))
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				res := gen.Generate()
				line := fmt.Sprintf("%s    x = %d", res.Equation, res.X0)
				if res.Fallback {
					line += "  " + errStyle.Render("(fallback)")
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of equations")
	return cmd
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
