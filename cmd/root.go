package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aschey/livetimer/chrono"
	"github.com/aschey/livetimer/internal"
	"github.com/aschey/livetimer/internal/config"
	"github.com/aschey/livetimer/internal/display"
	"github.com/aschey/livetimer/internal/report"
	"github.com/aschey/livetimer/internal/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var title = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	PaddingLeft(1).
	PaddingRight(1).
	Render("livetimer") +
	"\n\nShows a live elapsed-time line until interrupted or until the given command exits."

const exampleText = `  livetimer
  livetimer -f "%M:%S" -- make build
  livetimer --target 25m --output json`

// ExitError carries the exit status of a timed command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

func newRootCmd(v *viper.Viper) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "livetimer [flags] [-- command [args...]]",
		Long:          title,
		Example:       exampleText,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          run,
	}
	// Flags after the command name belong to the command.
	rootCmd.Flags().SetInterspersed(false)
	if err := config.BindFlags(v, rootCmd.Flags()); err != nil {
		return nil, err
	}

	usageFunc := rootCmd.UsageFunc()
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return internal.FormatUsage(c, usageFunc, exampleText)
	})
	rootCmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		internal.FormatHelp(c)
	})

	return rootCmd, nil
}

func run(cmd *cobra.Command, args []string) error {
	v := GetViper(cmd)
	logger := GetLogger(cmd)

	if err := config.ReadConfigFile(v); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []chrono.Option{
		chrono.WithInterval(cfg.Interval),
		chrono.WithFormat(cfg.Format),
		chrono.WithLogger(logger),
	}

	var result chrono.Result
	var runErr error
	if cfg.TUI {
		result, runErr = runInteractive(ctx, opts)
	} else {
		result, runErr = runLine(ctx, cmd, cfg, args, opts)
	}
	if runErr != nil && result.EndTime.IsZero() {
		return runErr
	}

	if err := report.Write(cmd.OutOrStdout(), result, cfg.Output); err != nil {
		return err
	}
	return runErr
}

func runLine(ctx context.Context, cmd *cobra.Command, cfg config.Config, args []string,
	opts []chrono.Option) (chrono.Result, error) {
	var sink display.Sink = display.NewTerminal(cmd.ErrOrStderr())
	if cfg.Target > 0 {
		sink = display.NewBar(cmd.ErrOrStderr(), cfg.Target)
	}

	t, err := chrono.New(append(opts, chrono.WithSink(sink))...)
	if err != nil {
		return chrono.Result{}, err
	}

	runErr := t.Run(func(*chrono.Timer) error {
		if len(args) == 0 {
			<-ctx.Done()
			return nil
		}
		return runCommand(cmd, args)
	})
	result, _ := t.Result()
	return result, runErr
}

func runInteractive(ctx context.Context, opts []chrono.Option) (chrono.Result, error) {
	frames := display.NewStatusChan()
	t, err := chrono.New(append(opts, chrono.WithSink(frames))...)
	if err != nil {
		return chrono.Result{}, err
	}
	if _, err := t.Start(); err != nil {
		return chrono.Result{}, err
	}
	defer t.Stop()

	return tui.Run(ctx, t, frames)
}

func runCommand(cmd *cobra.Command, args []string) error {
	child := exec.Command(args[0], args[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	err := child.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.ExitCode()}
	}
	return err
}

func register(lifecycle fx.Lifecycle, logger *zap.Logger, v *viper.Viper, rootCmd *cobra.Command) {
	lifecycle.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				cmdCtx := RegisterLogger(ctx, logger)
				cmdCtx = RegisterViper(cmdCtx, v)
				return rootCmd.ExecuteContext(cmdCtx)
			},
			OnStop: func(context.Context) error {
				_ = logger.Sync()
				return nil
			},
		},
	)
}

func NewLogger(v *viper.Viper) *zap.Logger {
	fullpath := v.GetString(config.LogFileKey)
	if fullpath == "" {
		dir, err := os.Executable()
		if err != nil {
			return zap.NewNop()
		}
		fullpath = filepath.Join(filepath.Dir(dir), "livetimer.log")
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{
		fullpath,
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func Execute() {
	app := fx.New(fx.Invoke(register),
		fx.Provide(config.NewViper),
		fx.Provide(NewLogger),
		fx.Provide(newRootCmd),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	err := app.Start(context.Background())
	_ = app.Stop(context.Background())
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
