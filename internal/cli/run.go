package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/acctop/internal/config"
	"github.com/Dicklesworthstone/acctop/internal/dashboard"
	"github.com/Dicklesworthstone/acctop/internal/logger"
	"github.com/Dicklesworthstone/acctop/internal/render"
	"github.com/Dicklesworthstone/acctop/internal/sampler"
	"github.com/Dicklesworthstone/acctop/internal/termwidth"
	"github.com/Dicklesworthstone/acctop/internal/ui"
)

// ExitMessage is printed when the user interrupts the dashboard.
const ExitMessage = "\nExiting real-time monitoring."

// framer produces one rendered frame.
type framer interface {
	Frame(ctx context.Context) string
}

// screen clears the terminal between frames.
type screen interface {
	ClearScreen()
}

type noClear struct{}

func (noClear) ClearScreen() {}

// run wires the sampler to the dashboard and drives it until interrupted.
func run(parent context.Context, cfg config.Config, stdout io.Writer) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := termenv.NewOutput(stdout)
	pal := render.DefaultPalette()
	if cfg.NoColor || out.EnvNoColor() {
		pal = render.NoColor()
	}

	// The full-screen view owns the terminal, so nothing may write to stderr.
	log := logger.Noop()
	switch {
	case cfg.TUI:
	case cfg.Debug:
		log = logger.New(os.Stderr, "acctop", true)
	default:
		log = logger.NewEnvLogger("acctop")
	}
	logger.SetDefault(log)
	provider := sampler.New(nil)

	if cfg.TUI {
		frame := func(ctx context.Context, width int) string {
			return dashboard.New(provider, cfg,
				dashboard.WithPalette(pal),
				dashboard.WithLogger(log),
				dashboard.WithWidth(termwidth.Fixed(width)),
			).Frame(ctx)
		}
		if err := ui.Run(ctx, ui.New(ctx, frame, cfg.Interval)); err != nil {
			return err
		}
		fmt.Fprintln(stdout, ExitMessage)
		return nil
	}

	dash := dashboard.New(provider, cfg, dashboard.WithPalette(pal), dashboard.WithLogger(log))
	if cfg.Once {
		fmt.Fprint(stdout, dash.Frame(ctx))
		return nil
	}
	log.Debug("refreshing every %s", cfg.Interval)
	return loop(ctx, dash, out, stdout, cfg.Interval)
}

// loop clears the screen, prints a frame and waits interval, until ctx is
// done. Cancellation during the wait ends the loop at once.
func loop(ctx context.Context, dash framer, scr screen, stdout io.Writer, interval time.Duration) error {
	if scr == nil {
		scr = noClear{}
	}
	for ctx.Err() == nil {
		scr.ClearScreen()
		fmt.Fprint(stdout, dash.Frame(ctx))
		if err := dashboard.Sleep(ctx, interval); err != nil {
			break
		}
	}
	fmt.Fprintln(stdout, ExitMessage)
	return nil
}
