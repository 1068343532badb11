// Package dashboard assembles one frame of the resource dashboard: it takes
// a snapshot per enabled section from a Provider and hands it to the
// matching renderer, in a fixed order.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/Dicklesworthstone/acctop/internal/config"
	"github.com/Dicklesworthstone/acctop/internal/errors"
	"github.com/Dicklesworthstone/acctop/internal/logger"
	"github.com/Dicklesworthstone/acctop/internal/model"
	"github.com/Dicklesworthstone/acctop/internal/render"
	"github.com/Dicklesworthstone/acctop/internal/termwidth"
)

// Provider supplies point-in-time host snapshots. Implementations take a
// fresh reading on every call.
type Provider interface {
	Partitions(ctx context.Context) ([]model.DiskPartition, error)
	Memory(ctx context.Context) (model.Memory, error)
	CPU(ctx context.Context) (model.CPU, error)
	CoreCount(ctx context.Context) (int, error)
	Processes(ctx context.Context) ([]model.Process, error)
	Network(ctx context.Context) ([]model.NetInterface, error)
	DiskIO(ctx context.Context) ([]model.DiskIO, error)
	Load(ctx context.Context) (model.Load, error)
	Host(ctx context.Context) (model.Host, error)
}

// Dashboard renders frames from a Provider.
type Dashboard struct {
	provider Provider
	cfg      config.Config
	pal      render.Palette
	width    termwidth.Provider
	log      logger.Logger
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error

	// failing holds the sections whose last render failed, so a persistent
	// failure is logged once rather than on every frame.
	failing map[string]bool
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithPalette sets the colors used for bars and headings.
func WithPalette(p render.Palette) Option {
	return func(d *Dashboard) { d.pal = p }
}

// WithWidth sets where the terminal width comes from.
func WithWidth(w termwidth.Provider) Option {
	return func(d *Dashboard) { d.width = w }
}

func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) { d.log = l }
}

// WithClock overrides time.Now for uptime.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithSleep overrides the pause between the two disk I/O reads.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(d *Dashboard) { d.sleep = sleep }
}

// New creates a Dashboard for the sections enabled in cfg.
func New(p Provider, cfg config.Config, opts ...Option) *Dashboard {
	d := &Dashboard{
		provider: p,
		cfg:      cfg,
		pal:      render.DefaultPalette(),
		width:    termwidth.Stdout(),
		log:      logger.Noop(),
		now:      time.Now,
		sleep:    Sleep,
		failing:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type section struct {
	name    string
	enabled bool
	render  func(ctx context.Context) (string, error)
}

// Frame samples and renders every enabled section. A section whose
// snapshot fails is replaced by a one-line notice; the rest of the frame is
// unaffected. The failure is logged when it first occurs and again when the
// section recovers.
func (d *Dashboard) Frame(ctx context.Context) string {
	width := d.termWidth()
	host, hostErr := d.provider.Host(ctx)
	hostname := host.Hostname
	if hostErr != nil {
		d.log.Debug("host info: %s", errors.OneLine(hostErr))
	}
	if hostErr != nil || hostname == "" {
		hostname = "localhost"
	}

	var b strings.Builder
	b.WriteString(render.Header(d.pal, hostname))
	b.WriteString("\n")
	for _, s := range d.sections(width, host, hostErr) {
		if !s.enabled {
			continue
		}
		out, err := s.render(ctx)
		if err != nil {
			reason := errors.OneLine(err)
			if !d.failing[s.name] {
				d.log.Warn("%s unavailable: %s", s.name, reason)
				d.failing[s.name] = true
			}
			out = render.SectionUnavailable(d.pal, s.name, reason)
		} else if d.failing[s.name] {
			d.log.Info("%s recovered", s.name)
			delete(d.failing, s.name)
		}
		b.WriteString(out)
		b.WriteString("\n\n")
	}
	b.WriteString(render.Footer(d.pal))
	b.WriteString("\n")
	return b.String()
}

func (d *Dashboard) termWidth() int {
	w, err := termwidth.Or(d.width, termwidth.DefaultWidth)
	if err != nil {
		d.log.Debug("using default width %d: %s", w, errors.OneLine(err))
	}
	return w
}

func (d *Dashboard) sections(width int, host model.Host, hostErr error) []section {
	cfg := d.cfg
	return []section{
		{"Disk Usage", true, func(ctx context.Context) (string, error) {
			parts, err := d.provider.Partitions(ctx)
			if err != nil {
				return "", err
			}
			return render.Disk(d.pal, parts, cfg.Bars.Disk), nil
		}},
		{"Memory Usage", true, func(ctx context.Context) (string, error) {
			m, err := d.provider.Memory(ctx)
			if err != nil {
				return "", err
			}
			return render.Memory(d.pal, m, cfg.Bars.Memory), nil
		}},
		{"CPU Usage", true, func(ctx context.Context) (string, error) {
			c, err := d.provider.CPU(ctx)
			if err != nil {
				return "", err
			}
			return render.CPU(d.pal, c, cfg.Bars.CPU, width, cfg.CPUMaxColumns), nil
		}},
		{"User Usage", true, d.users},
		{"Network Usage", cfg.ShowNetwork, func(ctx context.Context) (string, error) {
			ifaces, err := d.provider.Network(ctx)
			if err != nil {
				return "", err
			}
			return render.Network(d.pal, ifaces), nil
		}},
		{"Load Average", cfg.ShowLoad, func(ctx context.Context) (string, error) {
			l, err := d.provider.Load(ctx)
			if err != nil {
				return "", err
			}
			return render.Load(d.pal, l), nil
		}},
		{"System Info", cfg.ShowSystem, func(ctx context.Context) (string, error) {
			if hostErr != nil {
				return "", hostErr
			}
			return render.SystemInfo(d.pal, host, d.now()), nil
		}},
		{"Disk I/O", cfg.ShowDiskIO, func(ctx context.Context) (string, error) {
			return d.diskIO(ctx, width)
		}},
	}
}

func (d *Dashboard) users(ctx context.Context) (string, error) {
	cores, err := d.provider.CoreCount(ctx)
	if err != nil {
		return "", err
	}
	procs, err := d.provider.Processes(ctx)
	if err != nil {
		return "", err
	}
	return render.Users(d.pal, render.AggregateUsers(procs, cores)), nil
}

// diskIO reads the disk counters twice, cfg.DiskIOSampleDelay apart, and
// renders the throughput between the two reads.
func (d *Dashboard) diskIO(ctx context.Context, width int) (string, error) {
	first, err := d.provider.DiskIO(ctx)
	if err != nil {
		return "", err
	}
	if err := d.sleep(ctx, d.cfg.DiskIOSampleDelay); err != nil {
		return "", err
	}
	second, err := d.provider.DiskIO(ctx)
	if err != nil {
		return "", err
	}
	return render.DiskIO(d.pal, render.DiskRates(first, second), width), nil
}
