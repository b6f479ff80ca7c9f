// Package app assembles pagerd from its configuration: the display and the pages.
package app

import (
	_ "embed"
	"fmt"
	"image"
	"time"

	"github.com/BeatGlow/pager"
	"github.com/BeatGlow/pager/internal/config"
	"github.com/BeatGlow/pager/page"
)

var (
	//go:embed assets/logo.bmp
	logoBMP []byte

	//go:embed assets/rings.bmp
	ringsBMP []byte
)

// Entry is a page ready to be registered.
type Entry struct {
	Kind     string
	Page     pager.Page
	Duration time.Duration
}

// Pages builds the configured pages for a display with the given bounds. Uptime pages count from
// start.
func Pages(configs []config.PageConfig, bounds image.Rectangle, start time.Time) ([]Entry, error) {
	entries := make([]Entry, 0, len(configs))
	for i, cfg := range configs {
		p, err := newPage(cfg, bounds, start)
		if err != nil {
			return nil, fmt.Errorf("app: page %d (%s): %w", i, cfg.Kind, err)
		}
		entries = append(entries, Entry{Kind: cfg.Kind, Page: p, Duration: cfg.Duration})
	}
	return entries, nil
}

// Register adds entries to r.
func Register(r *pager.Rotator, entries []Entry) error {
	for _, e := range entries {
		if err := r.AddPageWithDuration(e.Page, e.Duration); err != nil {
			return fmt.Errorf("app: register %s page: %w", e.Kind, err)
		}
	}
	return nil
}

func newPage(cfg config.PageConfig, bounds image.Rectangle, start time.Time) (pager.Page, error) {
	switch cfg.Kind {
	case config.KindText:
		options, err := textOptions(cfg)
		if err != nil {
			return nil, err
		}
		return page.NewText(cfg.Text, options...), nil

	case config.KindUptime:
		options, err := textOptions(cfg)
		if err != nil {
			return nil, err
		}
		return page.NewDynamic(func() string {
			return fmt.Sprintf("Uptime (s):\n%d", int(time.Since(start).Seconds()))
		}, options...), nil

	case config.KindClock:
		options, err := textOptions(cfg)
		if err != nil {
			return nil, err
		}
		layout := cfg.Text
		if layout == "" {
			layout = "15:04:05"
		}
		return page.NewDynamic(func() string {
			return time.Now().Format(layout)
		}, options...), nil

	case config.KindImage:
		img, err := loadImage(cfg.Image, ringsBMP)
		if err != nil {
			return nil, err
		}
		h, v, err := page.ParseAlignment(cfg.Align)
		if err != nil {
			return nil, err
		}
		return page.NewAlignedImage(img, h, v), nil

	case config.KindScreensaver:
		img, err := loadImage(cfg.Image, logoBMP)
		if err != nil {
			return nil, err
		}
		return page.NewScreensaver(img), nil

	case config.KindRain:
		columns, rows := page.RainGrid(bounds)
		return page.NewDigitalRain(columns, rows, page.DefaultRainWorkers, cfg.Seed)

	default:
		return nil, fmt.Errorf("unknown kind %q", cfg.Kind)
	}
}

func textOptions(cfg config.PageConfig) ([]page.TextOption, error) {
	var options []page.TextOption
	if cfg.FontSize > 0 {
		face, err := page.MonoFace(cfg.FontSize)
		if err != nil {
			return nil, err
		}
		options = append(options, page.WithFace(face))
	}
	if cfg.FPS > 0 {
		options = append(options, page.WithFramesPerSecond(cfg.FPS))
	}
	return options, nil
}

func loadImage(name string, builtin []byte) (image.Image, error) {
	if name == "" {
		return page.DecodeBMP(builtin)
	}
	return page.LoadBMP(name)
}
